package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Verification deadlines; reminders never extend the deadline.
	VerificationTimeoutHours  int
	VerificationReminderHours int
	MaxReminders              int

	AgreementDir string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "paya"),
		MySQLUser: getenv("MYSQL_USER", "paya"),
		MySQLPass: getenv("MYSQL_PASS", "paya"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		VerificationTimeoutHours:  getenvInt("HR_VERIFICATION_TIMEOUT_HOURS", 72),
		VerificationReminderHours: getenvInt("HR_VERIFICATION_REMINDER_HOURS", 48),
		MaxReminders:              getenvInt("HR_VERIFICATION_MAX_REMINDERS", 2),

		AgreementDir: getenv("AGREEMENT_DIR", "/var/lib/paya/agreements"),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.VerificationTimeoutHours <= 0 || c.VerificationReminderHours <= 0 {
		return errors.New("verification timeout/reminder hours must be positive")
	}
	if c.MaxReminders < 0 {
		return errors.New("HR_VERIFICATION_MAX_REMINDERS must not be negative")
	}
	return nil
}

func (c *Config) VerificationTimeout() time.Duration {
	return time.Duration(c.VerificationTimeoutHours) * time.Hour
}

func (c *Config) ReminderAfter() time.Duration {
	return time.Duration(c.VerificationReminderHours) * time.Hour
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
