package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()

	if c.VerificationTimeoutHours != 72 {
		t.Errorf("timeout hours=%d want 72", c.VerificationTimeoutHours)
	}
	if c.VerificationReminderHours != 48 {
		t.Errorf("reminder hours=%d want 48", c.VerificationReminderHours)
	}
	if c.MaxReminders != 2 {
		t.Errorf("max reminders=%d want 2", c.MaxReminders)
	}
	if c.VerificationTimeout() != 72*time.Hour {
		t.Errorf("timeout duration=%v", c.VerificationTimeout())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HR_VERIFICATION_TIMEOUT_HOURS", "24")
	t.Setenv("HR_VERIFICATION_REMINDER_HOURS", "12")
	t.Setenv("HR_VERIFICATION_MAX_REMINDERS", "5")

	c := Load()
	if c.VerificationTimeoutHours != 24 || c.VerificationReminderHours != 12 || c.MaxReminders != 5 {
		t.Errorf("overrides not applied: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	c := Load()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	c.VerificationTimeoutHours = 0
	if err := c.Validate(); err == nil {
		t.Errorf("expected error for zero timeout hours")
	}

	c = Load()
	c.MySQLPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Errorf("expected error for invalid port")
	}
}
