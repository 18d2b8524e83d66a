package company

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("company not found")
	ErrNoHRContact = errors.New("company has no HR contact")
)

// HRContact is an employer-side contact used for employment checks.
type HRContact struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

type HRContactList []HRContact

func (l HRContactList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *HRContactList) Scan(value any) error        { return scanJSON(l, value) }

type AliasList []string

func (l AliasList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *AliasList) Scan(value any) error        { return scanJSON(l, value) }

// VerificationStats aggregates outcomes across all verifications sent to
// this employer. AverageResponseDays is a running mean over resolved
// requests.
type VerificationStats struct {
	TotalRequests       int        `json:"total_requests"`
	VerifiedCount       int        `json:"verified_count"`
	UnverifiedCount     int        `json:"unverified_count"`
	AverageResponseDays float64    `json:"average_response_days"`
	LastVerificationAt  *time.Time `json:"last_verification_at,omitempty"`
}

func (s VerificationStats) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *VerificationStats) Scan(value any) error        { return scanJSON(s, value) }

// Record folds one resolved verification into the rolling stats.
func (s *VerificationStats) Record(verified bool, responseDays float64, now time.Time) {
	resolved := float64(s.VerifiedCount + s.UnverifiedCount)
	s.AverageResponseDays = (s.AverageResponseDays*resolved + responseDays) / (resolved + 1)
	if verified {
		s.VerifiedCount++
	} else {
		s.UnverifiedCount++
	}
	at := now
	s.LastVerificationAt = &at
}

// Company is an employer directory entry.
type Company struct {
	ID          uint64            `gorm:"primaryKey;column:id" json:"-"`
	CompanyID   string            `gorm:"size:32;uniqueIndex:ux_companies_company_id" json:"company_id"`
	CompanyName string            `gorm:"size:255;uniqueIndex:ux_companies_name" json:"company_name"`
	Aliases     AliasList         `gorm:"column:aliases;type:json" json:"aliases,omitempty"`
	HRContacts  HRContactList     `gorm:"column:hr_contacts;type:json" json:"hr_contacts"`
	Stats       VerificationStats `gorm:"column:verification_stats;type:json" json:"verification_stats"`
	IsActive    bool              `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Company) TableName() string { return "companies" }

// PrimaryContact returns the flagged primary contact, defaulting to the
// first one when none is flagged.
func (c *Company) PrimaryContact() (HRContact, error) {
	if len(c.HRContacts) == 0 {
		return HRContact{}, ErrNoHRContact
	}
	for _, hc := range c.HRContacts {
		if hc.IsPrimary {
			return hc, nil
		}
	}
	return c.HRContacts[0], nil
}

// Matches reports whether name equals the company name or any alias,
// case-insensitively.
func (c *Company) Matches(name string) bool {
	if strings.EqualFold(c.CompanyName, name) {
		return true
	}
	for _, a := range c.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

func scanJSON(dst any, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
