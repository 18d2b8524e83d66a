package underwriting

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("underwriting model not found")
	ErrNoActiveModel   = errors.New("no active underwriting model")
	ErrInvalidSchedule = errors.New("payment schedule must sum to exactly 100")
	ErrInvalidModel    = errors.New("invalid underwriting model")
)

// Metrics are the minimum thresholds an applicant must clear.
type Metrics struct {
	MinAge              int     `json:"min_age"`
	MinIncome           float64 `json:"min_income"`
	MinYearsEmployed    float64 `json:"min_years_employed"`
	MinCreditScore      int     `json:"min_credit_score"`
	MaxDefaults         int     `json:"max_defaults"`
	MaxOtherObligations float64 `json:"max_other_obligations"`
}

// Parameters drive loan pricing for an approved applicant.
// InterestRate and AdvanceRate are percentages; InterestRate is per month.
type Parameters struct {
	InterestRate           float64   `json:"interest_rate"`
	AdvanceRate            float64   `json:"advance_rate"`
	TermMonths             int       `json:"term_months"`
	MaxMonthlyPaymentRatio float64   `json:"max_monthly_payment_ratio"`
	PaymentSchedule        []float64 `json:"payment_schedule"`
}

func (m Metrics) Value() (driver.Value, error)  { return json.Marshal(m) }
func (m *Metrics) Scan(value any) error         { return scanJSON(m, value) }
func (p Parameters) Value() (driver.Value, error) { return json.Marshal(p) }
func (p *Parameters) Scan(value any) error        { return scanJSON(p, value) }

// Model is one immutable version of the underwriting configuration.
// Exactly one version is active at a time; saving a new version
// deactivates all prior ones, never mutates them.
type Model struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	ModelID    string         `gorm:"size:32;uniqueIndex:ux_uw_models_model_id" json:"model_id"`
	Version    int            `gorm:"column:version;not null" json:"version"`
	Metrics    Metrics        `gorm:"column:metrics;type:json" json:"metrics"`
	Parameters Parameters     `gorm:"column:parameters;type:json" json:"parameters"`
	IsActive   bool           `gorm:"column:is_active;index" json:"is_active"`
	CreatedBy  string         `gorm:"size:32" json:"created_by"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Model) TableName() string { return "underwriting_models" }

// Validate rejects a model whose thresholds or parameters cannot be
// evaluated. The write must not reach storage when this fails.
func (m *Model) Validate() error {
	if m.Metrics.MinAge < 0 || m.Metrics.MinIncome < 0 || m.Metrics.MinYearsEmployed < 0 ||
		m.Metrics.MinCreditScore < 0 || m.Metrics.MaxDefaults < 0 || m.Metrics.MaxOtherObligations < 0 {
		return fmt.Errorf("%w: negative metric threshold", ErrInvalidModel)
	}
	if m.Parameters.TermMonths <= 0 {
		return fmt.Errorf("%w: term_months must be positive", ErrInvalidModel)
	}
	if m.Parameters.InterestRate < 0 || m.Parameters.AdvanceRate < 0 || m.Parameters.AdvanceRate > 100 {
		return fmt.Errorf("%w: rates out of range", ErrInvalidModel)
	}
	if m.Parameters.MaxMonthlyPaymentRatio <= 0 {
		return fmt.Errorf("%w: max_monthly_payment_ratio must be positive", ErrInvalidModel)
	}
	var sum float64
	for _, p := range m.Parameters.PaymentSchedule {
		sum += p
	}
	if len(m.Parameters.PaymentSchedule) == 0 || !floatEq(sum, 100) {
		return fmt.Errorf("%w: got %v", ErrInvalidSchedule, sum)
	}
	return nil
}

func floatEq(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
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
