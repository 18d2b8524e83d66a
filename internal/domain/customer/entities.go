package customer

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
)

var ErrNotFound = errors.New("customer not found")

// Customer holds the marketplace account plus the self-declared
// employment profile used for underwriting and employer verification.
type Customer struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	CustomerID string `gorm:"size:32;uniqueIndex:ux_customers_customer_id" json:"customer_id"`
	FirstName  string `gorm:"size:100" json:"first_name"`
	LastName   string `gorm:"size:100" json:"last_name"`
	Email      string `gorm:"size:255" json:"email"`
	Phone      string `gorm:"size:32" json:"phone,omitempty"`

	EmployerName string  `gorm:"size:255" json:"employer_name"`
	JobTitle     string  `gorm:"size:255" json:"job_title,omitempty"`
	Age          int     `json:"age"`
	// MonthlyIncome is the declared gross monthly income.
	MonthlyIncome    float64 `gorm:"type:decimal(18,2)" json:"monthly_income"`
	YearsEmployed    float64 `gorm:"type:decimal(6,2)" json:"years_employed"`
	CreditScore      int     `json:"credit_score"`
	Defaults         int     `json:"defaults"`
	OtherObligations float64 `gorm:"type:decimal(18,2)" json:"other_obligations"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Applicant snapshots the fields the underwriting engine evaluates.
func (c *Customer) Applicant() underwriting.Applicant {
	return underwriting.Applicant{
		Age:              c.Age,
		Income:           c.MonthlyIncome,
		YearsEmployed:    c.YearsEmployed,
		CreditScore:      c.CreditScore,
		Defaults:         c.Defaults,
		OtherObligations: c.OtherObligations,
	}
}
