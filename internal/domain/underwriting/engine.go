package underwriting

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Applicant is an immutable snapshot of the financial profile evaluated
// against a model. Income is monthly.
type Applicant struct {
	Age              int     `json:"age"`
	Income           float64 `json:"income"`
	YearsEmployed    float64 `json:"years_employed"`
	CreditScore      int     `json:"credit_score"`
	Defaults         int     `json:"defaults"`
	OtherObligations float64 `json:"other_obligations"`
}

// Decision is the outcome of scoring an applicant. Approved is false if
// any single check fails; Score is informational only.
type Decision struct {
	Approved      bool     `json:"approved"`
	Reasons       []string `json:"reasons,omitempty"`
	Score         int      `json:"score"`
	MaxLoanAmount float64  `json:"max_loan_amount"`
}

// Payment is one period of a declining-balance schedule.
// OutstandingBalance is the balance remaining after the payment.
type Payment struct {
	PaymentNumber      int       `json:"payment_number"`
	Principal          float64   `json:"principal"`
	OutstandingBalance float64   `json:"outstanding_balance"`
	Interest           float64   `json:"interest"`
	Amount             float64   `json:"amount"`
	DueDate            time.Time `json:"due_date"`
}

type PaymentList []Payment

func (l PaymentList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *PaymentList) Scan(value any) error        { return scanJSON(l, value) }

// LoanDetails is fully derived from a loan amount plus model parameters
// and is recomputable byte-for-byte; it is never mutated independently.
type LoanDetails struct {
	LoanAmount      float64     `json:"loan_amount"`
	InterestRate    float64     `json:"interest_rate"`
	TermMonths      int         `json:"term_months"`
	Payments        PaymentList `json:"payments"`
	TotalInterest   float64     `json:"total_interest"`
	TotalRepayment  float64     `json:"total_repayment"`
	MerchantAdvance float64     `json:"merchant_advance"`
	PayaFee         float64     `json:"paya_fee"`
}

func (d LoanDetails) Value() (driver.Value, error) { return json.Marshal(d) }
func (d *LoanDetails) Scan(value any) error        { return scanJSON(d, value) }

type check struct {
	points int
	passed func(m *Model, a Applicant) bool
	reason func(m *Model, a Applicant) string
}

// Six independent checks. Each contributes its fixed points to the score
// only when passed; a single failure denies approval.
var checks = []check{
	{15,
		func(m *Model, a Applicant) bool { return a.Age >= m.Metrics.MinAge },
		func(m *Model, a Applicant) string {
			return fmt.Sprintf("applicant age %d is below minimum age %d", a.Age, m.Metrics.MinAge)
		}},
	{25,
		func(m *Model, a Applicant) bool { return a.Income >= m.Metrics.MinIncome },
		func(m *Model, a Applicant) string {
			return fmt.Sprintf("monthly income %.2f is below minimum income %.2f", a.Income, m.Metrics.MinIncome)
		}},
	{15,
		func(m *Model, a Applicant) bool { return a.YearsEmployed >= m.Metrics.MinYearsEmployed },
		func(m *Model, a Applicant) string {
			return fmt.Sprintf("years employed %.1f is below minimum %.1f", a.YearsEmployed, m.Metrics.MinYearsEmployed)
		}},
	{30,
		func(m *Model, a Applicant) bool { return a.CreditScore >= m.Metrics.MinCreditScore },
		func(m *Model, a Applicant) string {
			return fmt.Sprintf("credit score %d is below minimum %d", a.CreditScore, m.Metrics.MinCreditScore)
		}},
	{10,
		func(m *Model, a Applicant) bool { return a.Defaults <= m.Metrics.MaxDefaults },
		func(m *Model, a Applicant) string {
			return fmt.Sprintf("defaults %d exceed maximum %d", a.Defaults, m.Metrics.MaxDefaults)
		}},
	{5,
		func(m *Model, a Applicant) bool { return a.OtherObligations <= m.Metrics.MaxOtherObligations },
		func(m *Model, a Applicant) string {
			return fmt.Sprintf("other obligations %.2f exceed maximum %.2f", a.OtherObligations, m.Metrics.MaxOtherObligations)
		}},
}

// EvaluateApplicant scores an applicant against a model version and the
// requested loan amount. Pure; no I/O.
func EvaluateApplicant(m *Model, a Applicant, requestedLoanAmount float64) Decision {
	d := Decision{Approved: true}
	for _, c := range checks {
		if c.passed(m, a) {
			d.Score += c.points
		} else {
			d.Approved = false
			d.Reasons = append(d.Reasons, c.reason(m, a))
		}
	}
	d.MaxLoanAmount = a.Income * (m.Parameters.MaxMonthlyPaymentRatio / 100) * float64(m.Parameters.TermMonths)
	if requestedLoanAmount > d.MaxLoanAmount {
		d.Approved = false
		d.Reasons = append(d.Reasons,
			fmt.Sprintf("requested amount %.2f exceeds maximum loan amount %.2f", requestedLoanAmount, d.MaxLoanAmount))
	}
	return d
}

// CalculateLoanDetails builds a declining-balance schedule: equal
// principal per period, interest on the remaining balance. The caller
// supplies the calculation time so the schedule is reproducible.
func CalculateLoanDetails(m *Model, loanAmount float64, now time.Time) LoanDetails {
	p := m.Parameters
	principalPerPayment := loanAmount / float64(p.TermMonths)
	outstanding := loanAmount

	d := LoanDetails{
		LoanAmount:   loanAmount,
		InterestRate: p.InterestRate,
		TermMonths:   p.TermMonths,
		Payments:     make(PaymentList, 0, p.TermMonths),
	}
	for i := 1; i <= p.TermMonths; i++ {
		interest := outstanding * (p.InterestRate / 100)
		outstanding -= principalPerPayment
		d.Payments = append(d.Payments, Payment{
			PaymentNumber:      i,
			Principal:          principalPerPayment,
			OutstandingBalance: outstanding,
			Interest:           interest,
			Amount:             principalPerPayment + interest,
			DueDate:            now.AddDate(0, i, 0),
		})
		d.TotalInterest += interest
	}
	d.TotalRepayment = loanAmount + d.TotalInterest
	d.MerchantAdvance = loanAmount * (p.AdvanceRate / 100)
	d.PayaFee = loanAmount * ((100 - p.AdvanceRate) / 100)
	return d
}
