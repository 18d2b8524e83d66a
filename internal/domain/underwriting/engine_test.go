package underwriting

import (
	"math"
	"strings"
	"testing"
	"time"
)

func testModel() *Model {
	return &Model{
		Version: 1,
		Metrics: Metrics{
			MinAge:              21,
			MinIncome:           3000,
			MinYearsEmployed:    1,
			MinCreditScore:      600,
			MaxDefaults:         0,
			MaxOtherObligations: 1000,
		},
		Parameters: Parameters{
			InterestRate:           8,
			AdvanceRate:            90,
			TermMonths:             4,
			MaxMonthlyPaymentRatio: 40,
			PaymentSchedule:        []float64{25, 25, 25, 25},
		},
		IsActive: true,
	}
}

func goodApplicant() Applicant {
	return Applicant{
		Age:              30,
		Income:           5000,
		YearsEmployed:    4,
		CreditScore:      720,
		Defaults:         0,
		OtherObligations: 200,
	}
}

func TestEvaluateApplicant_AllChecksPass(t *testing.T) {
	m := testModel()
	d := EvaluateApplicant(m, goodApplicant(), 5000)

	if !d.Approved {
		t.Fatalf("expected approval, reasons=%v", d.Reasons)
	}
	if d.Score != 100 {
		t.Errorf("score=%d want 100", d.Score)
	}
	if len(d.Reasons) != 0 {
		t.Errorf("unexpected reasons: %v", d.Reasons)
	}
	// 5000 * 40% * 4 months
	if !almostEq(d.MaxLoanAmount, 8000) {
		t.Errorf("max loan amount=%v want 8000", d.MaxLoanAmount)
	}
}

func TestEvaluateApplicant_SingleFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Applicant)
		points   int
		keyword  string
	}{
		{"age", func(a *Applicant) { a.Age = 18 }, 15, "age"},
		{"income", func(a *Applicant) { a.Income = 1000 }, 25, "income"},
		{"years employed", func(a *Applicant) { a.YearsEmployed = 0.5 }, 15, "years employed"},
		{"credit score", func(a *Applicant) { a.CreditScore = 500 }, 30, "credit score"},
		{"defaults", func(a *Applicant) { a.Defaults = 2 }, 10, "defaults"},
		{"obligations", func(a *Applicant) { a.OtherObligations = 5000 }, 5, "obligations"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			a := goodApplicant()
			tt.mutate(&a)
			// keep obligations failure independent of the income check
			d := EvaluateApplicant(testModel(), a, 1000)

			if d.Approved {
				t.Fatalf("expected denial")
			}
			if d.Score != 100-tt.points {
				t.Errorf("score=%d want %d", d.Score, 100-tt.points)
			}
			if len(d.Reasons) != 1 {
				t.Fatalf("want exactly one reason, got %v", d.Reasons)
			}
			if !strings.Contains(d.Reasons[0], tt.keyword) {
				t.Errorf("reason %q does not mention %q", d.Reasons[0], tt.keyword)
			}
		})
	}
}

func TestEvaluateApplicant_MultipleFailuresAccumulate(t *testing.T) {
	a := goodApplicant()
	a.Age = 18
	a.CreditScore = 400
	d := EvaluateApplicant(testModel(), a, 1000)

	if d.Approved {
		t.Fatalf("expected denial")
	}
	if len(d.Reasons) != 2 {
		t.Errorf("want 2 reasons, got %v", d.Reasons)
	}
	if d.Score != 100-15-30 {
		t.Errorf("score=%d want %d", d.Score, 100-15-30)
	}
}

func TestEvaluateApplicant_RequestAboveCap(t *testing.T) {
	d := EvaluateApplicant(testModel(), goodApplicant(), 8001)

	if d.Approved {
		t.Fatalf("expected denial above the cap")
	}
	if d.Score != 100 {
		t.Errorf("score=%d want 100 (all checks passed)", d.Score)
	}
	if len(d.Reasons) != 1 || !strings.Contains(d.Reasons[0], "8000.00") {
		t.Errorf("want one reason citing the cap, got %v", d.Reasons)
	}
}

func TestCalculateLoanDetails_WorkedExample(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := CalculateLoanDetails(testModel(), 10000, now)

	want := []struct{ principal, interest, amount float64 }{
		{2500, 800, 3300},
		{2500, 600, 3100},
		{2500, 400, 2900},
		{2500, 200, 2700},
	}
	if len(d.Payments) != 4 {
		t.Fatalf("want 4 payments, got %d", len(d.Payments))
	}
	for i, w := range want {
		p := d.Payments[i]
		if p.PaymentNumber != i+1 {
			t.Errorf("payment %d: number=%d", i, p.PaymentNumber)
		}
		if !almostEq(p.Principal, w.principal) || !almostEq(p.Interest, w.interest) || !almostEq(p.Amount, w.amount) {
			t.Errorf("payment %d: got %+v want %+v", i+1, p, w)
		}
		if got, want := p.DueDate, now.AddDate(0, i+1, 0); !got.Equal(want) {
			t.Errorf("payment %d: due=%v want %v", i+1, got, want)
		}
	}
	if !almostEq(d.TotalInterest, 2000) {
		t.Errorf("total interest=%v want 2000", d.TotalInterest)
	}
	if !almostEq(d.TotalRepayment, 12000) {
		t.Errorf("total repayment=%v want 12000", d.TotalRepayment)
	}
	// advance rate 90%
	if !almostEq(d.MerchantAdvance, 9000) || !almostEq(d.PayaFee, 1000) {
		t.Errorf("advance=%v fee=%v", d.MerchantAdvance, d.PayaFee)
	}
}

func TestCalculateLoanDetails_Identities(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	m := testModel()
	m.Parameters.TermMonths = 7
	m.Parameters.InterestRate = 3.5
	m.Parameters.AdvanceRate = 85

	const loanAmount = 12345.67
	d := CalculateLoanDetails(m, loanAmount, now)

	var principalSum, amountSum float64
	for _, p := range d.Payments {
		principalSum += p.Principal
		amountSum += p.Amount
	}
	if !almostEq(principalSum, loanAmount) {
		t.Errorf("sum(principal)=%v want %v", principalSum, loanAmount)
	}
	if !almostEq(amountSum, d.TotalRepayment) {
		t.Errorf("sum(amount)=%v want total repayment %v", amountSum, d.TotalRepayment)
	}
	if !almostEq(d.MerchantAdvance+d.PayaFee, loanAmount) {
		t.Errorf("advance+fee=%v want %v", d.MerchantAdvance+d.PayaFee, loanAmount)
	}
	if last := d.Payments[len(d.Payments)-1]; !almostEq(last.OutstandingBalance, 0) {
		t.Errorf("final outstanding balance=%v want 0", last.OutstandingBalance)
	}
}

func TestCalculateLoanDetails_Reproducible(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := CalculateLoanDetails(testModel(), 9999.99, now)
	b := CalculateLoanDetails(testModel(), 9999.99, now)

	if len(a.Payments) != len(b.Payments) {
		t.Fatalf("schedule length differs")
	}
	for i := range a.Payments {
		if a.Payments[i] != b.Payments[i] {
			t.Errorf("payment %d differs: %+v vs %+v", i+1, a.Payments[i], b.Payments[i])
		}
	}
}

func TestModelValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Model)
		wantErr bool
	}{
		{"valid", func(m *Model) {}, false},
		{"schedule sums to 99", func(m *Model) { m.Parameters.PaymentSchedule = []float64{25, 25, 25, 24} }, true},
		{"schedule sums to 101", func(m *Model) { m.Parameters.PaymentSchedule = []float64{26, 25, 25, 25} }, true},
		{"empty schedule", func(m *Model) { m.Parameters.PaymentSchedule = nil }, true},
		{"zero term", func(m *Model) { m.Parameters.TermMonths = 0 }, true},
		{"negative threshold", func(m *Model) { m.Metrics.MinIncome = -1 }, true},
		{"advance rate above 100", func(m *Model) { m.Parameters.AdvanceRate = 101 }, true},
		{"uneven but complete schedule", func(m *Model) { m.Parameters.PaymentSchedule = []float64{40, 30, 20, 10} }, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m := testModel()
			tt.mutate(m)
			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func almostEq(a, b float64) bool { return math.Abs(a-b) < 1e-6 }
