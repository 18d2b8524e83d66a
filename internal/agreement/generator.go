// Package agreement renders the loan agreement document attached to the
// employer verification email and signed by the customer.
package agreement

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
)

// Generator produces the agreement document for an order and returns its
// path. Generating twice from the same LoanDetails must yield identical
// bytes, since the document is what the customer signs.
type Generator interface {
	Generate(ctx context.Context, orderID, customerName string, details underwriting.LoanDetails) (string, error)
}

// FileGenerator writes plain-text agreements under a fixed directory.
// PDF rendering sits behind the same interface in deployments that
// carry a renderer.
type FileGenerator struct {
	dir string
}

func NewFileGenerator(dir string) *FileGenerator { return &FileGenerator{dir: dir} }

func (g *FileGenerator) Generate(_ context.Context, orderID, customerName string, d underwriting.LoanDetails) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("create agreement dir: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PAYA INSTALLMENT AGREEMENT\n")
	fmt.Fprintf(&b, "Order: %s\n", orderID)
	fmt.Fprintf(&b, "Customer: %s\n", customerName)
	fmt.Fprintf(&b, "Loan amount: %.2f\n", d.LoanAmount)
	fmt.Fprintf(&b, "Interest rate: %.2f%% per month\n", d.InterestRate)
	fmt.Fprintf(&b, "Term: %d months\n", d.TermMonths)
	fmt.Fprintf(&b, "\nSchedule:\n")
	for _, p := range d.Payments {
		fmt.Fprintf(&b, "  %2d  due %s  principal %.2f  interest %.2f  amount %.2f\n",
			p.PaymentNumber, p.DueDate.UTC().Format(time.DateOnly), p.Principal, p.Interest, p.Amount)
	}
	fmt.Fprintf(&b, "\nTotal interest: %.2f\n", d.TotalInterest)
	fmt.Fprintf(&b, "Total repayment: %.2f\n", d.TotalRepayment)

	path := filepath.Join(g.dir, orderID+"_agreement.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write agreement: %w", err)
	}
	return path, nil
}
