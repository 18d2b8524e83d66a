package agreementmock

import (
	"context"

	"github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
)

// Generator is a function-backed mock for agreement.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, orderID, customerName string, d underwriting.LoanDetails) (string, error)
}

func (g *Generator) Generate(ctx context.Context, orderID, customerName string, d underwriting.LoanDetails) (string, error) {
	if g.GenerateFn != nil {
		return g.GenerateFn(ctx, orderID, customerName, d)
	}
	return "/tmp/" + orderID + "_agreement.txt", nil
}
