package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	companyDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
	customerDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/customer"
	orderDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	uwDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
	verifDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
)

// openTestDB creates an in-memory sqlite DB with every table migrated.
// The domain models avoid MySQL-only column types, so they migrate on
// sqlite as-is; JSON columns are stored as text.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&orderDomain.Order{},
		&verifDomain.HRVerification{},
		&companyDomain.Company{},
		&customerDomain.Customer{},
		&uwDomain.Model{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeOrder(orderID, customerID string) *orderDomain.Order {
	return &orderDomain.Order{
		OrderID:         orderID,
		CustomerID:      customerID,
		Status:          orderDomain.StatusUnderwriting,
		StatusUpdatedAt: time.Now().UTC(),
		TotalAmount:     6000,
		IsBNPL:          true,
		Merchants: orderDomain.MerchantList{
			{MerchantID: "m-1", Name: "Gadget Shop", Email: "sales@gadget.example"},
		},
	}
}

func makeVerification(verificationID, orderID string) *verifDomain.HRVerification {
	return &verifDomain.HRVerification{
		VerificationID: verificationID,
		OrderID:        orderID,
		CustomerID:     "bbbbbbbbbbbbbbbbbbbbbbbbbbbb0001",
		CompanyID:      "cccccccccccccccccccccccccccc0001",
		HRContact:      verifDomain.ContactSnapshot{Name: "HR", Email: "hr@acme.example", IsPrimary: true},
		Customer:       verifDomain.CustomerSnapshot{Name: "Jane Doe", EmployerName: "Acme Corp"},
		Order:          verifDomain.OrderSnapshot{OrderID: orderID, TotalAmount: 6000, LoanAmount: 6000},
		Status:         verifDomain.StatusPendingSend,
		MaxReminders:   2,
	}
}
