package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	orderDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	"github.com/okey68/paya-marketplace-sub000/pkg/id"
)

func TestOrderCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	orderID := id.NewID32()
	o := makeOrder(orderID, id.NewID32())
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByOrderID(ctx, orderID)
	if err != nil {
		t.Fatalf("GetByOrderID: %v", err)
	}
	if got.OrderID != orderID || got.Status != orderDomain.StatusUnderwriting {
		t.Errorf("unexpected order: %+v", got)
	}
	if len(got.Merchants) != 1 || got.Merchants[0].Email != "sales@gadget.example" {
		t.Errorf("merchants did not round-trip: %+v", got.Merchants)
	}
}

func TestOrderSavePersistsJSONColumns(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	orderID := id.NewID32()
	o := makeOrder(orderID, id.NewID32())
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC()
	o.Status = orderDomain.StatusApproved
	o.AppendTimeline("status_changed", now, "admin-1", "underwriting -> approved")
	o.BNPL.LoanAmount = 6000
	o.BNPL.AdvanceAmount = 5400
	if err := repo.Save(ctx, o); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByOrderID(ctx, orderID)
	if err != nil {
		t.Fatalf("GetByOrderID: %v", err)
	}
	if got.Status != orderDomain.StatusApproved {
		t.Errorf("status=%s", got.Status)
	}
	if len(got.Timeline) != 1 || got.Timeline[0].Action != "status_changed" {
		t.Errorf("timeline did not round-trip: %+v", got.Timeline)
	}
	if got.BNPL.AdvanceAmount != 5400 {
		t.Errorf("bnpl did not round-trip: %+v", got.BNPL)
	}
}

func TestOrderGet_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)

	_, err := repo.GetByOrderID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestOrderGetForUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	orderID := id.NewID32()
	if err := repo.Create(ctx, makeOrder(orderID, id.NewID32())); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByOrderIDForUpdate(ctx, orderID)
	if err != nil {
		t.Fatalf("GetByOrderIDForUpdate: %v", err)
	}
	if got.OrderID != orderID {
		t.Errorf("unexpected order: %+v", got)
	}
}
