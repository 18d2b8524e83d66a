package order

import (
	"errors"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{
		"pending_payment", "underwriting", "approved", "rejected",
		"hr_verification_pending", "hr_verified", "hr_unverified",
		"order_complete", "payment_processing", "paid", "processing",
		"shipped", "delivered", "cancelled", "refunded",
	} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q): %v", s, err)
		}
	}

	for _, s := range []string{"", "complete", "HR_VERIFIED", "approved "} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseStatus(%q): want ErrUnknownStatus, got %v", s, err)
		}
	}
}

func TestAppendTimeline(t *testing.T) {
	o := &Order{}
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	o.AppendTimeline("status_changed", now, "admin-1", "underwriting -> approved")
	o.AppendTimeline("status_changed", now.Add(time.Hour), "admin-1", "approved -> hr_verification_pending")

	if len(o.Timeline) != 2 {
		t.Fatalf("timeline length=%d", len(o.Timeline))
	}
	if o.Timeline[0].Details != "underwriting -> approved" {
		t.Errorf("first entry: %+v", o.Timeline[0])
	}
}

func TestDistinctMerchants(t *testing.T) {
	o := &Order{Merchants: MerchantList{
		{MerchantID: "m1", Email: "shop@a.test"},
		{MerchantID: "m2", Email: "shop@b.test"},
		{MerchantID: "m3", Email: "shop@a.test"},
	}}

	got := o.DistinctMerchants()
	if len(got) != 2 {
		t.Fatalf("want 2 distinct merchants, got %d", len(got))
	}
}
