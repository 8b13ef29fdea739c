package orders

import (
	"math"
	"regexp"
	"testing"

	"herbsera/models"
)

func TestComputePricingBelowFreeShipping(t *testing.T) {
	p := ComputePricing(100)

	if p.Tax != 18 {
		t.Fatalf("expected tax 18, got %v", p.Tax)
	}
	if p.ShippingCost != 50 {
		t.Fatalf("expected shipping 50, got %v", p.ShippingCost)
	}
	if p.Discount != 0 {
		t.Fatalf("expected discount 0, got %v", p.Discount)
	}
	if p.Total != 168 {
		t.Fatalf("expected total 168, got %v", p.Total)
	}
}

func TestComputePricingFreeShippingThreshold(t *testing.T) {
	// exactly at the threshold shipping is already free
	at := ComputePricing(500)
	if at.ShippingCost != 0 {
		t.Fatalf("expected free shipping at 500, got %v", at.ShippingCost)
	}

	below := ComputePricing(499.99)
	if below.ShippingCost != 50 {
		t.Fatalf("expected shipping 50 below threshold, got %v", below.ShippingCost)
	}
}

func TestComputePricingTotalIdentity(t *testing.T) {
	for _, subtotal := range []float64{0, 1, 49.5, 250, 499.99, 500, 1234.56, 99999} {
		p := ComputePricing(subtotal)
		want := p.Subtotal + p.Tax + p.ShippingCost - p.Discount
		if math.Abs(p.Total-want) > 1e-9 {
			t.Fatalf("subtotal %v: total %v does not match breakdown %v", subtotal, p.Total, want)
		}
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	format := regexp.MustCompile(`^ORD-\d+-\d{3}$`)
	for i := 0; i < 10; i++ {
		n := GenerateOrderNumber()
		if !format.MatchString(n) {
			t.Fatalf("order number %q does not match ORD-<ms>-<3 digits>", n)
		}
	}
}

func TestCanCancel(t *testing.T) {
	cases := map[string]bool{
		models.OrderPending:    true,
		models.OrderProcessing: true,
		models.OrderShipped:    false,
		models.OrderDelivered:  false,
		models.OrderCancelled:  false,
		models.OrderRefunded:   false,
		"bogus":                false,
	}
	for status, want := range cases {
		if got := CanCancel(status); got != want {
			t.Fatalf("CanCancel(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for s := range models.OrderStatuses {
		if !IsValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "PENDING", "done", "returned"} {
		if IsValidStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
