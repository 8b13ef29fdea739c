package orders

import "herbsera/models"

const (
	// taxRate is the flat 18% GST applied to every order.
	taxRate = 0.18
	// freeShippingAbove is the subtotal at which shipping becomes free.
	freeShippingAbove = 500.0
	// flatShippingCost applies below the free-shipping threshold.
	flatShippingCost = 50.0
)

// ComputePricing derives the full price breakdown from a subtotal.
// Total == Subtotal + Tax + ShippingCost - Discount always holds.
func ComputePricing(subtotal float64) models.Pricing {
	tax := subtotal * taxRate
	shippingCost := flatShippingCost
	if subtotal >= freeShippingAbove {
		shippingCost = 0
	}
	discount := 0.0
	return models.Pricing{
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shippingCost,
		Discount:     discount,
		Total:        subtotal + tax + shippingCost - discount,
	}
}
