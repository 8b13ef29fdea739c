package models

import "time"

// Order statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

var OrderStatuses = map[string]bool{
	OrderPending:    true,
	OrderProcessing: true,
	OrderShipped:    true,
	OrderDelivered:  true,
	OrderCancelled:  true,
	OrderRefunded:   true,
}

var PaymentMethods = map[string]bool{
	"razorpay": true,
	"stripe":   true,
	"cod":      true,
}

// OrderItem captures the product's name, image and unit price at
// placement time so catalog edits never alter a placed order.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

type ShippingAddress struct {
	Name         string `json:"name" bson:"name"`
	Phone        string `json:"phone" bson:"phone"`
	AddressLine1 string `json:"addressLine1" bson:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty" bson:"addressLine2,omitempty"`
	City         string `json:"city" bson:"city"`
	State        string `json:"state" bson:"state"`
	Pincode      string `json:"pincode" bson:"pincode"`
	Country      string `json:"country" bson:"country"`
}

type PaymentInfo struct {
	ID     string     `json:"id,omitempty" bson:"id,omitempty"`
	Status string     `json:"status,omitempty" bson:"status,omitempty"`
	PaidAt *time.Time `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
}

// Pricing is the order's price breakdown. Invariant:
// Total == Subtotal + Tax + ShippingCost - Discount.
type Pricing struct {
	Subtotal     float64 `json:"subtotal" bson:"subtotal"`
	Tax          float64 `json:"tax" bson:"tax"`
	ShippingCost float64 `json:"shippingCost" bson:"shippingCost"`
	Discount     float64 `json:"discount" bson:"discount"`
	Total        float64 `json:"total" bson:"total"`
}

// Order is written once by the placement workflow; afterwards only
// status, tracking number and the status timestamps change.
type Order struct {
	OrderID         string          `json:"orderId" bson:"orderId"`
	UserID          string          `json:"userId" bson:"userId"`
	OrderNumber     string          `json:"orderNumber" bson:"orderNumber"`
	Items           []OrderItem     `json:"items" bson:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	PaymentInfo     PaymentInfo     `json:"paymentInfo,omitempty" bson:"paymentInfo,omitempty"`
	Pricing         Pricing         `json:"pricing" bson:"pricing"`
	Status          string          `json:"status" bson:"status"`
	TrackingNumber  string          `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	Notes           string          `json:"notes,omitempty" bson:"notes,omitempty"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CancelledAt     *time.Time      `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}
