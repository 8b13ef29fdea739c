package models

// OrderEvent is published whenever an order changes status, including
// the initial transition into pending at placement time.
type OrderEvent struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	UserID      string `json:"user_id"`
	Status      string `json:"status"`
}
