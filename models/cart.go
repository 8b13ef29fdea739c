package models

import "time"

// CartItem is one line in a user's cart. Price is a snapshot taken when
// the line was added or last updated; it is a preview only, the order
// workflow always reprices from the live catalog.
type CartItem struct {
	ItemID    string  `json:"itemId" bson:"itemId"`
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Cart holds at most one line per product; re-adding a product merges
// into the existing line.
type Cart struct {
	UserID    string     `json:"userId" bson:"userId"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}
