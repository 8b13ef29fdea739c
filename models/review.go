package models

import "time"

// Review is unique per (product, user); creation computes
// IsVerifiedPurchase from the user's delivered orders.
type Review struct {
	ReviewID           string    `json:"reviewId" bson:"reviewId"`
	ProductID          string    `json:"productId" bson:"productId"`
	UserID             string    `json:"userId" bson:"userId"`
	Rating             int       `json:"rating" bson:"rating"`
	Title              string    `json:"title,omitempty" bson:"title,omitempty"`
	Comment            string    `json:"comment" bson:"comment"`
	IsVerifiedPurchase bool      `json:"isVerifiedPurchase" bson:"isVerifiedPurchase"`
	HelpfulCount       int       `json:"helpfulCount" bson:"helpfulCount"`
	IsApproved         bool      `json:"isApproved" bson:"isApproved"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updatedAt"`
}
