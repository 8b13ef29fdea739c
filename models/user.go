package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	AddressID    string `json:"addressId" bson:"addressId"`
	Name         string `json:"name" bson:"name"`
	Phone        string `json:"phone" bson:"phone"`
	AddressLine1 string `json:"addressLine1" bson:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty" bson:"addressLine2,omitempty"`
	City         string `json:"city" bson:"city"`
	State        string `json:"state" bson:"state"`
	Pincode      string `json:"pincode" bson:"pincode"`
	Country      string `json:"country" bson:"country"`
	IsDefault    bool   `json:"isDefault" bson:"isDefault"`
}

// User is provisioned on first sight of a verified token subject.
// At most one address carries IsDefault; Wishlist has set semantics.
type User struct {
	UserID       string    `json:"userId" bson:"userId"`
	Subject      string    `json:"-" bson:"subject"`
	Email        string    `json:"email" bson:"email"`
	DisplayName  string    `json:"displayName,omitempty" bson:"displayName,omitempty"`
	PhotoURL     string    `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Role         string    `json:"role" bson:"role"`
	Addresses    []Address `json:"addresses" bson:"addresses"`
	Wishlist     []string  `json:"wishlist" bson:"wishlist"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	PasswordHash string    `json:"-" bson:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
