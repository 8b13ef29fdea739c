package models

import "time"

// ProductCategories is the closed set of catalog categories.
var ProductCategories = map[string]bool{
	"soap":   true,
	"oil":    true,
	"cream":  true,
	"powder": true,
	"other":  true,
}

type ProductImage struct {
	URL      string `json:"url" bson:"url"`
	ThumbURL string `json:"thumbUrl,omitempty" bson:"thumbUrl,omitempty"`
	Alt      string `json:"alt,omitempty" bson:"alt,omitempty"`
}

type Ingredient struct {
	Name       string  `json:"name" bson:"name"`
	Percentage float64 `json:"percentage,omitempty" bson:"percentage,omitempty"`
}

type Weight struct {
	Value float64 `json:"value" bson:"value"`
	Unit  string  `json:"unit" bson:"unit"` // g, kg, ml, l
}

type Ratings struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

// Product is a catalog entry. Stock is only decremented by confirmed
// order placement and incremented by cancellation; deletion is a soft
// delete via IsActive so historical orders keep a valid reference.
type Product struct {
	ProductID    string         `json:"productId" bson:"productId"`
	Name         string         `json:"name" bson:"name"`
	Slug         string         `json:"slug" bson:"slug"`
	Description  string         `json:"description" bson:"description"`
	Benefit      string         `json:"benefit,omitempty" bson:"benefit,omitempty"`
	Price        float64        `json:"price" bson:"price"`
	ComparePrice float64        `json:"comparePrice,omitempty" bson:"comparePrice,omitempty"`
	Images       []ProductImage `json:"images" bson:"images"`
	Category     string         `json:"category" bson:"category"`
	Ingredients  []Ingredient   `json:"ingredients,omitempty" bson:"ingredients,omitempty"`
	Weight       *Weight        `json:"weight,omitempty" bson:"weight,omitempty"`
	Stock        int            `json:"stock" bson:"stock"`
	SKU          string         `json:"sku,omitempty" bson:"sku,omitempty"`
	Featured     bool           `json:"featured" bson:"featured"`
	IsActive     bool           `json:"isActive" bson:"isActive"`
	Ratings      Ratings        `json:"ratings" bson:"ratings"`
	Tags         []string       `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt    time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt" bson:"updatedAt"`
}
