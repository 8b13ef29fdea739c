package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"herbsera/db"
	"herbsera/models"
	"herbsera/rdx"
	"herbsera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts handles GET /api/products with category/featured/tags/
// search and price-range filters.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{"isActive": true}

	if category := q.Get("category"); category != "" {
		filter["category"] = category
	}
	if featured := q.Get("featured"); featured != "" {
		filter["featured"] = featured == "true"
	}
	if tags := utils.SplitTags(q.Get("tags")); len(tags) > 0 {
		filter["tags"] = bson.M{"$in": tags}
	}
	if search := q.Get("search"); search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
			{"tags": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	price := bson.M{}
	if min := q.Get("minPrice"); min != "" {
		price["$gte"] = utils.ParseFloat(min)
	}
	if max := q.Get("maxPrice"); max != "" {
		price["$lte"] = utils.ParseFloat(max)
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	skip, limit, page := utils.ParsePagination(r, 12, 100)
	sort := utils.ParseSort(q.Get("sort"),
		bson.D{{Key: "createdAt", Value: -1}},
		map[string]bool{"createdAt": true, "price": true, "name": true, "ratings.average": true})
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)

	list, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, filter, opts)
	if err != nil {
		log.Printf("GetProducts find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	total, err := db.ProductsCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("GetProducts count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	utils.RespondList(w, list, utils.Pagination{Total: total, Page: page, Pages: utils.Pages(total, limit)})
}

// GetFeaturedProducts handles GET /api/products/featured
func GetFeaturedProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetLimit(8).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection,
		bson.M{"isActive": true, "featured": true}, opts)
	if err != nil {
		log.Printf("GetFeaturedProducts find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, list)
}

// GetProduct handles GET /api/products/:id, accepting either a product
// ID or a slug. ID hits are served from the redis cache when possible.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	identifier := ps.ByName("id")

	if cached := rdx.CachedProduct(identifier); cached != nil {
		utils.RespondSuccess(w, http.StatusOK, cached)
		return
	}

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": identifier}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		// Slug lookups only surface active products.
		err = db.ProductsCollection.FindOne(ctx, bson.M{"slug": identifier, "isActive": true}).Decode(&product)
	}
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("GetProduct lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	rdx.CacheProduct(&product)
	utils.RespondSuccess(w, http.StatusOK, &product)
}

type productInput struct {
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Benefit      string                `json:"benefit"`
	Price        *float64              `json:"price"`
	ComparePrice float64               `json:"comparePrice"`
	Category     string                `json:"category"`
	Ingredients  []models.Ingredient   `json:"ingredients"`
	Weight       *models.Weight        `json:"weight"`
	Stock        *int                  `json:"stock"`
	SKU          string                `json:"sku"`
	Featured     *bool                 `json:"featured"`
	IsActive     *bool                 `json:"isActive"`
	Tags         []string              `json:"tags"`
	Images       []models.ProductImage `json:"images"`
}

// CreateProduct handles POST /api/products (admin).
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == "" || input.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and description are required")
		return
	}
	if input.Price == nil || *input.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Price must be non-negative")
		return
	}
	if input.Category == "" {
		input.Category = "soap"
	}
	if !models.ProductCategories[input.Category] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	stock := 0
	if input.Stock != nil {
		if *input.Stock < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Stock must be non-negative")
			return
		}
		stock = *input.Stock
	}

	now := time.Now()
	product := models.Product{
		ProductID:    utils.GenerateRandomString(16),
		Name:         input.Name,
		Slug:         utils.Slugify(input.Name),
		Description:  input.Description,
		Benefit:      input.Benefit,
		Price:        *input.Price,
		ComparePrice: input.ComparePrice,
		Images:       input.Images,
		Category:     input.Category,
		Ingredients:  input.Ingredients,
		Weight:       input.Weight,
		Stock:        stock,
		SKU:          input.SKU,
		Featured:     input.Featured != nil && *input.Featured,
		IsActive:     true,
		Tags:         input.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if product.Images == nil {
		product.Images = []models.ProductImage{}
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "A product with this name already exists")
			return
		}
		log.Printf("CreateProduct insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusCreated, product, "Product created successfully")
}

// UpdateProduct handles PUT /api/products/:id (admin).
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
		set["slug"] = utils.Slugify(input.Name)
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Benefit != "" {
		set["benefit"] = input.Benefit
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Price must be non-negative")
			return
		}
		set["price"] = *input.Price
	}
	if input.ComparePrice != 0 {
		set["comparePrice"] = input.ComparePrice
	}
	if input.Category != "" {
		if !models.ProductCategories[input.Category] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		set["category"] = input.Category
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Stock must be non-negative")
			return
		}
		set["stock"] = *input.Stock
	}
	if input.SKU != "" {
		set["sku"] = input.SKU
	}
	if input.Featured != nil {
		set["featured"] = *input.Featured
	}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}
	if input.Ingredients != nil {
		set["ingredients"] = input.Ingredients
	}
	if input.Weight != nil {
		set["weight"] = input.Weight
	}
	if input.Tags != nil {
		set["tags"] = input.Tags
	}
	if input.Images != nil {
		set["images"] = input.Images
	}

	res := db.ProductsCollection.FindOneAndUpdate(ctx,
		bson.M{"productId": productID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var product models.Product
	if err := res.Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("UpdateProduct update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	rdx.InvalidateProduct(productID)
	utils.RespondSuccessMsg(w, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct handles DELETE /api/products/:id (admin). Products
// referenced by orders must stay resolvable, so this is a soft delete:
// the record is deactivated and its stored images released.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	for _, img := range product.Images {
		if err := utils.DeleteStoredImage(img.URL); err != nil {
			log.Printf("Image cleanup failed for %s: %v", img.URL, err)
		}
		if img.ThumbURL != "" {
			if err := utils.DeleteStoredImage(img.ThumbURL); err != nil {
				log.Printf("Thumbnail cleanup failed for %s: %v", img.ThumbURL, err)
			}
		}
	}

	_, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productId": productID},
		bson.M{"$set": bson.M{"isActive": false, "images": []models.ProductImage{}, "updatedAt": time.Now()}})
	if err != nil {
		log.Printf("DeleteProduct update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	rdx.InvalidateProduct(productID)
	utils.RespondSuccessMsg(w, http.StatusOK, nil, "Product deleted successfully")
}
