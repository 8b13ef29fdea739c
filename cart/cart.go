package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"herbsera/db"
	"herbsera/models"
	"herbsera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mergeItem adds a line into items, folding the quantity into an
// existing line for the same product and re-stamping its price. Returns
// the updated slice.
func mergeItem(items []models.CartItem, productID, name, image string, quantity int, price float64) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			items[i].Price = price
			items[i].Name = name
			items[i].Image = image
			return items
		}
	}
	return append(items, models.CartItem{
		ItemID:    utils.GetUUID(),
		ProductID: productID,
		Name:      name,
		Image:     image,
		Quantity:  quantity,
		Price:     price,
	})
}

func loadOrCreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	var c models.Cart
	err := db.CartsCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&c)
	if err == nil {
		return &c, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}
	c = models.Cart{UserID: userID, Items: []models.CartItem{}, UpdatedAt: time.Now()}
	if _, err := db.CartsCollection.InsertOne(ctx, c); err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, err
	}
	return &c, nil
}

func saveCart(ctx context.Context, c *models.Cart) error {
	c.UpdatedAt = time.Now()
	_, err := db.CartsCollection.UpdateOne(ctx,
		bson.M{"userId": c.UserID},
		bson.M{"$set": bson.M{"items": c.Items, "updatedAt": c.UpdatedAt}})
	return err
}

// GetCart handles GET /api/cart; an empty cart is created on first access.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	c, err := loadOrCreateCart(ctx, userID)
	if err != nil {
		log.Printf("GetCart load failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, c)
}

// AddToCart handles POST /api/cart. The product must exist and cover
// the requested quantity; re-adding merges into the existing line.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.ProductID == "" || input.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": input.ProductID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("AddToCart product lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}
	if product.Stock < input.Quantity {
		utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock")
		return
	}

	c, err := loadOrCreateCart(ctx, userID)
	if err != nil {
		log.Printf("AddToCart cart load failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0].URL
	}
	c.Items = mergeItem(c.Items, product.ProductID, product.Name, image, input.Quantity, product.Price)

	if err := saveCart(ctx, c); err != nil {
		log.Printf("AddToCart save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, c, "Item added to cart")
}

// UpdateCartItem handles PUT /api/cart/:itemId; quantity is revalidated
// against current stock and the line price re-stamped.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	var c models.Cart
	if err := db.CartsCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	itemID := ps.ByName("itemId")
	idx := -1
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": c.Items[idx].ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if product.Stock < input.Quantity {
		utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock")
		return
	}

	c.Items[idx].Quantity = input.Quantity
	c.Items[idx].Price = product.Price

	if err := saveCart(ctx, &c); err != nil {
		log.Printf("UpdateCartItem save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, c, "Cart updated successfully")
}

// RemoveFromCart handles DELETE /api/cart/:itemId
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var c models.Cart
	if err := db.CartsCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	itemID := ps.ByName("itemId")
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	c.Items = kept

	if err := saveCart(ctx, &c); err != nil {
		log.Printf("RemoveFromCart save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, c, "Item removed from cart")
}

// ClearCart handles DELETE /api/cart
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var c models.Cart
	if err := db.CartsCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	c.Items = []models.CartItem{}
	if err := saveCart(ctx, &c); err != nil {
		log.Printf("ClearCart save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, c, "Cart cleared successfully")
}
