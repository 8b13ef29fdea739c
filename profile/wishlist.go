package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"herbsera/db"
	"herbsera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// AddToWishlist handles POST /api/users/wishlist. $addToSet keeps the
// wishlist a set: a product appears at most once.
func AddToWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"productId": input.ProductID})
	if err != nil {
		log.Printf("AddToWishlist product check failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$addToSet": bson.M{"wishlist": input.ProductID}, "$set": bson.M{"updatedAt": time.Now()}})
	if err != nil {
		log.Printf("AddToWishlist update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	respondWishlist(ctx, w, userID, "Product added to wishlist")
}

// RemoveFromWishlist handles DELETE /api/users/wishlist/:productId
func RemoveFromWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"wishlist": ps.ByName("productId")}, "$set": bson.M{"updatedAt": time.Now()}})
	if err != nil {
		log.Printf("RemoveFromWishlist update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	respondWishlist(ctx, w, userID, "Product removed from wishlist")
}

func respondWishlist(ctx context.Context, w http.ResponseWriter, userID, message string) {
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondSuccessMsg(w, http.StatusOK, user.Wishlist, message)
}
