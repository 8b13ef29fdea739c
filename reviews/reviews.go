package reviews

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProductReviews handles GET /api/reviews/product/:productId
func GetProductReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	skip, limit, page := utils.ParsePagination(r, 10, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sort"),
		bson.D{{Key: "createdAt", Value: -1}},
		map[string]bool{"createdAt": true, "rating": true, "helpfulCount": true})

	filter := bson.M{"productId": productID, "isApproved": true}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)

	reviews, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter, opts)
	if err != nil {
		log.Printf("GetProductReviews find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	total, err := db.ReviewsCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("GetProductReviews count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondList(w, reviews, utils.Pagination{Total: total, Page: page, Pages: utils.Pages(total, limit)})
}

// hasDeliveredOrder reports whether the user has a delivered order
// containing the product; this feeds the verified-purchase flag.
func hasDeliveredOrder(ctx context.Context, userID, productID string) bool {
	count, err := db.OrdersCollection.CountDocuments(ctx, bson.M{
		"userId":          userID,
		"status":          models.OrderDelivered,
		"items.productId": productID,
	})
	if err != nil {
		log.Printf("Verified purchase check failed: %v", err)
		return false
	}
	return count > 0
}

// CreateReview handles POST /api/reviews. One review per (product, user).
func CreateReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Rating    int    `json:"rating"`
		Title     string `json:"title"`
		Comment   string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.ProductID == "" || input.Rating < 1 || input.Rating > 5 || input.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"productId": input.ProductID})
	if err != nil {
		log.Printf("CreateReview product check failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	existing, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{
		"productId": input.ProductID,
		"userId":    userID,
	})
	if err != nil {
		log.Printf("CreateReview duplicate check failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}
	if existing > 0 {
		utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this product")
		return
	}

	now := time.Now()
	review := models.Review{
		ReviewID:           utils.GenerateRandomString(16),
		ProductID:          input.ProductID,
		UserID:             userID,
		Rating:             input.Rating,
		Title:              input.Title,
		Comment:            input.Comment,
		IsVerifiedPurchase: hasDeliveredOrder(ctx, userID, input.ProductID),
		IsApproved:         true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		// The unique (productId, userId) index catches a concurrent
		// duplicate the count check missed.
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this product")
			return
		}
		log.Printf("CreateReview insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	if err := RecomputeProductRatings(ctx, review.ProductID); err != nil {
		log.Printf("Rating recompute failed for %s: %v", review.ProductID, err)
	}

	utils.RespondSuccessMsg(w, http.StatusCreated, review, "Review submitted successfully")
}

// UpdateReview handles PUT /api/reviews/:id (owner only).
func UpdateReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Rating  int    `json:"rating"`
		Title   string `json:"title"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}
	if input.Rating != 0 && (input.Rating < 1 || input.Rating > 5) {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	var review models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewId": ps.ByName("id")}).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	if review.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	if input.Rating != 0 {
		review.Rating = input.Rating
	}
	if input.Title != "" {
		review.Title = input.Title
	}
	if input.Comment != "" {
		review.Comment = input.Comment
	}
	review.UpdatedAt = time.Now()

	_, err := db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewId": review.ReviewID},
		bson.M{"$set": bson.M{
			"rating":    review.Rating,
			"title":     review.Title,
			"comment":   review.Comment,
			"updatedAt": review.UpdatedAt,
		}})
	if err != nil {
		log.Printf("UpdateReview update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}

	if err := RecomputeProductRatings(ctx, review.ProductID); err != nil {
		log.Printf("Rating recompute failed for %s: %v", review.ProductID, err)
	}

	utils.RespondSuccessMsg(w, http.StatusOK, review, "Review updated successfully")
}

// DeleteReview handles DELETE /api/reviews/:id (owner or admin).
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var review models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewId": ps.ByName("id")}).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	if review.UserID != userID && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	if _, err := db.ReviewsCollection.DeleteOne(ctx, bson.M{"reviewId": review.ReviewID}); err != nil {
		log.Printf("DeleteReview delete failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	if err := RecomputeProductRatings(ctx, review.ProductID); err != nil {
		log.Printf("Rating recompute failed for %s: %v", review.ProductID, err)
	}

	utils.RespondSuccessMsg(w, http.StatusOK, nil, "Review deleted successfully")
}

// MarkHelpful handles POST /api/reviews/:id/helpful
func MarkHelpful(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.ReviewsCollection.FindOneAndUpdate(ctx,
		bson.M{"reviewId": ps.ByName("id")},
		bson.M{"$inc": bson.M{"helpfulCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var review models.Review
	if err := res.Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, review)
}
