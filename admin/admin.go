package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"herbsera/db"
	"herbsera/models"
	"herbsera/reviews"
	"herbsera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetDashboardStats handles GET /api/admin/dashboard/stats
func GetDashboardStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userCount, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Dashboard user count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	productCount, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		log.Printf("Dashboard product count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	orderCount, err := db.OrdersCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Dashboard order count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	pendingCount, err := db.OrdersCollection.CountDocuments(ctx, bson.M{"status": models.OrderPending})
	if err != nil {
		log.Printf("Dashboard pending count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}

	// Revenue counts everything except cancelled and refunded orders.
	revenueCursor, err := db.OrdersCollection.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"status": bson.M{"$nin": bson.A{models.OrderCancelled, models.OrderRefunded}}}},
		bson.M{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$pricing.total"}}},
	})
	if err != nil {
		log.Printf("Dashboard revenue aggregation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	var revenueRows []struct {
		Total float64 `bson:"total"`
	}
	if err := revenueCursor.All(ctx, &revenueRows); err != nil {
		log.Printf("Dashboard revenue decode failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	revenue := 0.0
	if len(revenueRows) > 0 {
		revenue = revenueRows[0].Total
	}

	recentOrders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5))
	if err != nil {
		log.Printf("Dashboard recent orders failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}

	lowStockAt := utils.ParseInt(r.URL.Query().Get("lowStock"))
	if lowStockAt < 1 {
		lowStockAt = 5
	}
	lowStock, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection,
		bson.M{"isActive": true, "stock": bson.M{"$lte": lowStockAt}},
		options.Find().SetSort(bson.D{{Key: "stock", Value: 1}}).SetLimit(10))
	if err != nil {
		log.Printf("Dashboard low stock failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{
		"users":         userCount,
		"products":      productCount,
		"orders":        orderCount,
		"pendingOrders": pendingCount,
		"revenue":       revenue,
		"recentOrders":  recentOrders,
		"lowStock":      lowStock,
	})
}

// GetAllUsers handles GET /api/admin/users
func GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	users, err := utils.FindAndDecode[models.User](ctx, db.UserCollection, bson.M{}, opts)
	if err != nil {
		log.Printf("GetAllUsers find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	total, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("GetAllUsers count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	utils.RespondList(w, users, utils.Pagination{Total: total, Page: page, Pages: utils.Pages(total, limit)})
}

// UpdateUserRole handles PATCH /api/admin/users/:userId/role. The role
// set is closed: only "user" and "admin" exist.
func UpdateUserRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch input.Role {
	case models.RoleUser, models.RoleAdmin:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Role must be user or admin")
		return
	}

	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userId": ps.ByName("userId")},
		bson.M{"$set": bson.M{"role": input.Role, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var user models.User
	if err := res.Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, user, "User role updated successfully")
}

// ToggleUserStatus handles PATCH /api/admin/users/:userId/toggle-status
func ToggleUserStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userId": ps.ByName("userId")}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	user.IsActive = !user.IsActive
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userId": user.UserID},
		bson.M{"$set": bson.M{"isActive": user.IsActive, "updatedAt": time.Now()}})
	if err != nil {
		log.Printf("ToggleUserStatus update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, user, "User status updated successfully")
}

// GetAllReviews handles GET /api/admin/reviews
func GetAllReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	list, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, bson.M{}, opts)
	if err != nil {
		log.Printf("GetAllReviews find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	total, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("GetAllReviews count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondList(w, list, utils.Pagination{Total: total, Page: page, Pages: utils.Pages(total, limit)})
}

// DeleteReview handles DELETE /api/admin/reviews/:reviewId; the owning
// product's rating aggregate is recomputed afterwards.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var review models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewId": ps.ByName("reviewId")}).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	if _, err := db.ReviewsCollection.DeleteOne(ctx, bson.M{"reviewId": review.ReviewID}); err != nil {
		log.Printf("Admin DeleteReview failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	if err := reviews.RecomputeProductRatings(ctx, review.ProductID); err != nil {
		log.Printf("Rating recompute failed for %s: %v", review.ProductID, err)
	}

	utils.RespondSuccessMsg(w, http.StatusOK, nil, "Review deleted successfully")
}
