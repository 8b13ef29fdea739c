package profile

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
)

func loadUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile handles GET /api/users/profile
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := loadUser(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		DisplayName string `json:"displayName"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.DisplayName != "" {
		set["displayName"] = input.DisplayName
	}
	if input.PhoneNumber != "" {
		set["phoneNumber"] = input.PhoneNumber
	}

	userID := utils.GetUserIDFromRequest(r)
	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set}); err != nil {
		log.Printf("UpdateProfile update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, user, "Profile updated successfully")
}
