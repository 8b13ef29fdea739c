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

// SetDefaultAddress marks addressID as the sole default in the list.
// At most one default survives, whatever state the list was in.
func SetDefaultAddress(addresses []models.Address, addressID string) []models.Address {
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].AddressID == addressID
	}
	return addresses
}

func validAddress(a *models.Address) string {
	if a.Name == "" || a.Phone == "" || a.AddressLine1 == "" || a.City == "" || a.State == "" || a.Pincode == "" {
		return "Name, phone, address line 1, city, state and pincode are required"
	}
	return ""
}

func saveAddresses(ctx context.Context, userID string, addresses []models.Address) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"addresses": addresses, "updatedAt": time.Now()}})
	return err
}

// AddAddress handles POST /api/users/addresses. The first address, or
// one submitted with isDefault, becomes the sole default.
func AddAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validAddress(&addr); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	if addr.Country == "" {
		addr.Country = "India"
	}
	addr.AddressID = utils.GetUUID()

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	makeDefault := addr.IsDefault || len(user.Addresses) == 0
	addr.IsDefault = false
	user.Addresses = append(user.Addresses, addr)
	if makeDefault {
		user.Addresses = SetDefaultAddress(user.Addresses, addr.AddressID)
	}

	if err := saveAddresses(ctx, userID, user.Addresses); err != nil {
		log.Printf("AddAddress save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add address")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, user, "Address added successfully")
}

// UpdateAddress handles PUT /api/users/addresses/:addressId. Setting
// isDefault moves the default flag here and clears it everywhere else.
func UpdateAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.Address
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	addressID := ps.ByName("addressId")
	idx := -1
	for i := range user.Addresses {
		if user.Addresses[i].AddressID == addressID {
			idx = i
			break
		}
	}
	if idx < 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	a := &user.Addresses[idx]
	if input.Name != "" {
		a.Name = input.Name
	}
	if input.Phone != "" {
		a.Phone = input.Phone
	}
	if input.AddressLine1 != "" {
		a.AddressLine1 = input.AddressLine1
	}
	if input.AddressLine2 != "" {
		a.AddressLine2 = input.AddressLine2
	}
	if input.City != "" {
		a.City = input.City
	}
	if input.State != "" {
		a.State = input.State
	}
	if input.Pincode != "" {
		a.Pincode = input.Pincode
	}
	if input.Country != "" {
		a.Country = input.Country
	}
	if input.IsDefault {
		user.Addresses = SetDefaultAddress(user.Addresses, addressID)
	}

	if err := saveAddresses(ctx, userID, user.Addresses); err != nil {
		log.Printf("UpdateAddress save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update address")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, user, "Address updated successfully")
}

// DeleteAddress handles DELETE /api/users/addresses/:addressId
func DeleteAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	addressID := ps.ByName("addressId")
	kept := user.Addresses[:0]
	for _, a := range user.Addresses {
		if a.AddressID != addressID {
			kept = append(kept, a)
		}
	}
	user.Addresses = kept

	if err := saveAddresses(ctx, userID, user.Addresses); err != nil {
		log.Printf("DeleteAddress save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete address")
		return
	}

	utils.RespondSuccessMsg(w, http.StatusOK, user, "Address deleted successfully")
}
