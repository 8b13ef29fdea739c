package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"herbsera/db"
	"herbsera/globals"
	"herbsera/middleware"
	"herbsera/models"
	"herbsera/rdx"
	"herbsera/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func generateAccessToken(user models.User) (string, error) {
	claims := middleware.Claims{
		Email:       user.Email,
		Name:        user.DisplayName,
		Picture:     user.PhotoURL,
		PhoneNumber: user.PhoneNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func issueTokens(w http.ResponseWriter, user models.User) {
	tokenString, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	if err := rdx.SetRefreshToken(user.UserID, hashToken(refreshToken), refreshTokenTTL); err != nil {
		log.Printf("Redis refresh token storage failed: %v", err)
	}
	if err := rdx.SetSession(user.UserID, tokenString, accessTokenTTL); err != nil {
		log.Printf("Redis session storage failed: %v", err)
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userId":       user.UserID,
		"role":         user.Role,
	})
}

// Register handles POST /api/auth/register
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		utils.RespondWithError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if len(input.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Email is already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = strings.Split(input.Email, "@")[0]
	}

	now := time.Now()
	user := models.User{
		UserID:       utils.GenerateRandomString(16),
		Subject:      "local:" + utils.GetUUID(),
		Email:        input.Email,
		DisplayName:  displayName,
		Role:         models.RoleUser,
		Addresses:    []models.Address{},
		Wishlist:     []string{},
		IsActive:     true,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	issueTokens(w, user)
}

// Login handles POST /api/auth/login
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !storedUser.IsActive {
		utils.RespondWithError(w, http.StatusForbidden, "Account is disabled")
		return
	}

	issueTokens(w, storedUser)
}

// RefreshToken handles POST /api/auth/token/refresh
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		UserID       string `json:"userId"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.UserID == "" || input.RefreshToken == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	stored, err := rdx.GetRefreshToken(input.UserID)
	if err != nil || stored != hashToken(input.RefreshToken) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userId": input.UserID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	issueTokens(w, user)
}

// Logout handles POST /api/auth/logout
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := rdx.DelSession(userID); err != nil {
		log.Printf("Failed to clear session for %s: %v", userID, err)
	}
	if err := rdx.Conn.Del(globals.Ctx, "auth:refresh:"+userID).Err(); err != nil {
		log.Printf("Failed to clear refresh token for %s: %v", userID, err)
	}

	utils.RespondSuccessMsg(w, http.StatusOK, nil, "Logged out successfully")
}
