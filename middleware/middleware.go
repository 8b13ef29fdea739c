package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"herbsera/db"
	"herbsera/globals"
	"herbsera/models"
	"herbsera/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Claims carried by the identity provider's bearer tokens.
type Claims struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Picture     string `json:"picture,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	jwt.RegisteredClaims
}

func parseToken(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errors.New("missing token")
	}
	if len(header) < 8 || !strings.HasPrefix(header, "Bearer ") {
		return nil, errors.New("invalid token format")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(header[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// resolveUser finds the user for a verified subject, provisioning a new
// record from the token claims the first time the subject is seen.
func resolveUser(ctx context.Context, claims *Claims) (*models.User, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"subject": claims.Subject}).Decode(&user)
	if err == nil {
		return &user, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	displayName := claims.Name
	if displayName == "" && claims.Email != "" {
		displayName = strings.Split(claims.Email, "@")[0]
	}

	now := time.Now()
	user = models.User{
		UserID:      utils.GenerateRandomString(16),
		Subject:     claims.Subject,
		Email:       claims.Email,
		DisplayName: displayName,
		PhotoURL:    claims.Picture,
		PhoneNumber: claims.PhoneNumber,
		Role:        models.RoleUser,
		Addresses:   []models.Address{},
		Wishlist:    []string{},
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		// Concurrent first request for the same subject; pick up the winner.
		if mongo.IsDuplicateKeyError(err) {
			if ferr := db.UserCollection.FindOne(ctx, bson.M{"subject": claims.Subject}).Decode(&user); ferr == nil {
				return &user, nil
			}
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies the bearer token, provisions the user on first
// sight, and stores the user ID and role in the request context.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := parseToken(r)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.RespondWithError(w, http.StatusUnauthorized, "Authentication token expired")
				return
			}
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}

		user, err := resolveUser(r.Context(), claims)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve user")
			return
		}
		if !user.IsActive {
			utils.RespondWithError(w, http.StatusForbidden, "Account is disabled")
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, user.UserID)
		ctx = context.WithValue(ctx, globals.RoleKey, user.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin gates administrative endpoints. The role set is closed:
// anything other than an exact admin match is rejected.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		switch utils.GetRoleFromRequest(r) {
		case models.RoleAdmin:
			next(w, r, ps)
		case models.RoleUser:
			utils.RespondWithError(w, http.StatusForbidden, "Access denied. Admin privileges required.")
		default:
			utils.RespondWithError(w, http.StatusForbidden, "Access denied. Admin privileges required.")
		}
	}
}

// OptionalAuth resolves the identity when a valid token is present and
// proceeds anonymously otherwise.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims, err := parseToken(r); err == nil {
			if user, err := resolveUser(r.Context(), claims); err == nil {
				ctx := context.WithValue(r.Context(), globals.UserIDKey, user.UserID)
				ctx = context.WithValue(ctx, globals.RoleKey, user.Role)
				r = r.WithContext(ctx)
			}
		}
		next(w, r, ps)
	}
}
