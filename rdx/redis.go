package rdx

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"herbsera/globals"
	"herbsera/models"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

// --- Session helpers ---

func SetSession(userID, token string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, "auth:token:"+userID, token, ttl).Err()
}

func DelSession(userID string) error {
	return Conn.Del(globals.Ctx, "auth:token:"+userID).Err()
}

func SetRefreshToken(userID, hashed string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, "auth:refresh:"+userID, hashed, ttl).Err()
}

func GetRefreshToken(userID string) (string, error) {
	return Conn.Get(globals.Ctx, "auth:refresh:"+userID).Result()
}

// --- Product cache ---

const productCacheTTL = 5 * time.Minute

func CacheProduct(p *models.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := Conn.Set(globals.Ctx, "product:"+p.ProductID, data, productCacheTTL).Err(); err != nil {
		log.Printf("Redis cache set failed for product %s: %v", p.ProductID, err)
	}
}

// CachedProduct returns the cached product or nil on miss.
func CachedProduct(productID string) *models.Product {
	data, err := Conn.Get(globals.Ctx, "product:"+productID).Bytes()
	if err != nil {
		return nil
	}
	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}

// InvalidateProduct drops the cache entry after any catalog or stock
// mutation so reads never serve a stale stock count for long.
func InvalidateProduct(productID string) {
	if err := Conn.Del(globals.Ctx, "product:"+productID).Err(); err != nil {
		log.Printf("Redis cache invalidation failed for product %s: %v", productID, err)
	}
}
