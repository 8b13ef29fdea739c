package orders

import (
	"fmt"
	"time"

	"herbsera/utils"
)

// GenerateOrderNumber builds a human-readable order number. The random
// suffix only reduces collision odds; uniqueness is enforced by the
// orderNumber index, and the caller retries on a duplicate key.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), utils.GenerateRandomDigitString(3))
}
