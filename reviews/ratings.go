package reviews

import (
	"context"
	"math"

	"herbsera/db"
	"herbsera/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Round1 rounds to one decimal place, the display precision of rating
// averages.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Aggregate computes the rating summary for a set of review ratings.
func Aggregate(ratings []int) models.Ratings {
	if len(ratings) == 0 {
		return models.Ratings{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return models.Ratings{Average: Round1(avg), Count: len(ratings)}
}

// RecomputeProductRatings rescans every review for the product and
// writes the fresh aggregate onto it. Called explicitly after each
// review create, update and delete rather than through a storage hook,
// so the dependency is visible and the step testable on its own.
func RecomputeProductRatings(ctx context.Context, productID string) error {
	cursor, err := db.ReviewsCollection.Find(ctx, bson.M{"productId": productID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var all []models.Review
	if err := cursor.All(ctx, &all); err != nil {
		return err
	}

	ratings := make([]int, 0, len(all))
	for _, rv := range all {
		ratings = append(ratings, rv.Rating)
	}

	agg := Aggregate(ratings)
	_, err = db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productId": productID},
		bson.M{"$set": bson.M{"ratings": agg}})
	return err
}
