package utils

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParsePagination reads ?page and ?limit, returning mongo skip/limit
// values plus the page number. limit is clamped to maxLimit.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64, page int) {
	q := r.URL.Query()

	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	skip = int64(page-1) * limit
	return skip, limit, page
}

// ParseSort maps a ?sort value like "price" or "-createdAt" onto a
// mongo sort document, falling back to fallback for unknown fields.
func ParseSort(sortParam string, fallback bson.D, allowed map[string]bool) bson.D {
	if sortParam == "" {
		return fallback
	}
	field := sortParam
	dir := 1
	if sortParam[0] == '-' {
		field = sortParam[1:]
		dir = -1
	}
	if allowed != nil && !allowed[field] {
		return fallback
	}
	return bson.D{{Key: field, Value: dir}}
}

// Pages computes the page count for a total and limit.
func Pages(total, limit int64) int {
	if limit < 1 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return int(pages)
}

// FindAndDecode runs a Find and decodes every document into T.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
