package utils

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Neem & Tulsi Soap": "neem-tulsi-soap",
		"  Rose Oil  ":      "rose-oil",
		"Multani Mitti":     "multani-mitti",
		"100% Natural!!":    "100-natural",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags("Herbal, soap , ,HERBAL,oil")
	want := []string{"herbal", "soap", "oil"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitTags = %v, want %v", got, want)
	}
}

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products/products", nil)
	skip, limit, page := ParsePagination(r, 12, 100)
	if skip != 0 || limit != 12 || page != 1 {
		t.Fatalf("got skip=%d limit=%d page=%d", skip, limit, page)
	}
}

func TestParsePaginationClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?page=3&limit=500", nil)
	skip, limit, page := ParsePagination(r, 12, 100)
	if limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", limit)
	}
	if page != 3 || skip != 200 {
		t.Fatalf("got skip=%d page=%d", skip, page)
	}
}

func TestParseSort(t *testing.T) {
	allowed := map[string]bool{"price": true, "createdAt": true}
	fallback := bson.D{{Key: "createdAt", Value: -1}}

	if got := ParseSort("-price", fallback, allowed); !reflect.DeepEqual(got, bson.D{{Key: "price", Value: -1}}) {
		t.Fatalf("descending sort: got %v", got)
	}
	if got := ParseSort("price", fallback, allowed); !reflect.DeepEqual(got, bson.D{{Key: "price", Value: 1}}) {
		t.Fatalf("ascending sort: got %v", got)
	}
	if got := ParseSort("stock", fallback, allowed); !reflect.DeepEqual(got, fallback) {
		t.Fatalf("disallowed field must fall back, got %v", got)
	}
	if got := ParseSort("", fallback, allowed); !reflect.DeepEqual(got, fallback) {
		t.Fatalf("empty sort must fall back, got %v", got)
	}
}

func TestPages(t *testing.T) {
	cases := []struct {
		total, limit int64
		want         int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := Pages(c.total, c.limit); got != c.want {
			t.Fatalf("Pages(%d, %d) = %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	cases := map[string]int{
		"5":    5,
		" 12 ": 12,
		"":     0,
		"abc":  0,
		"-3":   -3,
	}
	for in, want := range cases {
		if got := ParseInt(in); got != want {
			t.Fatalf("ParseInt(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if got := ParseFloat(" 49.5 "); got != 49.5 {
		t.Fatalf("ParseFloat = %v, want 49.5", got)
	}
	if got := ParseFloat("junk"); got != 0 {
		t.Fatalf("ParseFloat junk = %v, want 0", got)
	}
}

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(3)
	if len(s) != 3 {
		t.Fatalf("expected 3 digits, got %q", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("expected only digits, got %q", s)
		}
	}
}
