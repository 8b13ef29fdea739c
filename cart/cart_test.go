package cart

import (
	"testing"

	"herbsera/models"
)

func TestMergeItemAppendsNewLine(t *testing.T) {
	items := mergeItem(nil, "prod1", "Neem Soap", "/static/productpic/neem.jpg", 2, 120)

	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	line := items[0]
	if line.ItemID == "" {
		t.Fatal("expected a generated item id")
	}
	if line.ProductID != "prod1" || line.Quantity != 2 || line.Price != 120 {
		t.Fatalf("unexpected line %+v", line)
	}
}

func TestMergeItemFoldsQuantity(t *testing.T) {
	items := []models.CartItem{
		{ItemID: "i1", ProductID: "prod1", Name: "Neem Soap", Quantity: 1, Price: 100},
		{ItemID: "i2", ProductID: "prod2", Name: "Rose Oil", Quantity: 3, Price: 250},
	}

	items = mergeItem(items, "prod1", "Neem Soap", "", 2, 110)

	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity folded to 3, got %d", items[0].Quantity)
	}
	// price is re-stamped from the catalog on every merge
	if items[0].Price != 110 {
		t.Fatalf("expected price re-stamped to 110, got %v", items[0].Price)
	}
	if items[0].ItemID != "i1" {
		t.Fatalf("expected existing line id kept, got %s", items[0].ItemID)
	}
	if items[1].Quantity != 3 || items[1].Price != 250 {
		t.Fatalf("other line must be untouched, got %+v", items[1])
	}
}
