package orders

import "testing"

func TestFoldLinesMergesRepeatedProduct(t *testing.T) {
	// stock 3 must reject this order: the combined quantity is 4
	lines := foldLines([]orderLine{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p1", Quantity: 2},
	})

	if len(lines) != 1 {
		t.Fatalf("expected 1 folded line, got %d", len(lines))
	}
	if lines[0].Quantity != 4 {
		t.Fatalf("expected combined quantity 4, got %d", lines[0].Quantity)
	}
}

func TestFoldLinesKeepsDistinctProducts(t *testing.T) {
	lines := foldLines([]orderLine{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 5},
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p3", Quantity: 1},
	})

	if len(lines) != 3 {
		t.Fatalf("expected 3 folded lines, got %d", len(lines))
	}
	// first-seen order preserved
	for i, want := range []string{"p1", "p2", "p3"} {
		if lines[i].ProductID != want {
			t.Fatalf("line %d: expected %s, got %s", i, want, lines[i].ProductID)
		}
	}
	if lines[0].Quantity != 3 || lines[1].Quantity != 5 || lines[2].Quantity != 1 {
		t.Fatalf("unexpected quantities %+v", lines)
	}
}

func TestFoldLinesEmpty(t *testing.T) {
	if got := foldLines(nil); len(got) != 0 {
		t.Fatalf("expected no lines, got %v", got)
	}
}
