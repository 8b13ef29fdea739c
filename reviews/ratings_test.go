package reviews

import "testing"

func TestRound1(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4, 4},
		{4.25, 4.3},
		{4.24, 4.2},
		{3.3333333, 3.3},
		{4.95, 5},
	}
	for _, c := range cases {
		if got := Round1(c.in); got != c.want {
			t.Fatalf("Round1(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)
	if agg.Average != 0 || agg.Count != 0 {
		t.Fatalf("expected zero aggregate for no reviews, got %+v", agg)
	}
}

func TestAggregate(t *testing.T) {
	agg := Aggregate([]int{5, 4, 4})
	if agg.Count != 3 {
		t.Fatalf("expected count 3, got %d", agg.Count)
	}
	// 13/3 = 4.333..., displayed to one decimal
	if agg.Average != 4.3 {
		t.Fatalf("expected average 4.3, got %v", agg.Average)
	}
}

func TestAggregateSingle(t *testing.T) {
	agg := Aggregate([]int{2})
	if agg.Average != 2 || agg.Count != 1 {
		t.Fatalf("expected average 2 count 1, got %+v", agg)
	}
}
