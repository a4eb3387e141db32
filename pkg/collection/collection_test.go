package collection

import "testing"

func TestMap(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(n int) int { return n * 2 })
	if len(doubled) != 3 || doubled[2] != 6 {
		t.Fatalf("unexpected result: %v", doubled)
	}
}

func TestFilter(t *testing.T) {
	evens := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	if len(evens) != 2 {
		t.Fatalf("unexpected result: %v", evens)
	}
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "bb", "ccc"}, func(s string) bool { return len(s) == 2 })
	if !ok || v != "bb" {
		t.Fatalf("expected bb, got %q ok=%v", v, ok)
	}

	_, ok = First([]string{"a"}, func(s string) bool { return false })
	if ok {
		t.Fatal("expected no match")
	}
}

func TestUniqueByKeepsFirstOccurrence(t *testing.T) {
	got := UniqueBy([]string{"Tools", "Kitchen", "Tools"}, func(s string) string { return s })
	if len(got) != 2 || got[0] != "Tools" || got[1] != "Kitchen" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestSum(t *testing.T) {
	total := Sum([]float64{1.5, 2.5}, func(f float64) float64 { return f })
	if total != 4.0 {
		t.Fatalf("expected 4.0, got %v", total)
	}

	if Sum(nil, func(f float64) float64 { return f }) != 0 {
		t.Fatal("empty sum must be zero")
	}
}
