package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestViewportMapping(t *testing.T) {
	// 2000 world units over 20 rows: 100 units per row, 50 per column.
	v := NewViewport(2000, 20, 1)

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"origin row", v.Row(0), 1},
		{"mid row", v.Row(1000), 11},
		{"last unit row", v.Row(1999), 20},
		{"origin col", v.Col(0), 0},
		{"col", v.Col(300), 6},
		{"negative col", v.Col(-10), -1},
	}

	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %d, expected %d", tc.name, tc.got, tc.want)
		}
	}
}

func TestViewportZeroRows(t *testing.T) {
	v := NewViewport(2000, 0, 0)
	if v.UnitsPerRow != 2000 {
		t.Errorf("Zero rows should fall back to one row, got %f units per row", v.UnitsPerRow)
	}
}
