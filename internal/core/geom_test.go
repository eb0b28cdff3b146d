package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", NewBox(0, 0, 30, 30), NewBox(20, 20, 30, 30), true},
		{"touching edge", NewBox(0, 0, 30, 30), NewBox(30, 0, 30, 30), false},
		{"fractional overlap", NewBox(0, 0, 30, 30), NewBox(29.5, 29.5, 1, 1), true},
		{"below", NewBox(0, 0, 30, 30), NewBox(0, 31, 30, 30), false},
		{"tall totem", NewBox(100, 400, 30, 90), NewBox(110, 460, 30, 30), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestNewBoxClampsNegativeSize(t *testing.T) {
	b := NewBox(1, 2, -5, -1)
	if b.W != 0 || b.H != 0 {
		t.Errorf("NewBox() size = (%f, %f), expected (0, 0)", b.W, b.H)
	}
}

func TestBoxScale(t *testing.T) {
	b := NewBox(450, 300, 30, 30)
	r := b.Scale(900, 600, 90, 30)

	if r.X != 45 || r.Y != 15 {
		t.Errorf("Scale() origin = (%d, %d), expected (45, 15)", r.X, r.Y)
	}
	if r.W != 3 || r.H != 2 {
		t.Errorf("Scale() size = (%d, %d), expected (3, 2)", r.W, r.H)
	}

	tiny := NewBox(0, 0, 1, 1).Scale(900, 600, 90, 30)
	if tiny.W != 1 || tiny.H != 1 {
		t.Errorf("Scale() of tiny box = (%d, %d), expected at least one cell", tiny.W, tiny.H)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(-5.5, 0, 10); got != 0 {
		t.Errorf("ClampF(-5.5, 0, 10) = %f, expected 0", got)
	}
	if got := ClampF(15.5, 0, 10); got != 10 {
		t.Errorf("ClampF(15.5, 0, 10) = %f, expected 10", got)
	}
}
