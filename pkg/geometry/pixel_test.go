package geometry

import "testing"

func TestNewRectNormalizes(t *testing.T) {
	r := NewRect(NewPixel(50, 10), NewPixel(20, 40))

	if r.Min != NewPixel(20, 10) || r.Max != NewPixel(50, 40) {
		t.Errorf("NewRect failed: expected (20,10)-(50,40), got %v-%v", r.Min, r.Max)
	}
	if r.Width() != 30 || r.Height() != 30 {
		t.Errorf("NewRect failed: expected 30x30, got %dx%d", r.Width(), r.Height())
	}
	if !r.Contains(NewPixel(20, 40)) || r.Contains(NewPixel(51, 20)) {
		t.Errorf("Contains failed for %v", r)
	}
}

func TestRectExpand(t *testing.T) {
	r := NewRect(NewPixel(10, 10), NewPixel(20, 20)).Expand(10)
	if r.Min != NewPixel(0, 0) || r.Max != NewPixel(30, 30) {
		t.Errorf("Expand failed: got %v-%v", r.Min, r.Max)
	}
}
