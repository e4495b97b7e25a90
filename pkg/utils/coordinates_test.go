package utils

import (
	"math"
	"testing"
)

func TestPointLerp(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 100, Y: 50}

	mid := a.Lerp(b, 0.5)
	if mid.X != 50 || mid.Y != 25 {
		t.Errorf("Lerp(0.5) = %+v, want (50, 25)", mid)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v, want %+v", got, b)
	}
}

func TestSurfaceCenter(t *testing.T) {
	c := SurfaceCenter(1024, 512)
	if c.X != 512 || c.Y != 256 {
		t.Errorf("SurfaceCenter = %+v", c)
	}
}

func TestInBounds(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		margin float64
		want   bool
	}{
		{"内部", Point{10, 10}, 0, true},
		{"边界", Point{100, 50}, 0, true},
		{"外部", Point{-5, 10}, 0, false},
		{"外扩范围内", Point{-5, 10}, 20, true},
		{"外扩范围外", Point{125, 10}, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InBounds(tt.p, 100, 50, tt.margin); got != tt.want {
				t.Errorf("InBounds(%+v, margin=%v) = %v, want %v", tt.p, tt.margin, got, tt.want)
			}
		})
	}
}

func TestPolar(t *testing.T) {
	tests := []struct {
		angle  float64
		wantDX float64
		wantDY float64
	}{
		{0, 10, 0},
		{90, 0, 10},
		{45, 10 / math.Sqrt2, 10 / math.Sqrt2},
		{225, -10 / math.Sqrt2, -10 / math.Sqrt2},
	}

	for _, tt := range tests {
		dx, dy := Polar(tt.angle, 10)
		if math.Abs(dx-tt.wantDX) > 1e-9 || math.Abs(dy-tt.wantDY) > 1e-9 {
			t.Errorf("Polar(%v, 10) = (%v, %v), want (%v, %v)", tt.angle, dx, dy, tt.wantDX, tt.wantDY)
		}
	}
}
