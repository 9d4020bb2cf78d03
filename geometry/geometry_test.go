package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func closeTo(a, b Vector) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestRotate(t *testing.T) {
	tests := []struct {
		in    Vector
		angle float64
		want  Vector
	}{
		{Vector{1, 0}, 0, Vector{1, 0}},
		{Vector{1, 0}, math.Pi / 2, Vector{0, 1}},
		{Vector{1, 0}, math.Pi, Vector{-1, 0}},
		{Vector{0, 2}, -math.Pi / 2, Vector{2, 0}},
	}

	for _, tt := range tests {
		if got := tt.in.Rotate(tt.angle); !closeTo(got, tt.want) {
			t.Errorf("%v.Rotate(%f): expected %v, got %v", tt.in, tt.angle, tt.want, got)
		}
	}
}

func TestRotatePreservesMagnitude(t *testing.T) {
	v := Vector{3, 4}
	for _, angle := range []float64{0.1, 1, 2.5, -4} {
		if got := v.Rotate(angle).Magnitude(); math.Abs(got-5) > epsilon {
			t.Errorf("expected magnitude 5 after rotating by %f, got %f", angle, got)
		}
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); math.Abs(got-math.Pi) > epsilon {
		t.Errorf("expected pi, got %f", got)
	}
}

func TestRotatedRectContains(t *testing.T) {
	rect := RotatedRect{Center: Vector{10, 10}, Width: 8, Height: 2}

	tests := []struct {
		name  string
		angle float64
		point Vector
		want  bool
	}{
		{"center", 0, Vector{10, 10}, true},
		{"long side unrotated", 0, Vector{13.9, 10}, true},
		{"edge is inside", 0, Vector{14, 11}, true},
		{"outside short side", 0, Vector{10, 12}, false},
		{"long side after quarter turn", math.Pi / 2, Vector{10, 13.9}, true},
		{"old long side after quarter turn", math.Pi / 2, Vector{13.9, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rect
			r.Angle = tt.angle
			if got := r.Contains(tt.point); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRotatedRectBounds(t *testing.T) {
	rect := RotatedRect{Center: Vector{0, 0}, Width: 4, Height: 2, Angle: math.Pi / 2}

	min, max := rect.Bounds()
	if !closeTo(min, Vector{-1, -2}) || !closeTo(max, Vector{1, 2}) {
		t.Errorf("expected bounds (-1,-2)-(1,2), got %v-%v", min, max)
	}

	corners := rect.Corners()
	if !closeTo(corners[0], Vector{1, -2}) {
		t.Errorf("expected top-left corner at (1,-2), got %v", corners[0])
	}
}
