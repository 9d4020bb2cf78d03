package geometry

// RotatedRect is a Width x Height rectangle centered on Center and turned by
// Angle radians.
type RotatedRect struct {
	Center Vector
	Width  float64
	Height float64
	Angle  float64
}

// Corners returns the corners clockwise from the top-left one, before rotation.
func (r RotatedRect) Corners() [4]Vector {
	halfWidth := r.Width / 2
	halfHeight := r.Height / 2

	corners := [4]Vector{
		{-halfWidth, -halfHeight}, // Top-left
		{halfWidth, -halfHeight},  // Top-right
		{halfWidth, halfHeight},   // Bottom-right
		{-halfWidth, halfHeight},  // Bottom-left
	}

	for i, corner := range corners {
		corners[i] = corner.Rotate(r.Angle).Add(r.Center)
	}
	return corners
}

// Contains reports whether point lies inside the rectangle or on its edge.
func (r RotatedRect) Contains(point Vector) bool {
	local := point.Sub(r.Center).Rotate(-r.Angle)
	return abs(local.X) <= r.Width/2 && abs(local.Y) <= r.Height/2
}

// Bounds returns the axis-aligned box around the rotated rectangle.
func (r RotatedRect) Bounds() (min Vector, max Vector) {
	corners := r.Corners()
	min, max = corners[0], corners[0]

	for _, corner := range corners[1:] {
		if corner.X < min.X {
			min.X = corner.X
		}
		if corner.X > max.X {
			max.X = corner.X
		}
		if corner.Y < min.Y {
			min.Y = corner.Y
		}
		if corner.Y > max.Y {
			max.Y = corner.Y
		}
	}
	return min, max
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
