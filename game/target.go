package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/meghashyamc/catch2d/assets"
	"github.com/meghashyamc/catch2d/geometry"
)

// Target is the rectangle the player tries to catch, drawn centred on
// position and turned by the rotation clock's angle.
type Target struct {
	sprite   *ebiten.Image
	position geometry.Vector
}

func NewTarget(position geometry.Vector) *Target {
	return &Target{
		sprite:   assets.TargetSprite,
		position: position,
	}
}

// Collider is the target's outline at angleDegrees, in screen coordinates.
func (t *Target) Collider(angleDegrees float64) geometry.RotatedRect {
	bounds := t.sprite.Bounds()
	return geometry.RotatedRect{
		Center: t.position,
		Width:  float64(bounds.Dx()),
		Height: float64(bounds.Dy()),
		Angle:  -geometry.Radians(angleDegrees),
	}
}

// Draw renders the target. Screen Y points down, so the angle is negated to
// turn counter-clockwise.
func (t *Target) Draw(screen *ebiten.Image, angleDegrees float64, highlight bool) {
	op := &ebiten.DrawImageOptions{}

	bounds := t.sprite.Bounds()
	op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
	op.GeoM.Rotate(-geometry.Radians(angleDegrees))
	op.GeoM.Translate(t.position.X, t.position.Y)

	if highlight {
		op.ColorScale.Scale(1.2, 1.2, 1.2, 1.0)
	}

	screen.DrawImage(t.sprite, op)
}
