package assets

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	TargetWidth  = 200
	TargetHeight = 120
)

var TargetColor = color.RGBA{200, 100, 60, 255}

var (
	TargetSprite *ebiten.Image
	HUDFont      *text.GoTextFace
	BannerFont   *text.GoTextFace
)

func init() {
	TargetSprite = ebiten.NewImage(TargetWidth, TargetHeight)
	TargetSprite.Fill(TargetColor)

	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	HUDFont = &text.GoTextFace{
		Source: fontSource,
		Size:   16,
	}
	BannerFont = &text.GoTextFace{
		Source: fontSource,
		Size:   22,
	}
}
