package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/meghashyamc/catch2d/assets"
	"github.com/meghashyamc/catch2d/config"
	"github.com/meghashyamc/catch2d/geometry"
	"github.com/meghashyamc/catch2d/hud"
	"github.com/meghashyamc/catch2d/logger"
	"github.com/meghashyamc/catch2d/session"
)

const (
	screenWidth  = 640
	screenHeight = 480
	prompt       = "press SPACE or click"
)

var (
	backgroundColor = color.RGBA{30, 30, 30, 255}
	hintColor       = color.RGBA{140, 220, 255, 255}
	bannerColor     = color.RGBA{255, 208, 128, 255}
	statsColor      = color.RGBA{140, 255, 140, 255}
	dimColor        = color.RGBA{150, 150, 150, 255}
	buttonColor     = color.RGBA{70, 70, 70, 255}
)

// The capture button sits bottom right. Touch screens have no space key, but
// any click or tap counts, so the button only labels the action.
const (
	buttonWidth  = 130
	buttonHeight = 40
	buttonX      = screenWidth - buttonWidth - 20
	buttonY      = screenHeight - buttonHeight - 60
)

type Game struct {
	cfg     *config.Config
	session *session.Session
	clock   session.TimeSource
	target  *Target
	logger  logger.Logger

	// 1-pixel image scaled into the capture button
	buttonPixel *ebiten.Image
}

func NewGame(cfg *config.Config, log logger.Logger) (*Game, error) {
	clock := session.NewMonotonicClock()
	s, err := session.New(cfg.RotationParams(), cfg.CaptureParams(), session.NewRandom(cfg.GetSeed()), clock.Now(), log)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		session: s,
		clock:   clock,
		target:  NewTarget(geometry.Vector{X: screenWidth / 2, Y: screenHeight / 2}),
		logger:  log,
	}
	g.buttonPixel = ebiten.NewImage(1, 1)
	g.buttonPixel.Fill(buttonColor)

	g.logger.Info("game initialized", "seed", cfg.GetSeed())
	return g, nil
}

func (g *Game) Run() error {
	g.logger.Info("starting game")
	g.setupWindow()

	// Running the game calls Update() on every 'tick'
	return ebiten.RunGame(g)
}

func (g *Game) setupWindow() {
	ebiten.SetWindowSize(g.cfg.GetWindowWidth(), g.cfg.GetWindowHeight())
	ebiten.SetWindowTitle(g.cfg.GetWindowTitle())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
}

// Update handles input before advancing the clock, so a press on the frame a
// pause ends still sees the pause.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.logger.Info("game closed", "report", g.session.Report())
		return ebiten.Termination
	}

	now := g.clock.Now()
	if captureJustPressed() {
		if _, err := g.session.Attempt(now); err != nil {
			return err
		}
	}

	return g.session.Tick(now)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	now := g.clock.Now()
	snap := g.session.Snapshot(now)
	view := hud.Build(snap, prompt)

	hovered := g.target.Collider(snap.Angle).Contains(getCurrentMousePosition())
	g.target.Draw(screen, snap.Angle, hovered)

	drawText(screen, view.State, assets.HUDFont, 20, 30, color.White)
	drawText(screen, view.Hint, assets.HUDFont, 20, 55, hintColor)
	drawText(screen, view.Angle, assets.HUDFont, 20, 80, color.White)
	drawText(screen, view.Cooldown, assets.HUDFont, 20, screenHeight-30, dimColor)
	g.drawButton(screen, view.Action)

	if view.Banner != "" {
		drawTextCentered(screen, view.Banner, assets.BannerFont, screenHeight/2-assets.TargetHeight, bannerColor)
	}
	for i, line := range view.Stats {
		drawTextCentered(screen, line, assets.HUDFont, screenHeight/2+assets.TargetHeight+float64(i)*24, statsColor)
	}
}

func (g *Game) drawButton(screen *ebiten.Image, label string) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(buttonWidth, buttonHeight)
	op.GeoM.Translate(buttonX, buttonY)
	screen.DrawImage(g.buttonPixel, op)

	width, height := text.Measure(label, assets.HUDFont, 0)
	drawText(screen, label, assets.HUDFont, buttonX+(buttonWidth-width)/2, buttonY+(buttonHeight-height)/2, color.White)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, s, face, op)
}

func drawTextCentered(screen *ebiten.Image, s string, face text.Face, y float64, col color.Color) {
	width, _ := text.Measure(s, face, 0)
	drawText(screen, s, face, (screenWidth-width)/2, y, col)
}
