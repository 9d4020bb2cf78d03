// Package terminal runs the catch game in a terminal with tcell.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/meghashyamc/catch2d/hud"
	"github.com/meghashyamc/catch2d/logger"
	"github.com/meghashyamc/catch2d/session"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	prompt        = "press SPACE or click"
)

var errQuit = errors.New("quit requested")

type Frontend struct {
	screen  tcell.Screen
	session *session.Session
	clock   session.TimeSource
	logger  logger.Logger

	mouseDown bool
}

func New(screen tcell.Screen, s *session.Session, clock session.TimeSource, log logger.Logger) *Frontend {
	if log == nil {
		log = logger.Discard()
	}
	screen.EnableMouse()
	screen.HideCursor()

	return &Frontend{
		screen:  screen,
		session: s,
		clock:   clock,
		logger:  log,
	}
}

// Run drives the game until the player quits or ctx is done. Input events are
// read on a separate goroutine but handled on this one, and always before the
// tick of the frame they arrived in.
func (f *Frontend) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	f.logger.Info("terminal frontend started")
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if err := f.HandleEvent(ev); err != nil {
				return f.stop(err)
			}

		case <-ticker.C:
			if err := f.step(eventChan); err != nil {
				return f.stop(err)
			}
		}
	}
}

func (f *Frontend) stop(err error) error {
	if errors.Is(err, errQuit) {
		f.logger.Info("terminal frontend stopped")
		return nil
	}
	return err
}

// step handles every queued event before advancing the clock, so a press that
// arrived during the last frame of a pause window is judged against that pause.
func (f *Frontend) step(pending <-chan tcell.Event) error {
	for {
		select {
		case ev := <-pending:
			if err := f.HandleEvent(ev); err != nil {
				return err
			}
		default:
			return f.Frame()
		}
	}
}

// Frame advances the game to the current time and redraws.
func (f *Frontend) Frame() error {
	now := f.clock.Now()
	if err := f.session.Tick(now); err != nil {
		return fmt.Errorf("failed to advance rotation: %w", err)
	}
	f.Draw(now)
	return nil
}

// HandleEvent applies one input event. It returns errQuit when the player asks
// to leave.
func (f *Frontend) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return errQuit
		}
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			return f.attempt()
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		// motion with the button held reports Button1 again
		if pressed && !f.mouseDown {
			f.mouseDown = true
			return f.attempt()
		}
		f.mouseDown = pressed

	case *tcell.EventResize:
		f.screen.Sync()
	}

	return nil
}

func (f *Frontend) attempt() error {
	now := f.clock.Now()
	if _, err := f.session.Attempt(now); err != nil {
		f.logger.Error("capture attempt failed", "at", now, "err", err)
		return fmt.Errorf("capture attempt failed: %w", err)
	}
	return nil
}

func (f *Frontend) Draw(now time.Duration) {
	f.screen.Clear()

	width, height := f.screen.Size()
	snap := f.session.Snapshot(now)
	view := hud.Build(snap, prompt)

	target := drawTarget(f.screen, width, height, snap.Angle)

	drawText(f.screen, 1, 0, view.State, textStyle)
	drawText(f.screen, 1, 1, view.Hint, hintStyle)
	drawText(f.screen, 1, 2, view.Angle, textStyle)
	drawText(f.screen, 1, height-1, view.Cooldown, dimStyle)
	drawText(f.screen, 1, height-2, "q/Esc: quit", dimStyle)
	button := "[ " + view.Action + " ]"
	drawText(f.screen, max(0, width-runewidth.StringWidth(button)-1), height-1, button, buttonStyle)

	if view.Banner != "" {
		drawTextCentered(f.screen, width, max(3, target.top-1), view.Banner, bannerStyle)
	}
	for i, line := range view.Stats {
		drawTextCentered(f.screen, width, min(height-3, target.bottom+1+i), line, statsStyle)
	}

	f.screen.Show()
}
