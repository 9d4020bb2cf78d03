// Package hud turns a session snapshot into the text lines shown around the
// rotating target. It knows nothing about how the lines are drawn.
package hud

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/meghashyamc/catch2d/rotation"
	"github.com/meghashyamc/catch2d/session"
)

type View struct {
	State    string
	Hint     string
	Angle    string
	Cooldown string
	Action   string   // label for the on-screen capture button
	Banner   string   // failure taunt, empty when hidden
	Stats    []string // round result, only while caught
}

// Build formats snap. prompt names the capture input, e.g. "press SPACE".
func Build(snap session.Snapshot, prompt string) View {
	v := View{
		State:    "State: " + PhaseLabel(snap.Phase),
		Angle:    fmt.Sprintf("Angle: %.1f°", DisplayAngle(snap.Angle)),
		Cooldown: fmt.Sprintf("Big rotation cooldown: %.1fs", snap.BigRotationCooldown.Seconds()),
		Action:   "Catch",
	}

	switch snap.Phase {
	case rotation.PhasePause:
		v.Hint = fmt.Sprintf("Pause window: %.2fs - %s to catch", snap.Remaining.Seconds(), prompt)
	case rotation.PhaseBigRotation:
		v.Hint = fmt.Sprintf("Big rotation: %.2fs", snap.Remaining.Seconds())
	case rotation.PhaseCaughtPause:
		v.Hint = "Caught! " + capitalize(prompt) + " to continue"
		v.Action = "Continue"
	default:
		v.Hint = capitalize(prompt) + " during the pause window to catch"
	}

	if snap.ShowFailureMessage {
		v.Banner = snap.FailureMessage
	}

	if elapsed, failures, ok := snap.CatchStats(); ok {
		v.Stats = []string{
			fmt.Sprintf("Time: %.2fs", elapsed.Seconds()),
			fmt.Sprintf("Failures: %d", failures),
		}
	}

	return v
}

func PhaseLabel(phase rotation.Phase) string {
	switch phase {
	case rotation.PhaseRolling:
		return "rolling"
	case rotation.PhasePause:
		return "pause window"
	case rotation.PhaseBigRotation:
		return "big rotation"
	case rotation.PhaseCaughtPause:
		return "caught"
	}
	return phase.String()
}

// DisplayAngle maps degrees into [0, 360).
func DisplayAngle(degrees float64) float64 {
	angle := math.Mod(degrees, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
