package components

import (
	"fmt"
	"strings"

	"streamdex/internal/engine"
	"streamdex/internal/tui/styles"
)

// Handle identifies which end of the slider is being moved.
type Handle int

const (
	HandleLow Handle = iota
	HandleHigh
)

// RangeSlider is a dual-handle selector over a bounded integer domain.
// The low-before-high invariant lives in engine.Range; the slider only
// decides which handle a key press moves.
type RangeSlider struct {
	label  string
	rng    engine.Range
	step   int
	active Handle
	dirty  bool
}

// NewRangeSlider creates a slider over the given range with a movement step.
func NewRangeSlider(label string, rng engine.Range, step int) RangeSlider {
	if step < 1 {
		step = 1
	}
	return RangeSlider{label: label, rng: rng, step: step}
}

// Range returns the current selection.
func (s RangeSlider) Range() engine.Range {
	return s.rng
}

// SetRange replaces the selection, e.g. after restoring preferences.
func (s *RangeSlider) SetRange(rng engine.Range) {
	s.rng = rng
}

// ActiveHandle returns the handle key presses currently move.
func (s RangeSlider) ActiveHandle() Handle {
	return s.active
}

// ToggleHandle switches which handle subsequent moves affect.
func (s *RangeSlider) ToggleHandle() {
	if s.active == HandleLow {
		s.active = HandleHigh
	} else {
		s.active = HandleLow
	}
}

// TakeDirty reports and clears whether the selection changed since the
// last call. The parent uses it to push changes into the engine.
func (s *RangeSlider) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// HandleKey processes a key press; returns false for keys it doesn't own.
func (s *RangeSlider) HandleKey(key string) bool {
	switch key {
	case "h", "left":
		s.move(-s.step)
		return true
	case "l", "right":
		s.move(s.step)
		return true
	case "H", "shift+left":
		s.move(-s.step * 10)
		return true
	case "L", "shift+right":
		s.move(s.step * 10)
		return true
	case "0":
		s.reset()
		return true
	}
	return false
}

func (s *RangeSlider) move(delta int) {
	before := s.rng
	if s.active == HandleLow {
		s.rng.SetLow(s.rng.Low + delta)
	} else {
		s.rng.SetHigh(s.rng.High + delta)
	}
	if s.rng != before {
		s.dirty = true
	}
}

func (s *RangeSlider) reset() {
	before := s.rng
	s.rng.Set(s.rng.Min, s.rng.Max)
	if s.rng != before {
		s.dirty = true
	}
}

// View renders the slider as a track with two handles, e.g.
//
//	Year  1975 ──█━━━━━█── 2012
func (s RangeSlider) View(trackWidth int, focused bool) string {
	if trackWidth < 4 {
		trackWidth = 4
	}

	span := s.rng.Max - s.rng.Min
	lowPos, highPos := 0, trackWidth-1
	if span > 0 {
		lowPos = (s.rng.Low - s.rng.Min) * (trackWidth - 1) / span
		highPos = (s.rng.High - s.rng.Min) * (trackWidth - 1) / span
	}

	var track strings.Builder
	for i := 0; i < trackWidth; i++ {
		switch {
		case i == lowPos || i == highPos:
			track.WriteString(styles.SliderHandleStyle.Render("█"))
		case i > lowPos && i < highPos:
			track.WriteString(styles.SliderRangeStyle.Render("━"))
		default:
			track.WriteString(styles.SliderTrackStyle.Render("─"))
		}
	}

	labelStyle := styles.SubtitleStyle
	if focused {
		labelStyle = styles.AccentStyle
	}
	lowLabel := fmt.Sprintf("%d", s.rng.Low)
	highLabel := fmt.Sprintf("%d", s.rng.High)
	if focused && s.active == HandleLow {
		lowLabel = styles.FocusedItemStyle.Render(lowLabel)
		highLabel = styles.SubtitleStyle.Render(highLabel)
	} else if focused {
		lowLabel = styles.SubtitleStyle.Render(lowLabel)
		highLabel = styles.FocusedItemStyle.Render(highLabel)
	} else {
		lowLabel = styles.DimStyle.Render(lowLabel)
		highLabel = styles.DimStyle.Render(highLabel)
	}

	line := fmt.Sprintf("%s %s %s", lowLabel, track.String(), highLabel)
	return labelStyle.Render(styles.Pad(s.label, 8)) + line
}
