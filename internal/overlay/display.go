package overlay

import (
	"time"

	"keyboim/internal/keys"
)

// DefaultFadeWindow is how long a combination stays visible after it was
// last extended.
const DefaultFadeWindow = 3 * time.Second

// Display is the render loop's view of the keyboard. It keeps showing the
// largest chord of the current burst after keys are released and fades it
// out over time. It is owned by the render goroutine and is not safe for
// concurrent use.
type Display struct {
	fade       time.Duration
	last       []keys.Code
	cleared    bool
	lastUpdate time.Time
}

// NewDisplay creates an empty display. A non-positive fade uses
// DefaultFadeWindow.
func NewDisplay(fade time.Duration) *Display {
	d := &Display{last: make([]keys.Code, 0, 8)}
	d.SetFadeWindow(fade)
	return d
}

// SetFadeWindow changes the fade duration.
func (d *Display) SetFadeWindow(fade time.Duration) {
	if fade <= 0 {
		fade = DefaultFadeWindow
	}
	d.fade = fade
}

// Observe folds one snapshot of the held keys into the display and reports
// whether the displayed combination was replaced.
//
// An empty snapshot only marks the burst as finished. A non-empty one
// replaces the displayed combination when it holds more keys than it, or
// when it starts a new burst.
func (d *Display) Observe(live []keys.Code, now time.Time) bool {
	if len(live) == 0 {
		d.cleared = true
		return false
	}

	grew := false
	if len(live) > len(d.last) || d.cleared {
		d.last = append(d.last[:0], live...)
		d.lastUpdate = now
		grew = true
	}
	d.cleared = false
	return grew
}

// Combination returns the displayed chord in press order. The slice is
// only valid until the next Observe.
func (d *Display) Combination() []keys.Code {
	return d.last
}

// Empty reports whether nothing has been displayed yet.
func (d *Display) Empty() bool {
	return len(d.last) == 0
}

// Opacity returns clamp(1 - elapsed/fade, 0, 1) for the displayed chord.
func (d *Display) Opacity(now time.Time) float64 {
	if len(d.last) == 0 {
		return 0
	}
	elapsed := now.Sub(d.lastUpdate)
	o := 1 - float64(elapsed)/float64(d.fade)
	switch {
	case o < 0:
		return 0
	case o > 1:
		return 1
	}
	return o
}
