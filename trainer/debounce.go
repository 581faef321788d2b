package trainer

import (
	"time"

	"github.com/jsphweid/fretrainer/model"
)

// Debouncer suppresses repeated emissions of the same detection label inside
// a fixed window, so a single sustained note doesn't flood the loop. A
// different label, or the same label after the window elapses (re-plucking),
// is always accepted.
type Debouncer struct {
	Window time.Duration
	Now    func() time.Time

	last     model.DetectionEvent
	hasLast  bool
	lastTime time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		Window: window,
		Now:    time.Now,
	}
}

// Accept reports whether the label should be emitted downstream and, if so,
// records it as the most recent accepted event. Suppressed labels leave the
// recorded event and its timestamp untouched.
func (d *Debouncer) Accept(label model.DetectionEvent) bool {
	now := d.Now()
	if d.hasLast && label == d.last && now.Sub(d.lastTime) < d.Window {
		return false
	}
	d.last = label
	d.hasLast = true
	d.lastTime = now
	return true
}
