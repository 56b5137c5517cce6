package presence

import (
	"fmt"
	"time"
)

// GuardWindow is a daily range of hours [Start, End) during which the system
// is active regardless of who is home. A window with Start > End wraps past
// midnight; Start == End is an empty window.
type GuardWindow struct {
	Start int
	End   int
}

func (w GuardWindow) Contains(t time.Time) bool {
	h := t.Hour()
	if w.Start <= w.End {
		return h >= w.Start && h < w.End
	}
	return h >= w.Start || h < w.End
}

func (w GuardWindow) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.Start, w.End)
}
