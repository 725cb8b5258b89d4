package planner

import "time"

// DefaultLookahead is how far ahead of a task's start the reminder scan
// looks.
const DefaultLookahead = 15 * time.Minute

// Window is a half-open interval [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window. From is inclusive,
// To is exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// WindowResolver computes reminder windows and calendar dates in a fixed
// scheduling timezone, so scan comparisons and stored instants share one
// time reference regardless of host locale.
type WindowResolver struct {
	loc       *time.Location
	lookahead time.Duration
}

func NewWindowResolver(loc *time.Location, lookahead time.Duration) *WindowResolver {
	if loc == nil {
		loc = time.Local
	}
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &WindowResolver{loc: loc, lookahead: lookahead}
}

// Window returns [now, now+lookahead) anchored at the given instant.
// Windows are computed fresh per scan; nothing is carried between ticks.
func (r *WindowResolver) Window(now time.Time) Window {
	local := now.In(r.loc)
	return Window{From: local, To: local.Add(r.lookahead)}
}

// DateOf truncates the instant to a YYYY-MM-DD calendar date in the
// scheduling timezone.
func (r *WindowResolver) DateOf(now time.Time) string {
	return now.In(r.loc).Format("2006-01-02")
}

// Location exposes the scheduling timezone for time parsing.
func (r *WindowResolver) Location() *time.Location {
	return r.loc
}
