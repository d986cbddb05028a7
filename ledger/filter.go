package ledger

import (
	"strings"
	"time"
)

// Window narrows rows by the reservation's own date (check-in, table slot,
// event date): today's reservations, or those due within the next week.
type Window string

const (
	WindowAll   Window = "all"
	WindowToday Window = "today"
	WindowWeek  Window = "week"
)

// Filter is the admin's current view criteria. Zero value matches everything.
// Now is injectable so tests can pin the calendar; it defaults to time.Now.
type Filter struct {
	// Search matches case-insensitively against code, client and description.
	Search string
	// Status matches exactly when non-empty.
	Status string
	// Kind restricts to one collection when non-empty.
	Kind Kind
	// Window restricts by the reservation date. Empty means WindowAll.
	Window Window

	Now func() time.Time
}

// Matches reports whether the entry passes every active criterion. Criteria
// are ANDed; an empty criterion passes everything.
func (f Filter) Matches(e Entry) bool {
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(e.Code), needle) &&
			!strings.Contains(strings.ToLower(e.Client), needle) &&
			!strings.Contains(strings.ToLower(e.Description), needle) {
			return false
		}
	}
	return f.inWindow(e.When)
}

func (f Filter) inWindow(when time.Time) bool {
	switch f.Window {
	case "", WindowAll:
		return true
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	n := now()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())

	switch f.Window {
	case WindowToday:
		return !when.Before(today) && when.Before(today.AddDate(0, 0, 1))
	case WindowWeek:
		// upcoming: today through seven days out
		return !when.Before(today) && !when.After(today.AddDate(0, 0, 7))
	}
	return true
}
