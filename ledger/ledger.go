package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Statuses that block deletion. A reservation in one of these states must be
// cancelled or completed before it can be removed.
var protectedStatuses = map[string]bool{
	"pending":   true,
	"confirmed": true,
}

var (
	// ErrEntryNotFound means the composite id matches no loaded row.
	ErrEntryNotFound = errors.New("reservation not found in ledger")
	// ErrPriceNotEditable rejects a price change on any non-salon row.
	ErrPriceNotEditable = errors.New("price is only editable for salon reservations")
)

// ProtectedStateError reports a deletion attempt against an active
// reservation. The attempt never reaches the server.
type ProtectedStateError struct {
	Status string
}

func (e *ProtectedStateError) Error() string {
	return fmt.Sprintf("cannot delete a %s reservation; cancel or complete it first", e.Status)
}

// API is the slice of the backend the ledger needs. Mutations address one
// collection at a time via the kind.
type API interface {
	RoomReservations(ctx context.Context) ([]RoomRecord, error)
	TableReservations(ctx context.Context) ([]TableRecord, error)
	SalonReservations(ctx context.Context) ([]SalonRecord, error)
	UpdateReservation(ctx context.Context, kind Kind, id uint, status string, total *float64) error
	DeleteReservation(ctx context.Context, kind Kind, id uint) error
}

// Ledger holds the merged snapshot of the three reservation collections.
// Refresh rebuilds it; mutations write through the API and patch the snapshot
// in place so the view stays current without a full reload.
type Ledger struct {
	api API

	mu      sync.Mutex
	entries []Entry
}

func New(api API) *Ledger {
	return &Ledger{api: api}
}

// Refresh loads the three collections concurrently and rebuilds the merged
// snapshot, newest first. A failing collection contributes zero rows but does
// not block the others; its error is joined into the return value so the
// caller can surface a partial-load warning while still rendering what
// arrived.
func (l *Ledger) Refresh(ctx context.Context) error {
	var (
		wg     sync.WaitGroup
		rooms  []RoomRecord
		tables []TableRecord
		salons []SalonRecord
		errs   [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		rooms, errs[0] = l.api.RoomReservations(ctx)
	}()
	go func() {
		defer wg.Done()
		tables, errs[1] = l.api.TableReservations(ctx)
	}()
	go func() {
		defer wg.Done()
		salons, errs[2] = l.api.SalonReservations(ctx)
	}()
	wg.Wait()

	merged := make([]Entry, 0, len(rooms)+len(tables)+len(salons))
	for _, r := range rooms {
		merged = append(merged, r.Entry())
	}
	for _, r := range tables {
		merged = append(merged, r.Entry())
	}
	for _, r := range salons {
		merged = append(merged, r.Entry())
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	l.mu.Lock()
	l.entries = merged
	l.mu.Unlock()

	return errors.Join(errs[0], errs[1], errs[2])
}

// Entries returns the rows matching the filter, preserving the newest-first
// order of the snapshot. The result is a copy; callers may not mutate the
// ledger through it.
func (l *Ledger) Entries(f Filter) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the total row count of the unfiltered snapshot.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Lookup finds a row by its composite id.
func (l *Ledger) Lookup(entryID string) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(entryID)
	if i < 0 {
		return Entry{}, false
	}
	return l.entries[i], true
}

// UpdateStatus writes the new status through to the owning collection and
// patches the snapshot row on success.
func (l *Ledger) UpdateStatus(ctx context.Context, entryID, status string) error {
	l.mu.Lock()
	i := l.indexLocked(entryID)
	if i < 0 {
		l.mu.Unlock()
		return ErrEntryNotFound
	}
	e := l.entries[i]
	l.mu.Unlock()

	if err := l.api.UpdateReservation(ctx, e.Kind, e.SourceID, status, nil); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i = l.indexLocked(entryID); i >= 0 {
		l.entries[i].Status = status
	}
	return nil
}

// UpdatePrice overrides the total of a salon reservation. Any other kind is
// rejected locally without a server round trip.
func (l *Ledger) UpdatePrice(ctx context.Context, entryID string, total float64) error {
	l.mu.Lock()
	i := l.indexLocked(entryID)
	if i < 0 {
		l.mu.Unlock()
		return ErrEntryNotFound
	}
	e := l.entries[i]
	l.mu.Unlock()

	if !e.PriceEditable {
		return ErrPriceNotEditable
	}

	if err := l.api.UpdateReservation(ctx, e.Kind, e.SourceID, e.Status, &total); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i = l.indexLocked(entryID); i >= 0 {
		l.entries[i].Total = total
	}
	return nil
}

// Remove deletes a reservation. Active rows (pending or confirmed) are
// refused before any network call; the admin must move them to a terminal
// status first.
func (l *Ledger) Remove(ctx context.Context, entryID string) error {
	l.mu.Lock()
	i := l.indexLocked(entryID)
	if i < 0 {
		l.mu.Unlock()
		return ErrEntryNotFound
	}
	e := l.entries[i]
	l.mu.Unlock()

	if protectedStatuses[e.Status] {
		return &ProtectedStateError{Status: e.Status}
	}

	if err := l.api.DeleteReservation(ctx, e.Kind, e.SourceID); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i = l.indexLocked(entryID); i >= 0 {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
	}
	return nil
}

// indexLocked returns the snapshot index of the composite id, or -1.
// Caller holds l.mu.
func (l *Ledger) indexLocked(entryID string) int {
	for i, e := range l.entries {
		if e.ID == entryID {
			return i
		}
	}
	return -1
}
