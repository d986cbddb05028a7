package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterNow() time.Time {
	return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
}

func sampleEntries() []Entry {
	return []Entry{
		{
			// Checks in 3 days from now, but was booked 10 days ago.
			ID: "room_1", Kind: KindRoom, Code: "3F2A9B1C", Client: "Maria",
			Description: "Room 101, 2024-06-13 to 2024-06-15, 2 guests",
			Status:      "pending",
			When:        time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
			CreatedAt:   filterNow().AddDate(0, 0, -10),
		},
		{
			// Dinner reservation for tonight.
			ID: "table_2", Kind: KindTable, Code: "TBL-9K2QX1", Client: "jorge88",
			Description: "Table M1, 2024-06-10 20:00, party of 4",
			Status:      "confirmed",
			When:        time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC),
			CreatedAt:   filterNow().AddDate(0, 0, -3),
		},
		{
			// Event 10 days out, booked two hours ago.
			ID: "salon_3", Kind: KindSalon, Code: "EVT-7PL2MQ", Client: "Lucia",
			Description: "Salon Imperial, 2024-06-20, 120 guests",
			Status:      "cancelled",
			When:        time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC),
			CreatedAt:   filterNow().Add(-2 * time.Hour),
		},
	}
}

func matchingIDs(f Filter) []string {
	f.Now = filterNow
	ids := []string{}
	for _, e := range sampleEntries() {
		if f.Matches(e) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func TestFilterZeroValueMatchesEverything(t *testing.T) {
	assert.Equal(t, []string{"room_1", "table_2", "salon_3"}, matchingIDs(Filter{}))
}

func TestFilterSearchIsCaseInsensitiveSubstring(t *testing.T) {
	// Search covers code, client and description.
	assert.Equal(t, []string{"room_1"}, matchingIDs(Filter{Search: "3f2a"}))
	assert.Equal(t, []string{"salon_3"}, matchingIDs(Filter{Search: "LUCIA"}))
	assert.Equal(t, []string{"salon_3"}, matchingIDs(Filter{Search: "imperial"}))
	assert.Equal(t, []string{"table_2"}, matchingIDs(Filter{Search: "party of 4"}))
	assert.Empty(t, matchingIDs(Filter{Search: "no such thing"}))

	// Surrounding whitespace is ignored.
	assert.Equal(t, []string{"salon_3"}, matchingIDs(Filter{Search: "  lucia  "}))
}

func TestFilterStatusIsExact(t *testing.T) {
	assert.Equal(t, []string{"room_1"}, matchingIDs(Filter{Status: "pending"}))
	assert.Equal(t, []string{"table_2"}, matchingIDs(Filter{Status: "confirmed"}))
	assert.Empty(t, matchingIDs(Filter{Status: "completed"}))
}

func TestFilterKind(t *testing.T) {
	assert.Equal(t, []string{"table_2"}, matchingIDs(Filter{Kind: KindTable}))
}

func TestFilterWindowToday(t *testing.T) {
	// Only the reservation happening today qualifies; booking age is
	// irrelevant.
	assert.Equal(t, []string{"table_2"}, matchingIDs(Filter{Window: WindowToday}))
}

func TestFilterWindowWeekIsUpcoming(t *testing.T) {
	// Week means due within the next seven days. The room checks in 3 days
	// from now despite being booked 10 days ago; the salon event is 10 days
	// out even though it was booked this morning.
	assert.Equal(t, []string{"room_1", "table_2"}, matchingIDs(Filter{Window: WindowWeek}))
}

func TestFilterWindowExcludesPastReservations(t *testing.T) {
	past := Entry{
		ID: "room_9", Kind: KindRoom, Status: "completed",
		When:      time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
		CreatedAt: filterNow().Add(-time.Hour),
	}
	f := Filter{Window: WindowWeek, Now: filterNow}
	assert.False(t, f.Matches(past))

	f.Window = WindowToday
	assert.False(t, f.Matches(past))
}

func TestFilterWindowWeekBoundary(t *testing.T) {
	f := Filter{Window: WindowWeek, Now: filterNow}

	// Exactly seven days out is still in; a day beyond is out.
	in := Entry{When: time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)}
	out := Entry{When: time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)}
	assert.True(t, f.Matches(in))
	assert.False(t, f.Matches(out))
}

func TestFilterCriteriaCombine(t *testing.T) {
	got := matchingIDs(Filter{Search: "table", Status: "confirmed", Window: WindowWeek})
	require.Equal(t, []string{"table_2"}, got)

	// Same search with a non-matching status yields nothing.
	assert.Empty(t, matchingIDs(Filter{Search: "table", Status: "pending"}))
}
