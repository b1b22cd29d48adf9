package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func marchRequest(stores []Store) Request {
	return Request{
		Start:  day(2024, time.March, 1),
		End:    day(2024, time.March, 31),
		Stores: stores,
		Policy: DefaultPolicy(),
	}
}

func placedDates(t *testing.T, result *Result) map[string]time.Time {
	t.Helper()
	dates := make(map[string]time.Time, len(result.Placed))
	for _, a := range result.Placed {
		_, dup := dates[a.StoreID]
		require.False(t, dup, "store %s placed twice", a.StoreID)
		dates[a.StoreID] = a.Date
	}
	return dates
}

func TestScheduleSameSupervisorNeverAdjacent(t *testing.T) {
	result, err := Schedule(marchRequest([]Store{
		{ID: "st-1", Name: "Central", SupervisorID: "sup-1"},
		{ID: "st-2", Name: "Harbour", SupervisorID: "sup-1"},
	}))
	require.NoError(t, err)
	require.Empty(t, result.Unplaced)

	dates := placedDates(t, result)
	assert.Equal(t, day(2024, time.March, 2), dates["st-1"], "first store takes the first Saturday")

	gap := dates["st-2"].Sub(dates["st-1"]).Hours() / 24
	if gap < 0 {
		gap = -gap
	}
	assert.NotEqual(t, 0.0, gap)
	assert.Greater(t, gap, 1.0, "same-supervisor stores must not land on adjacent days")
}

func TestScheduleHonoursForbiddenWeekdays(t *testing.T) {
	req := marchRequest([]Store{{ID: "st-1", Name: "Central", SupervisorID: "sup-1"}})
	req.Settings = map[string]Setting{
		"st-1": {ForbiddenDays: []int{6, 7}},
	}

	result, err := Schedule(req)
	require.NoError(t, err)
	require.Empty(t, result.Unplaced)
	assert.Equal(t, day(2024, time.March, 6), result.Placed[0].Date, "first Wednesday is the earliest non-weekend candidate")
}

func TestScheduleHonoursAllowedWeekdays(t *testing.T) {
	req := marchRequest([]Store{{ID: "st-1", Name: "Central", SupervisorID: "sup-1"}})
	req.Settings = map[string]Setting{
		"st-1": {AllowedDays: []int{7}},
	}

	result, err := Schedule(req)
	require.NoError(t, err)
	require.Empty(t, result.Unplaced)
	assert.Equal(t, time.Sunday, result.Placed[0].Date.Weekday())
}

func TestScheduleWeekdayRestrictionUnsatisfiable(t *testing.T) {
	req := marchRequest([]Store{{ID: "st-1", Name: "Central", SupervisorID: "sup-1"}})
	req.Settings = map[string]Setting{
		"st-1": {AllowedDays: []int{1}}, // Mondays never enter the pool
	}

	result, err := Schedule(req)
	require.NoError(t, err)
	assert.Empty(t, result.Placed)
	require.Len(t, result.Unplaced, 1)
	assert.Contains(t, result.Unplaced[0].Reason, "weekday")
}

func TestScheduleCapacityExhausted(t *testing.T) {
	// Pool is exactly 2024-03-02 (Sat) and 2024-03-03 (Sun): four slots.
	stores := []Store{
		{ID: "st-1", SupervisorID: "a"},
		{ID: "st-2", SupervisorID: "b"},
		{ID: "st-3", SupervisorID: "c"},
		{ID: "st-4", SupervisorID: "d"},
		{ID: "st-5", SupervisorID: "e"},
	}
	result, err := Schedule(Request{
		Start:  day(2024, time.March, 2),
		End:    day(2024, time.March, 3),
		Stores: stores,
		Policy: DefaultPolicy(),
	})
	require.NoError(t, err)
	assert.Len(t, result.Placed, 4)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, "st-5", result.Unplaced[0].StoreID)
	assert.Contains(t, result.Unplaced[0].Reason, "capacity")

	perDay := make(map[string]int)
	for _, a := range result.Placed {
		perDay[DateKey(a.Date)]++
	}
	for key, n := range perDay {
		assert.LessOrEqual(t, n, 2, "capacity exceeded on %s", key)
	}
}

func TestScheduleRelaxedPassReclaimsSupervisorConflicts(t *testing.T) {
	// Three same-supervisor stores in a two-date pool: the strict pass can
	// only place the first, the relaxed pass fills the remaining slots.
	stores := []Store{
		{ID: "st-1", SupervisorID: "sup-1"},
		{ID: "st-2", SupervisorID: "sup-1"},
		{ID: "st-3", SupervisorID: "sup-1"},
	}
	result, err := Schedule(Request{
		Start:  day(2024, time.March, 2),
		End:    day(2024, time.March, 3),
		Stores: stores,
		Policy: DefaultPolicy(),
	})
	require.NoError(t, err)
	assert.Len(t, result.Placed, 3)
	assert.Empty(t, result.Unplaced)

	perDay := make(map[string]int)
	for _, a := range result.Placed {
		perDay[DateKey(a.Date)]++
	}
	for key, n := range perDay {
		assert.LessOrEqual(t, n, 2, "capacity must hold even in the relaxed pass (%s)", key)
	}
}

func TestScheduleAdjacencyAcrossPoolBoundary(t *testing.T) {
	// sup-1 lands on Saturday 03-02; a Sunday-only sibling must skip the
	// adjacent 03-03 and wait for the following Sunday.
	req := marchRequest([]Store{
		{ID: "st-1", SupervisorID: "sup-1"},
		{ID: "st-2", SupervisorID: "sup-1"},
	})
	req.Settings = map[string]Setting{
		"st-2": {AllowedDays: []int{7}},
	}

	result, err := Schedule(req)
	require.NoError(t, err)
	require.Empty(t, result.Unplaced)

	dates := placedDates(t, result)
	assert.Equal(t, day(2024, time.March, 2), dates["st-1"])
	assert.Equal(t, day(2024, time.March, 10), dates["st-2"])
}

func TestScheduleBlockedDatesExcluded(t *testing.T) {
	req := marchRequest([]Store{
		{ID: "st-1", SupervisorID: "a"},
		{ID: "st-2", SupervisorID: "b"},
		{ID: "st-3", SupervisorID: "c"},
	})
	req.Blocked = map[string]bool{"2024-03-02": true}

	result, err := Schedule(req)
	require.NoError(t, err)
	for _, a := range result.Placed {
		assert.NotEqual(t, "2024-03-02", DateKey(a.Date), "blocked date must never be assigned")
	}
}

func TestScheduleEmptyPoolIsTerminal(t *testing.T) {
	// 2024-03-04 is a Monday; single-day campaign with no eligible weekday.
	_, err := Schedule(Request{
		Start:  day(2024, time.March, 4),
		End:    day(2024, time.March, 4),
		Stores: []Store{{ID: "st-1", SupervisorID: "a"}},
		Policy: DefaultPolicy(),
	})
	require.ErrorIs(t, err, ErrEmptyDatePool)
}

func TestScheduleInvalidRange(t *testing.T) {
	_, err := Schedule(Request{
		Start:  day(2024, time.March, 10),
		End:    day(2024, time.March, 1),
		Stores: []Store{{ID: "st-1", SupervisorID: "a"}},
	})
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestScheduleAccountsForEveryStore(t *testing.T) {
	stores := []Store{
		{ID: "st-1", SupervisorID: "sup-1"},
		{ID: "st-2", SupervisorID: "sup-1"},
		{ID: "st-3", SupervisorID: "sup-2"},
		{ID: "st-4", SupervisorID: ""},
		{ID: "st-5", SupervisorID: "sup-2"},
		{ID: "st-6", SupervisorID: "sup-3"},
	}
	req := marchRequest(stores)
	req.Settings = map[string]Setting{
		"st-3": {ForbiddenDays: []int{3}},
		"st-6": {AllowedDays: []int{1}},
	}
	req.Blocked = map[string]bool{"2024-03-09": true}

	result, err := Schedule(req)
	require.NoError(t, err)
	assert.Equal(t, len(stores), len(result.Placed)+len(result.Unplaced))

	seen := make(map[string]bool)
	for _, a := range result.Placed {
		assert.False(t, seen[a.StoreID])
		seen[a.StoreID] = true
		assert.False(t, a.Date.Before(req.Start))
		assert.False(t, a.Date.After(req.End))
	}
	for _, u := range result.Unplaced {
		assert.False(t, seen[u.StoreID])
		seen[u.StoreID] = true
	}
}

func TestScheduleDeterministic(t *testing.T) {
	req := marchRequest([]Store{
		{ID: "st-1", SupervisorID: "sup-1"},
		{ID: "st-2", SupervisorID: "sup-2"},
		{ID: "st-3", SupervisorID: "sup-1"},
	})
	req.Settings = map[string]Setting{"st-2": {ForbiddenDays: []int{6}}}

	first, err := Schedule(req)
	require.NoError(t, err)
	second, err := Schedule(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
