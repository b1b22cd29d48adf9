package scheduler

import (
	"errors"
	"fmt"
	"time"
)

// Terminal failures. Individual stores that cannot be placed are reported in
// the result instead of failing the run.
var (
	ErrInvalidRange  = errors.New("campaign end date precedes start date")
	ErrEmptyDatePool = errors.New("no schedulable dates in campaign range")
)

const dateKeyLayout = "2006-01-02"

// Store is the unit being scheduled. SupervisorID groups stores for the
// same-day and adjacent-day exclusion rules; stores without a supervisor
// should share a sentinel id and therefore exclude each other as well.
type Store struct {
	ID           string
	Name         string
	SupervisorID string
}

// Setting restricts the ISO weekdays (1=Monday .. 7=Sunday) a store may be
// scheduled on. A non-empty AllowedDays acts as an allow-list; ForbiddenDays
// always reject.
type Setting struct {
	AllowedDays   []int
	ForbiddenDays []int
}

// Policy fixes the campaign-wide scheduling constants.
type Policy struct {
	// AllowedWeekdays are the ISO weekdays eligible to host any activity.
	AllowedWeekdays []int
	// MaxPerDay caps the number of stores assigned to a single date.
	MaxPerDay int
}

// DefaultPolicy returns the production policy: activities run on Wednesdays,
// Saturdays and Sundays with at most two stores per day.
func DefaultPolicy() Policy {
	return Policy{AllowedWeekdays: []int{3, 6, 7}, MaxPerDay: 2}
}

// Request carries fully materialized scheduling input. Stores are processed
// in slice order: earlier stores get first pick of dates.
type Request struct {
	Start    time.Time
	End      time.Time
	Stores   []Store
	Settings map[string]Setting // keyed by store ID, sparse
	Blocked  map[string]bool    // keyed by "2006-01-02", sparse
	Policy   Policy
}

// Assignment pairs a store with its activity date.
type Assignment struct {
	StoreID   string    `json:"store_id"`
	StoreName string    `json:"store_name"`
	Date      time.Time `json:"date"`
}

// Unplaced reports a store that could not be scheduled and why.
type Unplaced struct {
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
	Reason    string `json:"reason"`
}

// Result is the structured outcome of a scheduling run. Partial success is
// the expected common case.
type Result struct {
	Placed   []Assignment `json:"placed"`
	Unplaced []Unplaced   `json:"unplaced"`
}

// Rejection reasons ordered by specificity: when a store fails both passes
// the most specific reason observed wins.
type rejectKind int

const (
	rejectNone rejectKind = iota
	rejectSupervisor
	rejectCapacity
	rejectWeekday
)

// Schedule assigns each store to an activity date within [Start, End].
//
// The run is greedy and non-backtracking: a strict pass enforces weekday
// rules, per-day capacity, same-supervisor-same-day exclusion and
// supervisor adjacency; a relaxed pass retries leftover stores with only the
// weekday and capacity checks. Identical input always yields an identical
// result.
func Schedule(req Request) (*Result, error) {
	policy := req.Policy
	if len(policy.AllowedWeekdays) == 0 {
		policy.AllowedWeekdays = DefaultPolicy().AllowedWeekdays
	}
	if policy.MaxPerDay <= 0 {
		policy.MaxPerDay = DefaultPolicy().MaxPerDay
	}

	start := truncateDay(req.Start)
	end := truncateDay(req.End)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	eligible := make(map[int]bool, len(policy.AllowedWeekdays))
	for _, d := range policy.AllowedWeekdays {
		eligible[d] = true
	}

	var pool []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !eligible[isoWeekday(d)] {
			continue
		}
		if req.Blocked[d.Format(dateKeyLayout)] {
			continue
		}
		pool = append(pool, d)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyDatePool
	}

	counts := make(map[string]int, len(pool))
	supervisors := make(map[string]map[string]struct{}, len(pool))

	placed := make(map[string]bool, len(req.Stores))
	rejections := make(map[string]rejectKind, len(req.Stores))
	result := &Result{Placed: make([]Assignment, 0, len(req.Stores))}

	assign := func(st Store, date time.Time) {
		key := date.Format(dateKeyLayout)
		counts[key]++
		set := supervisors[key]
		if set == nil {
			set = make(map[string]struct{})
			supervisors[key] = set
		}
		set[st.SupervisorID] = struct{}{}
		placed[st.ID] = true
		result.Placed = append(result.Placed, Assignment{StoreID: st.ID, StoreName: st.Name, Date: date})
	}

	check := func(st Store, date time.Time, strict bool) rejectKind {
		key := date.Format(dateKeyLayout)
		setting, hasSetting := req.Settings[st.ID]
		if hasSetting {
			weekday := isoWeekday(date)
			if containsDay(setting.ForbiddenDays, weekday) {
				return rejectWeekday
			}
			if len(setting.AllowedDays) > 0 && !containsDay(setting.AllowedDays, weekday) {
				return rejectWeekday
			}
		}
		if counts[key] >= policy.MaxPerDay {
			return rejectCapacity
		}
		if !strict {
			return rejectNone
		}
		if _, ok := supervisors[key][st.SupervisorID]; ok {
			return rejectSupervisor
		}
		// Neighbouring dates are looked up directly in the bookkeeping map:
		// a neighbour outside the candidate pool has no entry and never
		// conflicts.
		prev := date.AddDate(0, 0, -1).Format(dateKeyLayout)
		next := date.AddDate(0, 0, 1).Format(dateKeyLayout)
		if _, ok := supervisors[prev][st.SupervisorID]; ok {
			return rejectSupervisor
		}
		if _, ok := supervisors[next][st.SupervisorID]; ok {
			return rejectSupervisor
		}
		return rejectNone
	}

	runPass := func(strict bool) {
		for _, st := range req.Stores {
			if placed[st.ID] {
				continue
			}
			for _, date := range pool {
				kind := check(st, date, strict)
				if kind == rejectNone {
					assign(st, date)
					break
				}
				if kind > rejections[st.ID] {
					rejections[st.ID] = kind
				}
			}
		}
	}

	runPass(true)
	runPass(false)

	for _, st := range req.Stores {
		if placed[st.ID] {
			continue
		}
		result.Unplaced = append(result.Unplaced, Unplaced{
			StoreID:   st.ID,
			StoreName: st.Name,
			Reason:    reasonFor(rejections[st.ID]),
		})
	}

	return result, nil
}

func reasonFor(kind rejectKind) string {
	switch kind {
	case rejectWeekday:
		return "no candidate date satisfies the store's weekday restrictions"
	case rejectCapacity:
		return "all candidate dates are already at daily capacity"
	case rejectSupervisor:
		return "could not be placed even after relaxing adjacency and same-day supervisor constraints"
	default:
		return "no candidate date available"
	}
}

// isoWeekday maps time.Weekday onto ISO numbering (1=Monday .. 7=Sunday).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// DateKey renders a date the way the scheduler keys its bookkeeping.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// String implements fmt.Stringer for logging.
func (a Assignment) String() string {
	return fmt.Sprintf("%s -> %s", a.StoreID, a.Date.Format(dateKeyLayout))
}
