package schedule

import (
	"sort"
	"time"

	"github.com/medagenda/medagenda/pkg/timeutil"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// ComputeDaySlots derives the bookable slot start times for one
// professional on one local calendar date. It is a pure projection over
// already-fetched data: the professional's weekly rules, the start
// times of the day's non-canceled appointments, and the blocked
// intervals overlapping the date.
//
// For each rule matching the date's day of week, candidate slots of the
// rule's duration are walked from the rule's start to its end. A
// candidate is dropped when:
//
//   - it has already elapsed: slot end at or before now. A slot whose
//     start has passed but whose end has not is still offered; the
//     boundary is pinned by tests.
//   - it overlaps a booked interval [t, t+duration) for any existing
//     appointment start t, using the rule's own duration;
//   - it overlaps any blocked interval.
//
// The result is the sorted list of surviving starts as "HH:MM" strings.
// A date with no matching rules yields an empty list, never an error.
func ComputeDaySlots(date, now time.Time, rules []*WeeklyRule, booked []time.Time, blocks []Interval) ([]string, error) {
	dayOfWeek := timeutil.Weekday(date)

	var out []string
	for _, rule := range rules {
		if rule.DayOfWeek != dayOfWeek {
			continue
		}

		start, err := timeutil.AtClock(date, rule.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.AtClock(date, rule.EndTime)
		if err != nil {
			return nil, err
		}
		duration := time.Duration(rule.SlotDurationMinutes) * time.Minute
		if duration <= 0 {
			return nil, ErrInvalidRule
		}

		for cur := start; cur.Before(end); cur = cur.Add(duration) {
			slot := Interval{Start: cur, End: cur.Add(duration)}

			if !slot.End.After(now) {
				continue
			}
			if overlapsBooked(slot, booked, duration) {
				continue
			}
			if overlapsAny(slot, blocks) {
				continue
			}

			out = append(out, timeutil.FormatClock(slot.Start))
		}
	}

	// Rules are walked in storage order; sort the merged output so
	// callers always see ascending times.
	sort.Strings(out)
	return out, nil
}

func overlapsBooked(slot Interval, booked []time.Time, duration time.Duration) bool {
	for _, t := range booked {
		if slot.Overlaps(Interval{Start: t, End: t.Add(duration)}) {
			return true
		}
	}
	return false
}

func overlapsAny(slot Interval, blocks []Interval) bool {
	for _, b := range blocks {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
