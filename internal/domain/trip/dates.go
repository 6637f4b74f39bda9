package trip

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DesiredDates expands [start, end] into the ascending list of days whose
// weekday is allowed. A missing bound or an inverted range yields nothing.
func DesiredDates(start, end *time.Time, weekdays Weekdays) []time.Time {
	if start == nil || end == nil {
		return nil
	}
	from, to := truncateDay(*start), truncateDay(*end)
	if from.After(to) {
		return nil
	}

	var dates []time.Time
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if weekdays.Allows(day.Weekday()) {
			dates = append(dates, day)
		}
	}
	return dates
}

// DiffDates compares stored rows against the desired days. Rows whose day is
// still desired are kept untouched so availability attached to them survives.
func DiffDates(existing []TripDate, desired []time.Time) (deleteIDs []int64, insert []time.Time) {
	want := make(map[string]struct{}, len(desired))
	for _, day := range desired {
		want[DateKey(day)] = struct{}{}
	}

	have := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		key := DateKey(row.Date)
		have[key] = struct{}{}
		if _, ok := want[key]; !ok {
			deleteIDs = append(deleteIDs, row.ID)
		}
	}

	for _, day := range desired {
		key := DateKey(day)
		if _, ok := have[key]; ok {
			continue
		}
		have[key] = struct{}{}
		insert = append(insert, day)
	}

	sort.Slice(deleteIDs, func(i, j int) bool { return deleteIDs[i] < deleteIDs[j] })
	return deleteIDs, insert
}
