package trip

import (
	"testing"
	"time"
)

func TestDesiredDates(t *testing.T) {
	cases := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		weekdays Weekdays
		want     int
	}{
		{"inclusive range", dayPtr("2025-07-01"), dayPtr("2025-07-03"), nil, 3},
		{"single day", dayPtr("2025-07-01"), dayPtr("2025-07-01"), nil, 1},
		{"inverted", dayPtr("2025-07-03"), dayPtr("2025-07-01"), nil, 0},
		{"missing start", nil, dayPtr("2025-07-01"), nil, 0},
		{"empty filter allows all", dayPtr("2025-07-01"), dayPtr("2025-07-07"), Weekdays{}, 7},
		// 2025-07-01 is a Tuesday.
		{"tuesdays only", dayPtr("2025-07-01"), dayPtr("2025-07-31"), Weekdays{2}, 5},
		{"across month", dayPtr("2025-01-30"), dayPtr("2025-02-02"), nil, 4},
	}
	for _, tc := range cases {
		got := DesiredDates(tc.start, tc.end, tc.weekdays)
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d dates, got %d", tc.name, tc.want, len(got))
		}
		for i := 1; i < len(got); i++ {
			if !got[i-1].Before(got[i]) {
				t.Fatalf("%s: expected ascending dates, got %v", tc.name, got)
			}
		}
	}
}

func TestDesiredDatesIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 7, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, 7, 2, 0, 15, 0, 0, time.UTC)

	got := DesiredDates(&start, &end, nil)
	if len(got) != 2 || DateKey(got[0]) != "2025-07-01" {
		t.Fatalf("expected two whole days, got %v", got)
	}
}

func TestDiffDates(t *testing.T) {
	existing := []TripDate{
		{ID: 3, Date: day("2025-07-03")},
		{ID: 1, Date: day("2025-07-01")},
		{ID: 2, Date: day("2025-07-02")},
	}
	desired := DesiredDates(dayPtr("2025-07-02"), dayPtr("2025-07-04"), nil)

	deleteIDs, insert := DiffDates(existing, desired)
	if len(deleteIDs) != 1 || deleteIDs[0] != 1 {
		t.Fatalf("expected to delete row 1, got %v", deleteIDs)
	}
	if len(insert) != 1 || DateKey(insert[0]) != "2025-07-04" {
		t.Fatalf("expected to insert 07-04, got %v", insert)
	}

	deleteIDs, insert = DiffDates(existing, nil)
	if len(deleteIDs) != 3 || len(insert) != 0 {
		t.Fatalf("expected everything deleted, got %v / %v", deleteIDs, insert)
	}
}

func TestWeekdaysValidate(t *testing.T) {
	if err := (Weekdays{0, 3, 6}).Validate(); err != nil {
		t.Fatalf("expected valid weekdays, got %v", err)
	}
	if err := (Weekdays{-1}).Validate(); err == nil {
		t.Fatalf("expected error for negative weekday")
	}
	if !(Weekdays(nil)).Allows(time.Wednesday) {
		t.Fatalf("expected nil set to allow every day")
	}
	if (Weekdays{0}).Allows(time.Monday) {
		t.Fatalf("expected sunday-only set to reject monday")
	}
}

func TestWeekdaysScanValue(t *testing.T) {
	value, err := Weekdays{1, 5}.Value()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if value != "{1,5}" {
		t.Fatalf("expected array literal, got %v", value)
	}

	var w Weekdays
	if err := w.Scan([]byte("{0,6}")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(w) != 2 || w[0] != 0 || w[1] != 6 {
		t.Fatalf("expected [0 6], got %v", w)
	}
	if err := w.Scan(nil); err != nil || w != nil {
		t.Fatalf("expected nil weekdays, got %v (%v)", w, err)
	}
}
