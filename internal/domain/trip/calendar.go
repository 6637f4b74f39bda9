package trip

import (
	"context"
	"sort"
	"unicode/utf8"
)

// GenerateDates persists the effective range onto the trip and inserts the
// missing dates. Existing rows are never removed here.
func (s *Service) GenerateDates(ctx context.Context, userID int64, hash string, input GenerateDatesInput) (int, error) {
	if err := input.AllowedWeekdays.Validate(); err != nil {
		return 0, err
	}

	inserted := 0
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		trip, err := requireMember(ctx, tx, hash, userID)
		if err != nil {
			return err
		}

		start, end := trip.DateStart, trip.DateEnd
		if input.DateStart != nil {
			start = input.DateStart
		}
		if input.DateEnd != nil {
			end = input.DateEnd
		}
		weekdays := trip.AllowedWeekdays
		if len(input.AllowedWeekdays) > 0 {
			weekdays = input.AllowedWeekdays
		}

		if start == nil || end == nil {
			return ErrDateRangeRequired
		}
		start, end = normalizeDay(start), normalizeDay(end)
		if start.After(*end) {
			return ErrInvalidDateRange
		}

		trip.DateStart = start
		trip.DateEnd = end
		trip.AllowedWeekdays = weekdays
		if err := tx.UpdateTrip(ctx, trip); err != nil {
			return err
		}

		existing, err := tx.ListTripDates(ctx, trip.ID)
		if err != nil {
			return err
		}
		_, insert := DiffDates(existing, DesiredDates(start, end, weekdays))
		if len(insert) == 0 {
			return nil
		}
		if err := tx.CreateTripDates(ctx, newTripDates(trip.ID, insert)); err != nil {
			return err
		}
		inserted = len(insert)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.metrics.DatesInserted(inserted)
	return inserted, nil
}

func (s *Service) ListDates(ctx context.Context, userID int64, hash string) ([]TripDate, error) {
	trip, err := s.RequireMember(ctx, hash, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTripDates(ctx, trip.ID)
}

// UpdateAvailability upserts the caller's status for each listed date.
// Dates that are not part of the trip are skipped. The result counts every
// applied update.
func (s *Service) UpdateAvailability(ctx context.Context, userID int64, hash string, updates []AvailabilityUpdate) (int, error) {
	for _, u := range updates {
		if utf8.RuneCountInString(u.Status) > maxStatusLength {
			return 0, ErrInvalidStatus
		}
	}

	applied := 0
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		trip, err := requireMember(ctx, tx, hash, userID)
		if err != nil {
			return err
		}

		dates, err := tx.ListTripDates(ctx, trip.ID)
		if err != nil {
			return err
		}
		dateIDs := make(map[string]int64, len(dates))
		for _, d := range dates {
			dateIDs[DateKey(d.Date)] = d.ID
		}

		// One row per date; the last update for a date wins.
		latest := make(map[int64]string, len(updates))
		var order []int64
		for _, u := range updates {
			id, ok := dateIDs[DateKey(u.Date)]
			if !ok {
				continue
			}
			if _, seen := latest[id]; !seen {
				order = append(order, id)
			}
			latest[id] = u.Status
			applied++
		}
		if len(order) == 0 {
			return nil
		}

		rows := make([]Availability, 0, len(order))
		for _, id := range order {
			rows = append(rows, Availability{TripDateID: id, UserID: userID, Status: latest[id]})
		}
		return tx.UpsertAvailability(ctx, rows)
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// Calendar returns the member × date grid. Pairs without a stored row
// default to StatusUnset.
func (s *Service) Calendar(ctx context.Context, userID int64, hash string) (*Calendar, error) {
	trip, err := s.RequireMember(ctx, hash, userID)
	if err != nil {
		return nil, err
	}

	dates, err := s.repo.ListTripDates(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMemberships(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAvailability(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	publicIDs := make(map[int64]string, len(users))
	for _, u := range users {
		publicIDs[u.ID] = u.PublicID
	}

	dateKeys := make(map[int64]string, len(dates))
	for _, d := range dates {
		dateKeys[d.ID] = DateKey(d.Date)
	}

	cal := &Calendar{
		Dates:        dates,
		Users:        make([]CalendarUser, 0, len(members)),
		Availability: make(map[int64]map[string]string, len(members)),
	}
	for _, m := range members {
		name := m.UserName
		if name == "" {
			name = publicIDs[m.UserID]
		}
		cal.Users = append(cal.Users, CalendarUser{UserID: m.UserID, DisplayName: name})

		grid := make(map[string]string, len(dates))
		for _, d := range dates {
			grid[DateKey(d.Date)] = StatusUnset
		}
		cal.Availability[m.UserID] = grid
	}

	for _, r := range rows {
		grid, ok := cal.Availability[r.UserID]
		if !ok {
			continue
		}
		if key, ok := dateKeys[r.TripDateID]; ok {
			grid[key] = r.Status
		}
	}

	sort.Slice(cal.Dates, func(i, j int) bool { return cal.Dates[i].Date.Before(cal.Dates[j].Date) })
	return cal, nil
}
