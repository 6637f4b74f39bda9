package trip

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"tiptrip-go/internal/domain/user"
)

type fakeTripRepo struct {
	trips        map[int64]*Trip
	members      []Membership
	dates        []TripDate
	availability []Availability
	nextID       int64

	failAvailability error
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[int64]*Trip)}
}

func (r *fakeTripRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *fakeTripRepo) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return fn(r)
}

func (r *fakeTripRepo) CreateTrip(ctx context.Context, trip *Trip) error {
	trip.ID = r.id()
	stored := *trip
	r.trips[trip.ID] = &stored
	return nil
}

func (r *fakeTripRepo) UpdateTrip(ctx context.Context, trip *Trip) error {
	stored := *trip
	r.trips[trip.ID] = &stored
	return nil
}

func (r *fakeTripRepo) GetTripByHash(ctx context.Context, hash string) (*Trip, error) {
	for _, trip := range r.trips {
		if trip.HashID == hash {
			found := *trip
			return &found, nil
		}
	}
	return nil, ErrTripNotFound
}

func (r *fakeTripRepo) IsHashTaken(ctx context.Context, hash string) (bool, error) {
	_, err := r.GetTripByHash(ctx, hash)
	return err == nil, nil
}

func (r *fakeTripRepo) ListTripsByUser(ctx context.Context, userID int64) ([]Trip, error) {
	var result []Trip
	for _, m := range r.members {
		if m.UserID == userID {
			result = append(result, *r.trips[m.TripID])
		}
	}
	return result, nil
}

func (r *fakeTripRepo) CreateMembership(ctx context.Context, membership *Membership) error {
	for _, m := range r.members {
		if m.TripID == membership.TripID && m.UserID == membership.UserID {
			return ErrAlreadyMember
		}
	}
	membership.ID = r.id()
	r.members = append(r.members, *membership)
	return nil
}

func (r *fakeTripRepo) GetMembership(ctx context.Context, tripID, userID int64) (*Membership, error) {
	for _, m := range r.members {
		if m.TripID == tripID && m.UserID == userID {
			found := m
			return &found, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (r *fakeTripRepo) ListMemberships(ctx context.Context, tripID int64) ([]Membership, error) {
	var result []Membership
	for _, m := range r.members {
		if m.TripID == tripID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeTripRepo) UpdateMembershipName(ctx context.Context, tripID, userID int64, name string) error {
	for i := range r.members {
		if r.members[i].TripID == tripID && r.members[i].UserID == userID {
			r.members[i].UserName = name
			return nil
		}
	}
	return ErrMemberNotFound
}

func (r *fakeTripRepo) DeleteMembership(ctx context.Context, tripID, userID int64) error {
	for i, m := range r.members {
		if m.TripID == tripID && m.UserID == userID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return ErrMemberNotFound
}

func (r *fakeTripRepo) ListTripDates(ctx context.Context, tripID int64) ([]TripDate, error) {
	var result []TripDate
	for _, d := range r.dates {
		if d.TripID == tripID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *fakeTripRepo) CreateTripDates(ctx context.Context, dates []TripDate) error {
	for i := range dates {
		for _, d := range r.dates {
			if d.TripID == dates[i].TripID && d.Date.Equal(dates[i].Date) {
				return ErrDuplicateTripDate
			}
		}
		dates[i].ID = r.id()
		r.dates = append(r.dates, dates[i])
	}
	return nil
}

func (r *fakeTripRepo) DeleteTripDates(ctx context.Context, tripID int64, ids []int64) error {
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := r.dates[:0]
	for _, d := range r.dates {
		if !drop[d.ID] {
			kept = append(kept, d)
		}
	}
	r.dates = kept

	keptRows := r.availability[:0]
	for _, a := range r.availability {
		if !drop[a.TripDateID] {
			keptRows = append(keptRows, a)
		}
	}
	r.availability = keptRows
	return nil
}

func (r *fakeTripRepo) tripDateIDs(tripID int64) map[int64]bool {
	ids := make(map[int64]bool)
	for _, d := range r.dates {
		if d.TripID == tripID {
			ids[d.ID] = true
		}
	}
	return ids
}

func (r *fakeTripRepo) ListAvailability(ctx context.Context, tripID int64) ([]Availability, error) {
	ids := r.tripDateIDs(tripID)
	var result []Availability
	for _, a := range r.availability {
		if ids[a.TripDateID] {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeTripRepo) ListUserAvailability(ctx context.Context, tripID, userID int64) ([]Availability, error) {
	rows, _ := r.ListAvailability(ctx, tripID)
	var result []Availability
	for _, a := range rows {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeTripRepo) CreateAvailability(ctx context.Context, rows []Availability) error {
	if r.failAvailability != nil {
		return r.failAvailability
	}
	for _, row := range rows {
		for _, a := range r.availability {
			if a.TripDateID == row.TripDateID && a.UserID == row.UserID {
				return ErrDuplicateAvailability
			}
		}
		row.ID = r.id()
		r.availability = append(r.availability, row)
	}
	return nil
}

func (r *fakeTripRepo) UpsertAvailability(ctx context.Context, rows []Availability) error {
	for _, row := range rows {
		found := false
		for i := range r.availability {
			if r.availability[i].TripDateID == row.TripDateID && r.availability[i].UserID == row.UserID {
				r.availability[i].Status = row.Status
				found = true
			}
		}
		if !found {
			row.ID = r.id()
			r.availability = append(r.availability, row)
		}
	}
	return nil
}

type fakeDirectory struct {
	users []user.User
}

func (d *fakeDirectory) GetUserByToken(ctx context.Context, token string) (*user.User, error) {
	for _, u := range d.users {
		if u.Token == token {
			found := u
			return &found, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (d *fakeDirectory) GetUsersByIDs(ctx context.Context, ids []int64) ([]user.User, error) {
	var result []user.User
	for _, id := range ids {
		for _, u := range d.users {
			if u.ID == id {
				result = append(result, u)
			}
		}
	}
	return result, nil
}

type countingMetrics struct {
	inserted, deleted, backfilled int
}

func (m *countingMetrics) DatesInserted(n int)          { m.inserted += n }
func (m *countingMetrics) DatesDeleted(n int)           { m.deleted += n }
func (m *countingMetrics) AvailabilityBackfilled(n int) { m.backfilled += n }

var (
	alice = user.User{ID: 100, PublicID: "alice001", Token: "token-alice"}
	bob   = user.User{ID: 200, PublicID: "bob00002", Token: "token-bob"}
	carol = user.User{ID: 300, PublicID: "carol003", Token: "token-carol"}
)

func day(value string) time.Time {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(value string) *time.Time {
	d := day(value)
	return &d
}

func newTestService(t *testing.T) (*Service, *fakeTripRepo, *countingMetrics, *Trip) {
	t.Helper()
	repo := newFakeTripRepo()
	metrics := &countingMetrics{}
	svc := NewService(repo, &fakeDirectory{users: []user.User{alice, bob, carol}}, metrics)

	trip, err := svc.CreateTrip(context.Background(), alice.ID, CreateTripInput{Title: "Lisbon", UserName: "Alice"})
	if err != nil {
		t.Fatalf("expected trip to be created, got %v", err)
	}
	return svc, repo, metrics, trip
}

func dateKeys(dates []TripDate) []string {
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, DateKey(d.Date))
	}
	return keys
}

func TestCreateTripAddsCreatorAsMember(t *testing.T) {
	svc, repo, _, trip := newTestService(t)

	if len(trip.HashID) != hashLength {
		t.Fatalf("expected %d char hash, got %q", hashLength, trip.HashID)
	}
	if _, err := repo.GetMembership(context.Background(), trip.ID, alice.ID); err != nil {
		t.Fatalf("expected creator membership, got %v", err)
	}
	if _, err := svc.CreateTrip(context.Background(), alice.ID, CreateTripInput{Title: "x", UserName: "  "}); !errors.Is(err, ErrInvalidUserName) {
		t.Fatalf("expected ErrInvalidUserName, got %v", err)
	}
}

func TestGenerateDatesInsertsInclusiveRange(t *testing.T) {
	svc, _, metrics, trip := newTestService(t)
	ctx := context.Background()

	generated, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart: dayPtr("2025-07-01"),
		DateEnd:   dayPtr("2025-07-03"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if generated != 3 {
		t.Fatalf("expected 3 generated dates, got %d", generated)
	}

	dates, err := svc.ListDates(ctx, alice.ID, trip.HashID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := dateKeys(dates)
	want := []string{"2025-07-01", "2025-07-02", "2025-07-03"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	again, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{})
	if err != nil {
		t.Fatalf("expected regeneration from stored range, got %v", err)
	}
	if again != 0 {
		t.Fatalf("expected idempotent generation, got %d new rows", again)
	}
	if metrics.inserted != 3 {
		t.Fatalf("expected metrics to count 3 inserts, got %d", metrics.inserted)
	}
}

func TestGenerateDatesWeekdayFilter(t *testing.T) {
	svc, _, _, trip := newTestService(t)

	// 2025-07-05 is a Saturday and 2025-07-06 a Sunday.
	generated, err := svc.GenerateDates(context.Background(), alice.ID, trip.HashID, GenerateDatesInput{
		DateStart:       dayPtr("2025-07-01"),
		DateEnd:         dayPtr("2025-07-14"),
		AllowedWeekdays: Weekdays{0, 6},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if generated != 4 {
		t.Fatalf("expected 4 weekend days, got %d", generated)
	}
}

func TestGenerateDatesValidation(t *testing.T) {
	svc, _, _, trip := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{}); !errors.Is(err, ErrDateRangeRequired) {
		t.Fatalf("expected ErrDateRangeRequired, got %v", err)
	}
	_, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart: dayPtr("2025-07-05"),
		DateEnd:   dayPtr("2025-07-01"),
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	_, err = svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart:       dayPtr("2025-07-01"),
		DateEnd:         dayPtr("2025-07-02"),
		AllowedWeekdays: Weekdays{7},
	})
	if !errors.Is(err, ErrInvalidWeekday) {
		t.Fatalf("expected ErrInvalidWeekday, got %v", err)
	}
	if _, err := svc.GenerateDates(ctx, bob.ID, trip.HashID, GenerateDatesInput{}); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
	if _, err := svc.GenerateDates(ctx, alice.ID, "missing", GenerateDatesInput{}); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestUpdateTripReconcilesKeepingSurvivingRows(t *testing.T) {
	svc, repo, _, trip := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart: dayPtr("2025-07-01"),
		DateEnd:   dayPtr("2025-07-03"),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	before, _ := svc.ListDates(ctx, alice.ID, trip.HashID)
	survivorID := before[1].ID

	if _, err := svc.UpdateAvailability(ctx, alice.ID, trip.HashID, []AvailabilityUpdate{
		{Date: day("2025-07-01"), Status: "available"},
		{Date: day("2025-07-02"), Status: "maybe"},
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	result, err := svc.UpdateTrip(ctx, alice.ID, trip.HashID, UpdateTripInput{
		DateStart: OptionalDate{Set: true, Value: dayPtr("2025-07-02")},
		DateEnd:   OptionalDate{Set: true, Value: dayPtr("2025-07-04")},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.DatesInserted != 1 || result.DatesDeleted != 1 {
		t.Fatalf("expected 1 insert and 1 delete, got %+v", result)
	}

	after, _ := svc.ListDates(ctx, alice.ID, trip.HashID)
	got := dateKeys(after)
	if len(got) != 3 || got[0] != "2025-07-02" || got[2] != "2025-07-04" {
		t.Fatalf("expected 07-02..07-04, got %v", got)
	}
	if after[0].ID != survivorID {
		t.Fatalf("expected surviving row id %d, got %d", survivorID, after[0].ID)
	}

	rows, _ := repo.ListAvailability(ctx, trip.ID)
	if len(rows) != 1 || rows[0].TripDateID != survivorID || rows[0].Status != "maybe" {
		t.Fatalf("expected only the surviving availability row, got %+v", rows)
	}
}

func TestUpdateTripIsIdempotent(t *testing.T) {
	svc, _, _, trip := newTestService(t)
	ctx := context.Background()
	input := UpdateTripInput{
		DateStart:       OptionalDate{Set: true, Value: dayPtr("2025-07-01")},
		DateEnd:         OptionalDate{Set: true, Value: dayPtr("2025-07-10")},
		AllowedWeekdays: OptionalWeekdays{Set: true, Value: Weekdays{1, 3}},
	}

	first, err := svc.UpdateTrip(ctx, alice.ID, trip.HashID, input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.DatesInserted == 0 {
		t.Fatalf("expected dates to be inserted")
	}
	second, err := svc.UpdateTrip(ctx, alice.ID, trip.HashID, input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.DatesInserted != 0 || second.DatesDeleted != 0 {
		t.Fatalf("expected no changes on repeat, got %+v", second)
	}
}

func TestUpdateTripInvertedRangeClearsDates(t *testing.T) {
	svc, _, _, trip := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart: dayPtr("2025-07-01"),
		DateEnd:   dayPtr("2025-07-03"),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	result, err := svc.UpdateTrip(ctx, alice.ID, trip.HashID, UpdateTripInput{
		DateStart: OptionalDate{Set: true, Value: dayPtr("2025-08-01")},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.DatesDeleted != 3 {
		t.Fatalf("expected all 3 dates deleted, got %+v", result)
	}
}

func TestUpdateTripWithoutDateFieldsLeavesDates(t *testing.T) {
	svc, _, _, trip := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart: dayPtr("2025-07-01"),
		DateEnd:   dayPtr("2025-07-03"),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	title := "Porto"
	result, err := svc.UpdateTrip(ctx, alice.ID, trip.HashID, UpdateTripInput{Title: &title})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Trip.Title != "Porto" || result.DatesDeleted != 0 {
		t.Fatalf("expected title update only, got %+v", result)
	}
	if _, err := svc.UpdateTrip(ctx, bob.ID, trip.HashID, UpdateTripInput{Title: &title}); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestAddMemberBackfillsAvailability(t *testing.T) {
	svc, repo, metrics, trip := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart: dayPtr("2025-07-01"),
		DateEnd:   dayPtr("2025-07-05"),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	member, backfill, err := svc.AddMember(ctx, bob.ID, trip.HashID, AddMemberInput{UserHash: bob.Token, UserName: "Bob"})
	if err != nil {
		t.Fatalf("expected self join, got %v", err)
	}
	if member.UserName != "Bob" {
		t.Fatalf("expected user name Bob, got %q", member.UserName)
	}
	if backfill.Err != nil || backfill.Created != 5 {
		t.Fatalf("expected 5 backfilled rows, got %+v", backfill)
	}

	again := svc.Backfill(ctx, trip.ID, bob.ID)
	if again.Err != nil || again.Created != 0 {
		t.Fatalf("expected idempotent backfill, got %+v", again)
	}
	rows, _ := repo.ListUserAvailability(ctx, trip.ID, bob.ID)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows for bob, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Status != StatusUnset {
			t.Fatalf("expected unset status, got %q", row.Status)
		}
	}
	if metrics.backfilled != 5 {
		t.Fatalf("expected metrics to count 5 backfilled rows, got %d", metrics.backfilled)
	}
}

func TestAddMemberBackfillFailureKeepsMembership(t *testing.T) {
	svc, repo, _, trip := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart: dayPtr("2025-07-01"),
		DateEnd:   dayPtr("2025-07-02"),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	repo.failAvailability = errors.New("disk full")

	member, backfill, err := svc.AddMember(ctx, alice.ID, trip.HashID, AddMemberInput{UserHash: bob.Token})
	if err != nil {
		t.Fatalf("expected membership despite backfill failure, got %v", err)
	}
	if backfill.Err == nil || backfill.Created != 0 {
		t.Fatalf("expected reported backfill error, got %+v", backfill)
	}
	if member.UserName != bob.PublicID {
		t.Fatalf("expected name fallback to public id, got %q", member.UserName)
	}
	if _, err := repo.GetMembership(ctx, trip.ID, bob.ID); err != nil {
		t.Fatalf("expected stored membership, got %v", err)
	}
}

func TestAddMemberPermissions(t *testing.T) {
	svc, _, _, trip := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.AddMember(ctx, bob.ID, trip.HashID, AddMemberInput{UserHash: carol.Token, UserName: "Carol"}); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember when a stranger adds someone, got %v", err)
	}
	if _, _, err := svc.AddMember(ctx, alice.ID, trip.HashID, AddMemberInput{UserHash: "unknown", UserName: "X"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, _, err := svc.AddMember(ctx, alice.ID, trip.HashID, AddMemberInput{UserHash: alice.Token, UserName: "Alice"}); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestUpdateAndRemoveMemberSelfOnly(t *testing.T) {
	svc, _, _, trip := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.AddMember(ctx, bob.ID, trip.HashID, AddMemberInput{UserHash: bob.Token, UserName: "Bob"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.UpdateMember(ctx, alice.ID, trip.HashID, bob.ID, "Robert"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	updated, err := svc.UpdateMember(ctx, bob.ID, trip.HashID, bob.ID, "Robert")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.UserName != "Robert" {
		t.Fatalf("expected renamed member, got %q", updated.UserName)
	}

	if err := svc.RemoveMember(ctx, bob.ID, trip.HashID, carol.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
	if err := svc.RemoveMember(ctx, alice.ID, trip.HashID, bob.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.RemoveMember(ctx, bob.ID, trip.HashID, bob.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	members, _ := svc.ListMembers(ctx, trip.HashID)
	if len(members) != 1 {
		t.Fatalf("expected 1 remaining member, got %d", len(members))
	}
}

func TestUpdateAvailabilitySkipsUnknownDates(t *testing.T) {
	svc, repo, _, trip := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart: dayPtr("2025-07-01"),
		DateEnd:   dayPtr("2025-07-02"),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated, err := svc.UpdateAvailability(ctx, alice.ID, trip.HashID, []AvailabilityUpdate{
		{Date: day("2025-07-01"), Status: "available"},
		{Date: day("2025-09-09"), Status: "available"},
		{Date: day("2025-07-01"), Status: "unavailable"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 applied updates, got %d", updated)
	}

	rows, _ := repo.ListUserAvailability(ctx, trip.ID, alice.ID)
	if len(rows) != 1 || rows[0].Status != "unavailable" {
		t.Fatalf("expected single row with last status, got %+v", rows)
	}
	if _, err := svc.UpdateAvailability(ctx, bob.ID, trip.HashID, nil); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestCalendarDefaultsToUnset(t *testing.T) {
	svc, _, _, trip := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GenerateDates(ctx, alice.ID, trip.HashID, GenerateDatesInput{
		DateStart: dayPtr("2025-07-01"),
		DateEnd:   dayPtr("2025-07-02"),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.UpdateAvailability(ctx, alice.ID, trip.HashID, []AvailabilityUpdate{
		{Date: day("2025-07-02"), Status: "maybe"},
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, _, err := svc.AddMember(ctx, alice.ID, trip.HashID, AddMemberInput{UserHash: carol.Token, UserName: "Carol"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cal, err := svc.Calendar(ctx, alice.ID, trip.HashID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cal.Dates) != 2 || len(cal.Users) != 2 {
		t.Fatalf("expected 2 dates and 2 users, got %+v", cal)
	}
	if got := cal.Availability[alice.ID]["2025-07-01"]; got != StatusUnset {
		t.Fatalf("expected unset default, got %q", got)
	}
	if got := cal.Availability[alice.ID]["2025-07-02"]; got != "maybe" {
		t.Fatalf("expected stored status, got %q", got)
	}
	if got := cal.Availability[carol.ID]["2025-07-02"]; got != StatusUnset {
		t.Fatalf("expected unset for new member, got %q", got)
	}
}
