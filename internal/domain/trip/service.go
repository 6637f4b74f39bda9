package trip

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"tiptrip-go/internal/domain/user"
	"github.com/google/uuid"
)

const (
	hashLength   = 12
	hashAttempts = 5
)

// UserDirectory resolves users referenced by memberships.
type UserDirectory interface {
	GetUserByToken(ctx context.Context, token string) (*user.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]user.User, error)
}

type Metrics interface {
	DatesInserted(n int)
	DatesDeleted(n int)
	AvailabilityBackfilled(n int)
}

type noopMetrics struct{}

func (noopMetrics) DatesInserted(int)          {}
func (noopMetrics) DatesDeleted(int)           {}
func (noopMetrics) AvailabilityBackfilled(int) {}

type Service struct {
	repo    Repository
	users   UserDirectory
	metrics Metrics
}

func NewService(repo Repository, users UserDirectory, metrics Metrics) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{repo: repo, users: users, metrics: metrics}
}

// CreateTrip stores the trip and makes the creator its first member.
func (s *Service) CreateTrip(ctx context.Context, creatorID int64, input CreateTripInput) (*Trip, error) {
	title := strings.TrimSpace(input.Title)
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrInvalidTitle
	}
	userName, err := normalizeUserName(input.UserName)
	if err != nil {
		return nil, err
	}

	var result Trip
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		hash, err := generateHash(ctx, tx)
		if err != nil {
			return err
		}

		trip := Trip{
			Title:       title,
			Description: input.Description,
			HashID:      hash,
		}
		if err := tx.CreateTrip(ctx, &trip); err != nil {
			return err
		}

		member := Membership{
			UserID:   creatorID,
			TripID:   trip.ID,
			UserName: userName,
		}
		if err := tx.CreateMembership(ctx, &member); err != nil {
			return err
		}

		result = trip
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) GetTrip(ctx context.Context, hash string) (*Trip, error) {
	return s.repo.GetTripByHash(ctx, strings.TrimSpace(hash))
}

func (s *Service) ListTrips(ctx context.Context, userID int64) ([]Trip, error) {
	return s.repo.ListTripsByUser(ctx, userID)
}

// RequireMember loads the trip and fails with ErrNotMember unless userID
// belongs to it.
func (s *Service) RequireMember(ctx context.Context, hash string, userID int64) (*Trip, error) {
	return requireMember(ctx, s.repo, hash, userID)
}

func (s *Service) MemberIDs(ctx context.Context, tripID int64) (map[int64]struct{}, error) {
	members, err := s.repo.ListMemberships(ctx, tripID)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]struct{}, len(members))
	for _, m := range members {
		ids[m.UserID] = struct{}{}
	}
	return ids, nil
}

// UpdateTrip applies the partial update and, when the range or weekday
// fields change, reconciles the date rows in the same transaction.
func (s *Service) UpdateTrip(ctx context.Context, userID int64, hash string, input UpdateTripInput) (*UpdateResult, error) {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if utf8.RuneCountInString(title) > maxTitleLength {
			return nil, ErrInvalidTitle
		}
		input.Title = &title
	}
	if input.AllowedWeekdays.Set {
		if err := input.AllowedWeekdays.Value.Validate(); err != nil {
			return nil, err
		}
	}

	var result UpdateResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		trip, err := requireMember(ctx, tx, hash, userID)
		if err != nil {
			return err
		}

		if input.Title != nil {
			trip.Title = *input.Title
		}
		if input.Description.Set {
			trip.Description = input.Description.Value
		}
		if input.DateStart.Set {
			trip.DateStart = normalizeDay(input.DateStart.Value)
		}
		if input.DateEnd.Set {
			trip.DateEnd = normalizeDay(input.DateEnd.Value)
		}
		if input.AllowedWeekdays.Set {
			trip.AllowedWeekdays = input.AllowedWeekdays.Value
		}

		if err := tx.UpdateTrip(ctx, trip); err != nil {
			return err
		}

		result.Trip = *trip
		if !input.touchesDates() {
			return nil
		}

		inserted, deleted, err := reconcileDates(ctx, tx, trip)
		if err != nil {
			return err
		}
		result.DatesInserted = inserted
		result.DatesDeleted = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.DatesInserted(result.DatesInserted)
	s.metrics.DatesDeleted(result.DatesDeleted)
	return &result, nil
}

// reconcileDates makes the stored dates equal to the trip's desired set.
func reconcileDates(ctx context.Context, tx Repository, trip *Trip) (int, int, error) {
	existing, err := tx.ListTripDates(ctx, trip.ID)
	if err != nil {
		return 0, 0, err
	}

	desired := DesiredDates(trip.DateStart, trip.DateEnd, trip.AllowedWeekdays)
	deleteIDs, insert := DiffDates(existing, desired)

	if len(deleteIDs) > 0 {
		if err := tx.DeleteTripDates(ctx, trip.ID, deleteIDs); err != nil {
			return 0, 0, err
		}
	}
	if len(insert) > 0 {
		if err := tx.CreateTripDates(ctx, newTripDates(trip.ID, insert)); err != nil {
			return 0, 0, err
		}
	}
	return len(insert), len(deleteIDs), nil
}

func requireMember(ctx context.Context, repo Repository, hash string, userID int64) (*Trip, error) {
	trip, err := repo.GetTripByHash(ctx, strings.TrimSpace(hash))
	if err != nil {
		return nil, err
	}
	if _, err := repo.GetMembership(ctx, trip.ID, userID); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return trip, nil
}

func generateHash(ctx context.Context, repo Repository) (string, error) {
	for i := 0; i < hashAttempts; i++ {
		hash := newHex()[:hashLength]
		taken, err := repo.IsHashTaken(ctx, hash)
		if err != nil {
			return "", err
		}
		if !taken {
			return hash, nil
		}
	}

	hash := newHex()
	taken, err := repo.IsHashTaken(ctx, hash)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrHashGenerationFailed
	}
	return hash, nil
}

func newHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newTripDates(tripID int64, days []time.Time) []TripDate {
	rows := make([]TripDate, 0, len(days))
	for _, day := range days {
		rows = append(rows, TripDate{TripID: tripID, Date: day})
	}
	return rows
}

func normalizeDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := truncateDay(*t)
	return &day
}

func normalizeUserName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxUserNameLength {
		return "", ErrInvalidUserName
	}
	return name, nil
}
