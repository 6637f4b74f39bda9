package trip

import (
	"context"
	"errors"
	"strings"
)

func (s *Service) ListMembers(ctx context.Context, hash string) ([]Membership, error) {
	trip, err := s.GetTrip(ctx, hash)
	if err != nil {
		return nil, err
	}
	return s.repo.ListMemberships(ctx, trip.ID)
}

// AddMember joins the user identified by input.UserHash to the trip. Callers
// may add themselves; adding someone else requires the caller to be a member.
// The availability backfill runs afterwards and never fails the join.
func (s *Service) AddMember(ctx context.Context, callerID int64, hash string, input AddMemberInput) (*Membership, BackfillResult, error) {
	trip, err := s.GetTrip(ctx, hash)
	if err != nil {
		return nil, BackfillResult{}, err
	}

	target, err := s.users.GetUserByToken(ctx, strings.TrimSpace(input.UserHash))
	if err != nil {
		return nil, BackfillResult{}, err
	}

	if target.ID != callerID {
		if _, err := s.repo.GetMembership(ctx, trip.ID, callerID); err != nil {
			if errors.Is(err, ErrMemberNotFound) {
				return nil, BackfillResult{}, ErrNotMember
			}
			return nil, BackfillResult{}, err
		}
	}

	name := strings.TrimSpace(input.UserName)
	if name == "" {
		name = target.DisplayName()
	}
	name, err = normalizeUserName(name)
	if err != nil {
		return nil, BackfillResult{}, err
	}

	member := Membership{
		UserID:   target.ID,
		TripID:   trip.ID,
		UserName: name,
	}
	if err := s.repo.CreateMembership(ctx, &member); err != nil {
		return nil, BackfillResult{}, err
	}

	return &member, s.Backfill(ctx, trip.ID, target.ID), nil
}

// Backfill creates an unset availability row for every trip date the user has
// no row for yet. Running it twice creates nothing the second time.
func (s *Service) Backfill(ctx context.Context, tripID, userID int64) BackfillResult {
	var result BackfillResult
	result.Err = s.repo.Transaction(ctx, func(tx Repository) error {
		dates, err := tx.ListTripDates(ctx, tripID)
		if err != nil {
			return err
		}
		existing, err := tx.ListUserAvailability(ctx, tripID, userID)
		if err != nil {
			return err
		}

		have := make(map[int64]struct{}, len(existing))
		for _, row := range existing {
			have[row.TripDateID] = struct{}{}
		}

		var rows []Availability
		for _, d := range dates {
			if _, ok := have[d.ID]; ok {
				continue
			}
			rows = append(rows, Availability{TripDateID: d.ID, UserID: userID, Status: StatusUnset})
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateAvailability(ctx, rows); err != nil {
			return err
		}
		result.Created = len(rows)
		return nil
	})
	if result.Err != nil {
		result.Created = 0
		return result
	}

	s.metrics.AvailabilityBackfilled(result.Created)
	return result
}

func (s *Service) UpdateMember(ctx context.Context, callerID int64, hash string, userID int64, userName string) (*Membership, error) {
	trip, err := s.authorizeSelf(ctx, callerID, hash, userID)
	if err != nil {
		return nil, err
	}

	name, err := normalizeUserName(userName)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMembershipName(ctx, trip.ID, userID, name); err != nil {
		return nil, err
	}
	return s.repo.GetMembership(ctx, trip.ID, userID)
}

func (s *Service) RemoveMember(ctx context.Context, callerID int64, hash string, userID int64) error {
	trip, err := s.authorizeSelf(ctx, callerID, hash, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteMembership(ctx, trip.ID, userID)
}

func (s *Service) authorizeSelf(ctx context.Context, callerID int64, hash string, userID int64) (*Trip, error) {
	trip, err := s.GetTrip(ctx, hash)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetMembership(ctx, trip.ID, userID); err != nil {
		return nil, err
	}
	if callerID != userID {
		return nil, ErrForbidden
	}
	return trip, nil
}
