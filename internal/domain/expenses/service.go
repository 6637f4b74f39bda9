package expenses

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"tiptrip-go/internal/domain/trip"
)

// TripAccess is the slice of the trip service expenses rely on.
type TripAccess interface {
	RequireMember(ctx context.Context, hash string, userID int64) (*trip.Trip, error)
	MemberIDs(ctx context.Context, tripID int64) (map[int64]struct{}, error)
}

type Metrics interface {
	SettlementsComputed(n int)
}

type noopMetrics struct{}

func (noopMetrics) SettlementsComputed(int) {}

type Service struct {
	repo    Repository
	trips   TripAccess
	metrics Metrics
}

func NewService(repo Repository, trips TripAccess, metrics Metrics) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{repo: repo, trips: trips, metrics: metrics}
}

// CreateExpense records an expense paid by payerID. Every debtor must be a
// trip member; nothing is written when any check fails.
func (s *Service) CreateExpense(ctx context.Context, payerID int64, hash string, input CreateExpenseInput) (*Expense, error) {
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) || input.Amount < 0 {
		return nil, ErrInvalidAmount
	}
	currency, err := normalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(input.Description) > maxDescriptionLength {
		return nil, ErrInvalidDescription
	}

	t, err := s.trips.RequireMember(ctx, hash, payerID)
	if err != nil {
		return nil, err
	}
	members, err := s.trips.MemberIDs(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, 0, len(input.Debtors))
	for _, d := range input.Debtors {
		shareType := strings.TrimSpace(d.ShareType)
		if shareType == "" {
			shareType = ShareEqual
		}
		if !validShareType(shareType) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidShareType, shareType)
		}
		if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) || d.Value < 0 {
			return nil, ErrInvalidShareValue
		}
		if _, ok := members[d.UserID]; !ok {
			return nil, fmt.Errorf("%w: user %d", ErrDebtorNotMember, d.UserID)
		}
		shares = append(shares, Share{UserID: d.UserID, ShareType: shareType, Value: d.Value})
	}

	expense := Expense{
		TripID:      t.ID,
		PayerUserID: payerID,
		Amount:      input.Amount,
		Currency:    currency,
		Description: input.Description,
		Shares:      shares,
	}
	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *Service) ListExpenses(ctx context.Context, userID int64, hash string) ([]Expense, error) {
	t, err := s.trips.RequireMember(ctx, hash, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListExpensesByTrip(ctx, t.ID)
}

func (s *Service) Settlements(ctx context.Context, userID int64, hash string) ([]Settlement, error) {
	t, err := s.trips.RequireMember(ctx, hash, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListExpensesByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	settlements := ComputeSettlements(expenses)
	s.metrics.SettlementsComputed(len(settlements))
	return settlements, nil
}

func (s *Service) Balances(ctx context.Context, userID int64, hash string) ([]Balance, error) {
	t, err := s.trips.RequireMember(ctx, hash, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListExpensesByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return ComputeBalances(expenses), nil
}

func normalizeCurrency(value string) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(value))
	if currency == "" {
		return DefaultCurrency, nil
	}
	if len(currency) > maxCurrencyLength {
		return "", ErrInvalidCurrency
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return currency, nil
}

func validShareType(shareType string) bool {
	switch shareType {
	case ShareEqual, SharePercent, ShareAmount:
		return true
	default:
		return false
	}
}
