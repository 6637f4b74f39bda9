package trip

import "context"

type Repository interface {
	// Transaction runs fn against a repository bound to a single transaction.
	Transaction(ctx context.Context, fn func(repo Repository) error) error

	CreateTrip(ctx context.Context, trip *Trip) error
	UpdateTrip(ctx context.Context, trip *Trip) error
	GetTripByHash(ctx context.Context, hash string) (*Trip, error)
	IsHashTaken(ctx context.Context, hash string) (bool, error)
	ListTripsByUser(ctx context.Context, userID int64) ([]Trip, error)

	CreateMembership(ctx context.Context, membership *Membership) error
	GetMembership(ctx context.Context, tripID, userID int64) (*Membership, error)
	ListMemberships(ctx context.Context, tripID int64) ([]Membership, error)
	UpdateMembershipName(ctx context.Context, tripID, userID int64, name string) error
	DeleteMembership(ctx context.Context, tripID, userID int64) error

	ListTripDates(ctx context.Context, tripID int64) ([]TripDate, error)
	CreateTripDates(ctx context.Context, dates []TripDate) error
	// DeleteTripDates removes the dates together with their availability rows.
	DeleteTripDates(ctx context.Context, tripID int64, ids []int64) error

	ListAvailability(ctx context.Context, tripID int64) ([]Availability, error)
	ListUserAvailability(ctx context.Context, tripID, userID int64) ([]Availability, error)
	CreateAvailability(ctx context.Context, rows []Availability) error
	UpsertAvailability(ctx context.Context, rows []Availability) error
}
