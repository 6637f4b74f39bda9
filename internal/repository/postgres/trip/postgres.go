package trip

import (
	"context"
	"errors"

	domain "tiptrip-go/internal/domain/trip"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertBatchSize keeps multi-row inserts under the postgres bind parameter limit.
const insertBatchSize = 500

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *PostgresRepository) UpdateTrip(ctx context.Context, trip *domain.Trip) error {
	return r.db.WithContext(ctx).
		Model(trip).
		Select("title", "description", "date_start", "date_end", "allowed_weekdays", "updated_at").
		Updates(trip).Error
}

func (r *PostgresRepository) GetTripByHash(ctx context.Context, hash string) (*domain.Trip, error) {
	var trip domain.Trip
	if err := r.db.WithContext(ctx).Where("hash_id = ?", hash).First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *PostgresRepository) IsHashTaken(ctx context.Context, hash string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Trip{}).Where("hash_id = ?", hash).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) ListTripsByUser(ctx context.Context, userID int64) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := r.db.WithContext(ctx).
		Joins("join user_trips on user_trips.trip_id = trips.id").
		Where("user_trips.user_id = ?", userID).
		Order("trips.id asc").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *PostgresRepository) CreateMembership(ctx context.Context, membership *domain.Membership) error {
	err := r.db.WithContext(ctx).Create(membership).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyMember
	}
	return err
}

func (r *PostgresRepository) GetMembership(ctx context.Context, tripID, userID int64) (*domain.Membership, error) {
	var member domain.Membership
	if err := r.db.WithContext(ctx).Where("trip_id = ? AND user_id = ?", tripID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMemberships(ctx context.Context, tripID int64) ([]domain.Membership, error) {
	var members []domain.Membership
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("joined_at asc, id asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) UpdateMembershipName(ctx context.Context, tripID, userID int64, name string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Update("user_name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMembership(ctx context.Context, tripID, userID int64) error {
	result := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Delete(&domain.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) ListTripDates(ctx context.Context, tripID int64) ([]domain.TripDate, error) {
	var dates []domain.TripDate
	if err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).Order("date asc").Find(&dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *PostgresRepository) CreateTripDates(ctx context.Context, dates []domain.TripDate) error {
	if len(dates) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).CreateInBatches(&dates, insertBatchSize).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateTripDate
	}
	return err
}

func (r *PostgresRepository) DeleteTripDates(ctx context.Context, tripID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Where("trip_date_id IN ?", ids).
		Delete(&domain.Availability{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("trip_id = ? AND id IN ?", tripID, ids).
		Delete(&domain.TripDate{}).Error
}

func (r *PostgresRepository) ListAvailability(ctx context.Context, tripID int64) ([]domain.Availability, error) {
	var rows []domain.Availability
	err := r.db.WithContext(ctx).
		Joins("join trip_dates on trip_dates.id = user_availability.trip_date_id").
		Where("trip_dates.trip_id = ?", tripID).
		Order("user_availability.id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) ListUserAvailability(ctx context.Context, tripID, userID int64) ([]domain.Availability, error) {
	var rows []domain.Availability
	err := r.db.WithContext(ctx).
		Joins("join trip_dates on trip_dates.id = user_availability.trip_date_id").
		Where("trip_dates.trip_id = ? AND user_availability.user_id = ?", tripID, userID).
		Order("user_availability.id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) CreateAvailability(ctx context.Context, rows []domain.Availability) error {
	if len(rows) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).CreateInBatches(&rows, insertBatchSize).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateAvailability
	}
	return err
}

func (r *PostgresRepository) UpsertAvailability(ctx context.Context, rows []domain.Availability) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trip_date_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		CreateInBatches(&rows, insertBatchSize).Error
}
