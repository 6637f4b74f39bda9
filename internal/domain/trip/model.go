package trip

import "time"

const (
	StatusUnset = "unset"

	maxStatusLength   = 32
	maxUserNameLength = 128
	maxTitleLength    = 255
)

type Trip struct {
	ID              int64      `gorm:"primaryKey"`
	Title           string     `gorm:"size:255;not null"`
	Description     *string    `gorm:"type:text"`
	HashID          string     `gorm:"size:64;not null;uniqueIndex"`
	DateStart       *time.Time `gorm:"type:date"`
	DateEnd         *time.Time `gorm:"type:date"`
	AllowedWeekdays Weekdays
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Trip) TableName() string {
	return "trips"
}

type Membership struct {
	ID       int64     `gorm:"primaryKey"`
	UserID   int64     `gorm:"not null;uniqueIndex:uq_user_trip"`
	TripID   int64     `gorm:"not null;uniqueIndex:uq_user_trip;index"`
	UserName string    `gorm:"size:128;not null"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (Membership) TableName() string {
	return "user_trips"
}

// TripDate is one calendar day open for availability polling.
type TripDate struct {
	ID     int64     `gorm:"primaryKey"`
	TripID int64     `gorm:"not null;uniqueIndex:uq_trip_date"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uq_trip_date"`
}

func (TripDate) TableName() string {
	return "trip_dates"
}

type Availability struct {
	ID         int64     `gorm:"primaryKey"`
	TripDateID int64     `gorm:"not null;uniqueIndex:uq_tripdate_user"`
	UserID     int64     `gorm:"not null;uniqueIndex:uq_tripdate_user"`
	Status     string    `gorm:"size:32;not null;default:unset"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Availability) TableName() string {
	return "user_availability"
}

type CreateTripInput struct {
	Title       string
	Description *string
	UserName    string
}

type OptionalNullableString struct {
	Set   bool
	Value *string
}

type OptionalDate struct {
	Set   bool
	Value *time.Time
}

type OptionalWeekdays struct {
	Set   bool
	Value Weekdays
}

type UpdateTripInput struct {
	Title           *string
	Description     OptionalNullableString
	DateStart       OptionalDate
	DateEnd         OptionalDate
	AllowedWeekdays OptionalWeekdays
}

func (in UpdateTripInput) touchesDates() bool {
	return in.DateStart.Set || in.DateEnd.Set || in.AllowedWeekdays.Set
}

// GenerateDatesInput fields override the stored trip range when present.
type GenerateDatesInput struct {
	DateStart       *time.Time
	DateEnd         *time.Time
	AllowedWeekdays Weekdays
}

type AvailabilityUpdate struct {
	Date   time.Time
	Status string
}

type AddMemberInput struct {
	UserHash string
	UserName string
}

type UpdateResult struct {
	Trip          Trip
	DatesInserted int
	DatesDeleted  int
}

// BackfillResult reports the best-effort availability backfill that follows
// a membership creation. Err never fails the membership itself.
type BackfillResult struct {
	Created int
	Err     error
}

type CalendarUser struct {
	UserID      int64
	DisplayName string
}

type Calendar struct {
	Dates []TripDate
	Users []CalendarUser
	// Availability is keyed by user id, then by ISO date.
	Availability map[int64]map[string]string
}
