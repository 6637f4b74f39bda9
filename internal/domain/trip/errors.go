package trip

import (
	"errors"

	"tiptrip-go/internal/domain/user"
)

var (
	ErrTripNotFound          = errors.New("trip not found")
	ErrMemberNotFound        = errors.New("membership not found")
	ErrNotMember             = errors.New("not a member of this trip")
	ErrForbidden             = errors.New("only the user themself may modify their membership")
	ErrAlreadyMember         = errors.New("user is already a member of the trip")
	ErrHashGenerationFailed  = errors.New("trip hash generation failed")
	ErrDateRangeRequired     = errors.New("date_start and date_end required")
	ErrInvalidDateRange      = errors.New("date_start must not be after date_end")
	ErrInvalidWeekday        = errors.New("weekday must be between 0 and 6")
	ErrInvalidStatus         = errors.New("invalid availability status")
	ErrInvalidUserName       = errors.New("invalid user name")
	ErrInvalidTitle          = errors.New("invalid title")
	ErrDuplicateTripDate     = errors.New("trip date already exists")
	ErrDuplicateAvailability = errors.New("availability already exists")

	// ErrUserNotFound is returned by AddMember for an unknown user hash.
	ErrUserNotFound = user.ErrUserNotFound
)
