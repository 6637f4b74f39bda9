package expenses

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be a non-negative number")
	ErrInvalidCurrency    = errors.New("invalid currency")
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidShareType   = errors.New("share type must be equal, percent or amount")
	ErrInvalidShareValue  = errors.New("share value must be a non-negative number")
	ErrDebtorNotMember    = errors.New("debtor is not a member of this trip")
)
