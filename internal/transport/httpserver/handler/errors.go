package handler

import (
	"errors"
	"net/http"

	expensesdomain "tiptrip-go/internal/domain/expenses"
	tripdomain "tiptrip-go/internal/domain/trip"
	userdomain "tiptrip-go/internal/domain/user"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var domainErrors = []errorMapping{
	{tripdomain.ErrTripNotFound, http.StatusNotFound, "trip_not_found"},
	{userdomain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{tripdomain.ErrMemberNotFound, http.StatusNotFound, "member_not_found"},
	{tripdomain.ErrNotMember, http.StatusForbidden, "not_member"},
	{tripdomain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{tripdomain.ErrAlreadyMember, http.StatusConflict, "already_member"},
	{tripdomain.ErrDuplicateTripDate, http.StatusConflict, "conflict"},
	{tripdomain.ErrDuplicateAvailability, http.StatusConflict, "conflict"},
	{tripdomain.ErrDateRangeRequired, http.StatusBadRequest, "date_range_required"},
	{tripdomain.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date_range"},
	{tripdomain.ErrInvalidWeekday, http.StatusBadRequest, "invalid_weekday"},
	{tripdomain.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{tripdomain.ErrInvalidUserName, http.StatusBadRequest, "invalid_request"},
	{tripdomain.ErrInvalidTitle, http.StatusBadRequest, "invalid_request"},
	{expensesdomain.ErrDebtorNotMember, http.StatusBadRequest, "debtor_not_member"},
	{expensesdomain.ErrInvalidShareType, http.StatusBadRequest, "invalid_share_type"},
	{expensesdomain.ErrInvalidShareValue, http.StatusBadRequest, "invalid_request"},
	{expensesdomain.ErrInvalidAmount, http.StatusBadRequest, "invalid_request"},
	{expensesdomain.ErrInvalidCurrency, http.StatusBadRequest, "invalid_request"},
	{expensesdomain.ErrInvalidDescription, http.StatusBadRequest, "invalid_request"},
}

// writeDomainError maps a service error onto the error envelope. Anything
// not listed is logged as internal and reported without detail.
func (h *Handlers) writeDomainError(w http.ResponseWriter, op string, err error, attrs ...any) {
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			h.log.BusinessError(op+": "+m.code, err, attrs...)
			writeError(w, m.status, m.code, err.Error())
			return
		}
	}

	h.log.InternalError(op+": failed", err, attrs...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
