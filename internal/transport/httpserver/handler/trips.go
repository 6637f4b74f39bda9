package handler

import (
	"net/http"
	"strings"
	"time"

	tripdomain "tiptrip-go/internal/domain/trip"
	"github.com/go-chi/chi/v5"
)

type createTripRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	UserName    *string `json:"user_name"`
}

type updateTripRequest struct {
	Title           *string                  `json:"title"`
	Description     optionalNullableString   `json:"description"`
	DateStart       optionalNullableString   `json:"date_start"`
	DateEnd         optionalNullableString   `json:"date_end"`
	AllowedWeekdays optionalNullableWeekdays `json:"allowed_weekdays"`
}

type tripResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	HashID          string    `json:"hash_id"`
	DateStart       *string   `json:"date_start"`
	DateEnd         *string   `json:"date_end"`
	AllowedWeekdays []int     `json:"allowed_weekdays"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (h *Handlers) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Title == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}
	if req.UserName == nil || strings.TrimSpace(*req.UserName) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_name is required")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	trip, err := h.Trips.CreateTrip(r.Context(), user.ID, tripdomain.CreateTripInput{
		Title:       *req.Title,
		Description: req.Description,
		UserName:    *req.UserName,
	})
	if err != nil {
		h.writeDomainError(w, "trips.create", err, "user_id", user.ID)
		return
	}

	h.log.Info("trips.create: trip created", "user_id", user.ID, "trip_id", trip.ID)
	writeJSON(w, http.StatusCreated, toTripResponse(trip))
}

func (h *Handlers) ListTrips(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	trips, err := h.Trips.ListTrips(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, "trips.list", err, "user_id", user.ID)
		return
	}

	response := make([]tripResponse, 0, len(trips))
	for i := range trips {
		response = append(response, toTripResponse(&trips[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetTrip(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	trip, err := h.Trips.GetTrip(r.Context(), hash)
	if err != nil {
		h.writeDomainError(w, "trips.get", err, "hash", hash)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

func (h *Handlers) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := tripdomain.UpdateTripInput{
		Title:           req.Title,
		Description:     tripdomain.OptionalNullableString{Set: req.Description.Set, Value: req.Description.Value},
		AllowedWeekdays: tripdomain.OptionalWeekdays{Set: req.AllowedWeekdays.Set, Value: req.AllowedWeekdays.Value},
	}
	if req.DateStart.Set {
		start, err := parseDateParam(req.DateStart.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		input.DateStart = tripdomain.OptionalDate{Set: true, Value: start}
	}
	if req.DateEnd.Set {
		end, err := parseDateParam(req.DateEnd.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		input.DateEnd = tripdomain.OptionalDate{Set: true, Value: end}
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	result, err := h.Trips.UpdateTrip(r.Context(), user.ID, hash, input)
	if err != nil {
		h.writeDomainError(w, "trips.update", err, "user_id", user.ID, "hash", hash)
		return
	}

	if result.DatesInserted > 0 || result.DatesDeleted > 0 {
		h.log.Info("trips.update: dates reconciled",
			"trip_id", result.Trip.ID,
			"inserted", result.DatesInserted,
			"deleted", result.DatesDeleted,
		)
	}
	writeJSON(w, http.StatusOK, toTripResponse(&result.Trip))
}

func toTripResponse(trip *tripdomain.Trip) tripResponse {
	var weekdays []int
	if trip.AllowedWeekdays != nil {
		weekdays = append([]int{}, trip.AllowedWeekdays...)
	}
	return tripResponse{
		ID:              trip.ID,
		Title:           trip.Title,
		Description:     trip.Description,
		HashID:          trip.HashID,
		DateStart:       formatDate(trip.DateStart),
		DateEnd:         formatDate(trip.DateEnd),
		AllowedWeekdays: weekdays,
		CreatedAt:       trip.CreatedAt,
		UpdatedAt:       trip.UpdatedAt,
	}
}
