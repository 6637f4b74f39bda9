package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	tripdomain "tiptrip-go/internal/domain/trip"
	"github.com/go-chi/chi/v5"
)

type generateDatesRequest struct {
	DateStart       *string `json:"date_start"`
	DateEnd         *string `json:"date_end"`
	AllowedWeekdays []int   `json:"allowed_weekdays"`
}

type availabilityRequest struct {
	Updates []availabilityUpdateRequest `json:"updates"`
}

type availabilityUpdateRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type tripDateResponse struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
}

type calendarUserResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type calendarResponse struct {
	Dates        []string                     `json:"dates"`
	Users        []calendarUserResponse       `json:"users"`
	Availability map[string]map[string]string `json:"availability"`
}

func (h *Handlers) GenerateDates(w http.ResponseWriter, r *http.Request) {
	// An empty body regenerates from the stored range.
	var req generateDatesRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	start, err := parseDateParam(req.DateStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
		return
	}
	end, err := parseDateParam(req.DateEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	generated, err := h.Trips.GenerateDates(r.Context(), user.ID, hash, tripdomain.GenerateDatesInput{
		DateStart:       start,
		DateEnd:         end,
		AllowedWeekdays: req.AllowedWeekdays,
	})
	if err != nil {
		h.writeDomainError(w, "dates.generate", err, "user_id", user.ID, "hash", hash)
		return
	}

	h.log.Info("dates.generate: dates generated", "hash", hash, "generated", generated)
	writeJSON(w, http.StatusOK, map[string]int{"generated": generated})
}

func (h *Handlers) ListDates(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	dates, err := h.Trips.ListDates(r.Context(), user.ID, hash)
	if err != nil {
		h.writeDomainError(w, "dates.list", err, "user_id", user.ID, "hash", hash)
		return
	}

	response := make([]tripDateResponse, 0, len(dates))
	for _, d := range dates {
		response = append(response, tripDateResponse{ID: d.ID, Date: tripdomain.DateKey(d.Date)})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	updates := make([]tripdomain.AvailabilityUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		day, err := parseDate(u.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		updates = append(updates, tripdomain.AvailabilityUpdate{Date: day, Status: u.Status})
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	updated, err := h.Trips.UpdateAvailability(r.Context(), user.ID, hash, updates)
	if err != nil {
		h.writeDomainError(w, "availability.update", err, "user_id", user.ID, "hash", hash)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (h *Handlers) GetCalendar(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	cal, err := h.Trips.Calendar(r.Context(), user.ID, hash)
	if err != nil {
		h.writeDomainError(w, "calendar.get", err, "user_id", user.ID, "hash", hash)
		return
	}

	response := calendarResponse{
		Dates:        make([]string, 0, len(cal.Dates)),
		Users:        make([]calendarUserResponse, 0, len(cal.Users)),
		Availability: make(map[string]map[string]string, len(cal.Availability)),
	}
	for _, d := range cal.Dates {
		response.Dates = append(response.Dates, tripdomain.DateKey(d.Date))
	}
	for _, u := range cal.Users {
		response.Users = append(response.Users, calendarUserResponse{
			ID:          strconv.FormatInt(u.UserID, 10),
			DisplayName: u.DisplayName,
		})
	}
	for userID, grid := range cal.Availability {
		response.Availability[strconv.FormatInt(userID, 10)] = grid
	}
	writeJSON(w, http.StatusOK, response)
}
