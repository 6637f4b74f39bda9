package handler

import (
	"net/http"
	"strings"
	"time"

	tripdomain "tiptrip-go/internal/domain/trip"
	"github.com/go-chi/chi/v5"
)

type addMemberRequest struct {
	UserHash string `json:"user_hash"`
	UserName string `json:"user_name"`
}

type updateMemberRequest struct {
	UserName string `json:"user_name"`
}

type memberResponse struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	TripID   int64     `json:"trip_id"`
	UserName string    `json:"user_name"`
	JoinedAt time.Time `json:"joined_at"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	members, err := h.Trips.ListMembers(r.Context(), hash)
	if err != nil {
		h.writeDomainError(w, "members.list", err, "hash", hash)
		return
	}

	response := make([]memberResponse, 0, len(members))
	for i := range members {
		response = append(response, toMemberResponse(&members[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) AddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.UserHash = strings.TrimSpace(req.UserHash)
	if req.UserHash == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_hash is required")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	member, backfill, err := h.Trips.AddMember(r.Context(), user.ID, hash, tripdomain.AddMemberInput{
		UserHash: req.UserHash,
		UserName: req.UserName,
	})
	if err != nil {
		h.writeDomainError(w, "members.add", err, "user_id", user.ID, "hash", hash)
		return
	}

	if backfill.Err != nil {
		h.log.Warn("members.add: availability backfill failed",
			"error", backfill.Err,
			"trip_id", member.TripID,
			"member_id", member.UserID,
		)
	} else {
		h.log.Info("members.add: member added",
			"trip_id", member.TripID,
			"member_id", member.UserID,
			"backfilled", backfill.Created,
		)
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(member))
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	memberID, err := parseIDParam(chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid user_id")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	member, err := h.Trips.UpdateMember(r.Context(), user.ID, hash, memberID, req.UserName)
	if err != nil {
		h.writeDomainError(w, "members.update", err, "user_id", user.ID, "hash", hash, "member_id", memberID)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := parseIDParam(chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid user_id")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	if err := h.Trips.RemoveMember(r.Context(), user.ID, hash, memberID); err != nil {
		h.writeDomainError(w, "members.remove", err, "user_id", user.ID, "hash", hash, "member_id", memberID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func toMemberResponse(member *tripdomain.Membership) memberResponse {
	return memberResponse{
		ID:       member.ID,
		UserID:   member.UserID,
		TripID:   member.TripID,
		UserName: member.UserName,
		JoinedAt: member.JoinedAt,
	}
}
