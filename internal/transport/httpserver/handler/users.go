package handler

import (
	"net/http"
	"time"

	userdomain "tiptrip-go/internal/domain/user"
)

type createUserRequest struct {
	Name string `json:"name"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Users.CreateUser(r.Context(), req.Name)
	if err != nil {
		h.log.InternalError("users.create: create user failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not create user")
		return
	}

	h.log.Info("users.create: user created", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		h.log.InternalError("users.list: list users failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]userResponse, 0, len(users))
	for i := range users {
		response = append(response, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func toUserResponse(user *userdomain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		UserID:    user.PublicID,
		Token:     user.Token,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
