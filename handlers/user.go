package handlers

import (
	"net/http"

	"passdepot/backend/middleware"
	"passdepot/backend/models"
	"passdepot/backend/services"
)

// UserHandler handles profile requests
type UserHandler struct {
	engine *services.Engine
}

func NewUserHandler(engine *services.Engine) *UserHandler {
	return &UserHandler{engine: engine}
}

// SyncUser ensures the signed-in user has a profile document.
// POST /users/sync
func (h *UserHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.engine.SyncUserProfile(r.Context(), callerID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"user": user})
}

// GetProfile returns the caller's own profile.
// GET /users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	user, err := h.engine.GetUserProfile(r.Context(), callerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"user": user})
}

// UpdateProfile mutates the caller's profile fields.
// PUT /users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.UpdateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.engine.UpdateUserProfile(r.Context(), callerID, req); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

// LookupByPhone finds a transfer recipient by phone number.
// GET /users/lookup?phone=...
func (h *UserHandler) LookupByPhone(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)
	phone := r.URL.Query().Get("phone")

	user, err := h.engine.LookupUserByPhone(r.Context(), callerID, phone)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"user": map[string]string{"id": user.ID, "name": user.Name},
	})
}
