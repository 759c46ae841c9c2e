package handlers

import (
	"net/http"

	"passdepot/backend/middleware"
	"passdepot/backend/models"
	"passdepot/backend/services"
)

// AdminHandler handles the gym-administrator procedures
type AdminHandler struct {
	engine *services.Engine
}

func NewAdminHandler(engine *services.Engine) *AdminHandler {
	return &AdminHandler{engine: engine}
}

// AddPass creates a distribution template.
// POST /admin/passes
func (h *AdminHandler) AddPass(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.AddAdminPassRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	adminPassID, err := h.engine.AddAdminPass(r.Context(), callerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"adminPassId": adminPassID})
}

// DeletePass hard-deletes a template.
// POST /admin/passes/delete
func (h *AdminHandler) DeletePass(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.DeleteAdminPassRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.engine.DeleteAdminPass(r.Context(), callerID, req.AdminPassID); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

// SellPass distributes a template's allotment to a user.
// POST /admin/passes/sell
func (h *AdminHandler) SellPass(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.SellAdminPassRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	newPassID, err := h.engine.SellAdminPass(r.Context(), callerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"newPassId": newPassID})
}

// ConsumePass burns entries at the gym desk.
// POST /admin/consume
func (h *AdminHandler) ConsumePass(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.ConsumePassRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.engine.ConsumePass(r.Context(), callerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"consumedCount":  result.ConsumedCount,
		"remainingCount": result.RemainingCount,
	})
}

// GymPasses lists the caller's gym's templates.
// GET /admin/passes
func (h *AdminHandler) GymPasses(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	passes, err := h.engine.ListGymAdminPasses(r.Context(), callerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"adminPasses": passes})
}
