package handlers

import (
	"net/http"

	"passdepot/backend/middleware"
	"passdepot/backend/models"
	"passdepot/backend/services"
)

// PassHandler handles the user-facing pass procedures
type PassHandler struct {
	engine *services.Engine
}

func NewPassHandler(engine *services.Engine) *PassHandler {
	return &PassHandler{engine: engine}
}

// Transfer moves pass entries to another user.
// POST /passes/transfer
func (h *PassHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.TransferPassRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	newPassID, err := h.engine.TransferPass(r.Context(), callerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"newPassId": newPassID})
}

// ListForMarket carves a sale listing out of a private pass.
// POST /passes/list
func (h *PassHandler) ListForMarket(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.ListPassForMarketRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	marketPassID, err := h.engine.ListPassForMarket(r.Context(), callerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"marketPassId": marketPassID})
}

// Unlist withdraws a listing back into its parent pass.
// POST /passes/unlist
func (h *PassHandler) Unlist(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.UnlistPassRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	returned, err := h.engine.UnlistPass(r.Context(), callerID, req.MarketPassID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"countAddedBack": returned})
}

// SellMarket completes a sale off one of the caller's listings.
// POST /passes/sell
func (h *PassHandler) SellMarket(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.SellMarketPassRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	newPassID, err := h.engine.SellMarketPass(r.Context(), callerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"newPassId": newPassID})
}

// Remove soft-deletes one of the caller's passes.
// POST /passes/remove
func (h *PassHandler) Remove(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	var req models.RemovePassRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.engine.RemovePass(r.Context(), callerID, req); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"passId":   req.PassID,
		"passType": req.PassType,
	})
}

// MyPasses returns the caller's live holdings.
// GET /passes/mine
func (h *PassHandler) MyPasses(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	passes, err := h.engine.ListMyPasses(r.Context(), callerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"privatePasses": passes.PrivatePasses,
		"marketPasses":  passes.MarketPasses,
	})
}

// Market returns all live listings.
// GET /passes/market
func (h *PassHandler) Market(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	listings, err := h.engine.ListMarket(r.Context(), callerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"marketPasses": listings})
}

// MyRecords returns the caller's ledger trail, newest first.
// GET /records
func (h *PassHandler) MyRecords(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserIDFromContext(r)

	records, err := h.engine.ListMyRecords(r.Context(), callerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"records": records})
}
