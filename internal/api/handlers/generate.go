package handlers

import (
	"context"
	"net/http"

	"github.com/Zhyangithub/eataway-router/internal/api/dto"
	"github.com/Zhyangithub/eataway-router/internal/services"
)

// GenerateHandler triggers a route generation run in the background.
// The generate service enforces that only one run executes at a time.
type GenerateHandler struct {
	Service *services.GenerateService
	// BaseCtx scopes background runs to the server lifetime. The run
	// must outlive the triggering request, so the request context is
	// deliberately not used.
	BaseCtx context.Context
}

func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := h.BaseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if !h.Service.TryStartAsync(ctx) {
		writeJSON(w, r, http.StatusConflict, dto.GenerateResponse{OK: false, Message: "Already running"})
		return
	}
	writeJSON(w, r, http.StatusOK, dto.GenerateResponse{OK: true})
}
