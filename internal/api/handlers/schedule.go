package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Zhyangithub/eataway-router/internal/api/dto"
	"github.com/Zhyangithub/eataway-router/internal/ports"
	"github.com/Zhyangithub/eataway-router/internal/scheduler"
)

// ScheduleHandler updates the daily trigger time and persists it.
type ScheduleHandler struct {
	Store     ports.StateStore
	Scheduler *scheduler.Daily
}

func (h *ScheduleHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleRequest
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if req.Hour < 0 || req.Hour > 23 || req.Minute < 0 || req.Minute > 59 {
		writeError(w, r, http.StatusBadRequest, "hour must be 0-23 and minute 0-59")
		return
	}

	if err := h.Store.SaveSchedule(r.Context(), req.Hour, req.Minute); err != nil {
		log.Error().Err(err).Msg("saving schedule failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	h.Scheduler.Reschedule(req.Hour, req.Minute)

	writeJSON(w, r, http.StatusOK, dto.ScheduleResponse{OK: true, Hour: req.Hour, Minute: req.Minute})
}
