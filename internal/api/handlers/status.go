package handlers

import (
	"net/http"
	"time"

	"github.com/Zhyangithub/eataway-router/internal/api/dto"
	"github.com/Zhyangithub/eataway-router/internal/ports"
	"github.com/Zhyangithub/eataway-router/internal/scheduler"
	"github.com/Zhyangithub/eataway-router/internal/services"
)

// StatusHandler reports the last run's results plus the dashboard's
// operational state.
type StatusHandler struct {
	Store     ports.StateStore
	Service   *services.GenerateService
	Scheduler *scheduler.Daily
	Drivers   []string
}

func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	results, err := h.Store.LoadResults(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("loading results failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	phones, err := h.Store.LoadPhones(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("loading phones failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	for _, d := range h.Drivers {
		if _, ok := phones[d]; !ok {
			phones[d] = ""
		}
	}

	hour, minute := h.Scheduler.At()
	res := dto.StatusResponse{
		Results:        map[string]dto.DriverResultResponse{},
		ScheduleHour:   hour,
		ScheduleMinute: minute,
		Running:        h.Service.Running(),
		Drivers:        h.Drivers,
		Phones:         phones,
	}
	if results != nil {
		res.GeneratedAt = results.GeneratedAt.Format(time.DateTime)
		for driver, dr := range results.Drivers {
			res.Results[driver] = toResultResponse(dr)
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
