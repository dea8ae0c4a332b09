package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Zhyangithub/eataway-router/internal/api/dto"
	"github.com/Zhyangithub/eataway-router/internal/ports"
)

// LinksHandler serves one driver's shareable itinerary. A driver whose
// last run failed, or who has no run yet, gets a 404 "no route" state
// rather than being omitted.
type LinksHandler struct {
	Store ports.StateStore
}

func (h *LinksHandler) Links(w http.ResponseWriter, r *http.Request) {
	driver := mux.Vars(r)["driver"]

	results, err := h.Store.LoadResults(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("loading results failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if results == nil {
		writeError(w, r, http.StatusNotFound, "no route available for "+driver)
		return
	}
	res, ok := results.Drivers[driver]
	if !ok || !res.OK() {
		writeError(w, r, http.StatusNotFound, "no route available for "+driver)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ItineraryResponse{
		Driver:      driver,
		GeneratedAt: results.GeneratedAt.Format(time.DateTime),
		Result:      toResultResponse(res),
	})
}
