package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Zhyangithub/eataway-router/internal/api/dto"
	"github.com/Zhyangithub/eataway-router/internal/ports"
)

// PhonesHandler stores driver phone numbers. Unknown driver names in
// the request are ignored rather than rejected, so the dashboard can
// always submit its full form.
type PhonesHandler struct {
	Store   ports.StateStore
	Drivers []string
}

func (h *PhonesHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	known := make(map[string]struct{}, len(h.Drivers))
	for _, d := range h.Drivers {
		known[d] = struct{}{}
	}

	for driver, phone := range req {
		if _, ok := known[driver]; !ok {
			continue
		}
		if err := h.Store.SavePhone(r.Context(), driver, strings.TrimSpace(phone)); err != nil {
			log.Error().Err(err).Str("driver", driver).Msg("saving phone failed")
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	phones, err := h.Store.LoadPhones(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("loading phones failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.PhonesResponse{OK: true, Phones: phones})
}
