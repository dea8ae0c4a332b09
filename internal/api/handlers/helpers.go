package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Zhyangithub/eataway-router/internal/api/dto"
	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/platform/logger"
)

var log = logger.New("api")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// toResultResponse converts a domain result to its wire form.
func toResultResponse(res domain.DriverResult) dto.DriverResultResponse {
	if !res.OK() {
		return dto.DriverResultResponse{Status: res.Status, Error: res.Error}
	}

	stores := make([]string, 0, len(res.Stops))
	for _, s := range res.Stops {
		stores = append(stores, s.Name)
	}
	return dto.DriverResultResponse{
		Status:         res.Status,
		Stores:         stores,
		StoreCount:     len(stores),
		URLs:           res.NavLinks,
		Duration:       dto.FormatDuration(res.Stats.DurationMinutes),
		Distance:       dto.FormatDistance(res.Stats.DistanceKm),
		Unmatched:      res.Unmatched,
		UnmatchedCount: len(res.Unmatched),
	}
}
