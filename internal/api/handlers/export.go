package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Zhyangithub/eataway-router/internal/export"
	"github.com/Zhyangithub/eataway-router/internal/ports"
)

// ExportHandler serves the last run as a downloadable spreadsheet.
type ExportHandler struct {
	Store   ports.StateStore
	Drivers []string
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	results, err := h.Store.LoadResults(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("loading results failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if results == nil {
		writeError(w, r, http.StatusBadRequest, "no results yet")
		return
	}

	workbook, err := export.Workbook(h.Drivers, *results)
	if err != nil {
		log.Error().Err(err).Msg("building export failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	filename := fmt.Sprintf("rutter_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(workbook); err != nil {
		log.Error().Err(err).Msg("writing export failed")
	}
}
