// Package api exposes the dashboard HTTP surface over the pipeline.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Zhyangithub/eataway-router/internal/api/handlers"
	"github.com/Zhyangithub/eataway-router/internal/ports"
	"github.com/Zhyangithub/eataway-router/internal/scheduler"
	"github.com/Zhyangithub/eataway-router/internal/services"
)

// Deps carries everything the HTTP surface needs. This is the API
// composition root; handlers stay unaware of concrete adapters.
type Deps struct {
	Store     ports.StateStore
	Service   *services.GenerateService
	Scheduler *scheduler.Daily
	Drivers   []string
	// BaseCtx scopes background runs started from requests.
	BaseCtx context.Context
	Log     zerolog.Logger
}

// NewRouter wires the HTTP handlers and returns the root handler.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()

	status := &handlers.StatusHandler{Store: d.Store, Service: d.Service, Scheduler: d.Scheduler, Drivers: d.Drivers}
	generate := &handlers.GenerateHandler{Service: d.Service, BaseCtx: d.BaseCtx}
	schedule := &handlers.ScheduleHandler{Store: d.Store, Scheduler: d.Scheduler}
	phones := &handlers.PhonesHandler{Store: d.Store, Drivers: d.Drivers}
	exportH := &handlers.ExportHandler{Store: d.Store, Drivers: d.Drivers}
	links := &handlers.LinksHandler{Store: d.Store}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/status", status.Status).Methods(http.MethodGet)
	r.HandleFunc("/api/generate", generate.Generate).Methods(http.MethodPost)
	r.HandleFunc("/api/schedule", schedule.Set).Methods(http.MethodPost)
	r.HandleFunc("/api/phones", phones.Set).Methods(http.MethodPost)
	r.HandleFunc("/api/export", exportH.Export).Methods(http.MethodGet)
	r.HandleFunc("/links/{driver}", links.Links).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return loggingMiddleware(d.Log, r)
}
