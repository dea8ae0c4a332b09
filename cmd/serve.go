package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Zhyangithub/eataway-router/internal/adapters/cache"
	"github.com/Zhyangithub/eataway-router/internal/adapters/directions"
	"github.com/Zhyangithub/eataway-router/internal/adapters/repositories"
	"github.com/Zhyangithub/eataway-router/internal/api"
	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/mail"
	"github.com/Zhyangithub/eataway-router/internal/platform/db"
	"github.com/Zhyangithub/eataway-router/internal/platform/logger"
	"github.com/Zhyangithub/eataway-router/internal/scheduler"
	"github.com/Zhyangithub/eataway-router/internal/services"
	"github.com/Zhyangithub/eataway-router/internal/tabular"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server and the daily scheduler",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve is the application composition root: it wires concrete
// adapters behind the ports and starts the HTTP server plus the daily
// scheduler.
func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New("serve")

	database, dialect, err := db.Open(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	store := repositories.NewSQLStateStore(database, dialect)
	if err := store.InitSchema(ctx); err != nil {
		return err
	}

	var routeCache *cache.RouteCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		ttl := time.Duration(cfg.Redis.TTLMinutes) * time.Minute
		routeCache = cache.NewRouteCache(rdb, ttl, logger.New("route-cache"))
	}

	optimizer, err := directions.NewClient(cfg.Directions.APIKey, routeCache, logger.New("directions"))
	if err != nil {
		return err
	}

	runner := &services.Runner{
		Tables: tabular.FileSource{
			CoordinatesPath: cfg.Tables.Coordinates,
			RoutesPath:      cfg.Tables.Routes,
		},
		Optimizer:     optimizer,
		Warehouse:     domain.Coordinate{Lat: cfg.Warehouse.Lat, Lng: cfg.Warehouse.Lng},
		MaxWaypoints:  cfg.Pipeline.MaxWaypointsPerLink,
		HeaderMarker:  cfg.Pipeline.HeaderMarker,
		HeaderScanRow: cfg.Pipeline.HeaderScanRows,
		Log:           logger.New("pipeline"),
	}

	var notifier services.Notifier
	if cfg.SMTP.Host != "" && len(cfg.SMTP.Recipients) > 0 {
		notifier = &mail.Mailer{
			Host:       cfg.SMTP.Host,
			Port:       cfg.SMTP.Port,
			Username:   cfg.SMTP.Username,
			Password:   cfg.SMTP.Password,
			From:       cfg.SMTP.From,
			Recipients: cfg.SMTP.Recipients,
			Log:        logger.New("mail"),
		}
	}

	svc := &services.GenerateService{
		Runner:   runner,
		Roster:   cfg.Drivers,
		Store:    store,
		Notifier: notifier,
		Log:      logger.New("generate"),
	}

	// A schedule saved from the dashboard overrides the config file.
	hour, minute := cfg.Schedule.Hour, cfg.Schedule.Minute
	if h, m, ok, err := store.LoadSchedule(ctx); err != nil {
		log.Warn().Err(err).Msg("loading stored schedule failed; using config")
	} else if ok {
		hour, minute = h, m
	}

	daily := scheduler.NewDaily(hour, minute, func() {
		svc.TryStartAsync(ctx)
	}, logger.New("scheduler"))
	go daily.Run(ctx)

	router := api.NewRouter(api.Deps{
		Store:     store,
		Service:   svc,
		Scheduler: daily,
		Drivers:   cfg.Drivers,
		BaseCtx:   ctx,
		Log:       logger.New("http"),
	})

	// Write timeout leaves room for a cold-cache export of a full
	// roster; the long-running work itself happens off-request.
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           ghandlers.CORS()(router),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	return nil
}
