package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"reviewreminder/internal/controllers"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services"
	"reviewreminder/internal/storage/interfaces"
	"reviewreminder/internal/structures"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server

	conf      *structures.Config
	logger    providers.Logger
	session   services.PromptControllerInterface
	scheduler interfaces.SchedulerInterface
}

// NewApp builds the HTTP surface and starts the review reminder session for
// the configured app.
func NewApp(router providers.RouterProviderInterface, healthController *controllers.HealthController, session services.PromptControllerInterface, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (*App, error) {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	router.Mount(apiMux)

	// Wrap API routes with metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, logger, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	if err := session.StartSession(conf.AppID, &conf.Reminder, &conf.Strings); err != nil {
		return nil, fmt.Errorf("unable to start session: %w", err)
	}

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:      conf,
		logger:    logger,
		session:   session,
		scheduler: scheduler,
	}, nil
}

// Run serves until SIGINT or SIGTERM, then stops the scheduler and flushes the store.
func (a *App) Run() error {
	a.logger.Infof(providers.TypeApp, "Starting %s for app %s", a.conf.AppName, a.conf.AppID)
	a.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", a.conf.WebServer.Host, a.conf.WebServer.Port)
		if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		a.scheduler.Stop()
		a.session.Close()
		return fmt.Errorf("server error: %w", err)
	}

	a.scheduler.Stop()
	a.session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	if err := a.scheduler.Persist(); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
