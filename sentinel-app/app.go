package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vaultguard/sentinel/pkg/metrics"
	"github.com/vaultguard/sentinel/sentinel-app/config"
	apisrv "github.com/vaultguard/sentinel/server/api"
	apimw "github.com/vaultguard/sentinel/server/api/middleware"
	"github.com/vaultguard/sentinel/x/account"
	accounthttp "github.com/vaultguard/sentinel/x/account/http"
	"github.com/vaultguard/sentinel/x/beneficiary"
	beneficiaryhttp "github.com/vaultguard/sentinel/x/beneficiary/http"
	"github.com/vaultguard/sentinel/x/heartbeat"
	hourrunner "github.com/vaultguard/sentinel/x/hour-runner"
	"github.com/vaultguard/sentinel/x/notify"
	"github.com/vaultguard/sentinel/x/sweeper"
	"github.com/vaultguard/sentinel/x/timer"
	timerhttp "github.com/vaultguard/sentinel/x/timer/http"
	"github.com/vaultguard/sentinel/x/vault"
	vaulthttp "github.com/vaultguard/sentinel/x/vault/http"
)

// App wires the stores, services, sweep runner, and API server together.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	sweeper *sweeper.Sweeper
	runner  hourrunner.Runner

	apiServer *apisrv.Server

	statsMu     sync.Mutex
	lastSweep   sweeper.Summary
	lastSweepAt time.Time
	sweepRuns   uint64

	cancel context.CancelFunc
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	app := &App{
		cfg: cfg,
		log: log.With().Str("component", "app").Logger(),
	}

	if err := app.initialize(log); err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	return app, nil
}

// initialize sets up the stores, services, sweeper, runner, and API server.
func (a *App) initialize(log zerolog.Logger) error {
	timers := timer.NewMemory(log)
	vaults := vault.NewMemory(log)
	beneficiaries := beneficiary.NewMemory(log)

	accounts := account.NewService(timers, vaults, beneficiaries, log)
	heartbeats := heartbeat.NewService(timers, log)
	notifier := notify.NewLogNotifier(log)

	swp, err := sweeper.New(sweeper.Config{
		Logger:          log,
		Timers:          timers,
		Beneficiaries:   beneficiaries,
		Vaults:          vaults,
		Notifier:        notifier,
		DispatchTimeout: a.cfg.Sweep.DispatchTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create sweeper: %w", err)
	}
	a.sweeper = swp

	runnerCfg := hourrunner.DefaultConfig(log)
	runnerCfg.Interval = a.cfg.Sweep.Interval
	runnerCfg.Handler = a.runSweep
	a.runner = hourrunner.NewLocalRunner(runnerCfg)

	// API server (shared HTTP surface)
	apiCfg := apisrv.Config{
		ListenAddr:        a.cfg.API.ListenAddr,
		ReadHeaderTimeout: a.cfg.API.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.API.ReadTimeout,
		WriteTimeout:      a.cfg.API.WriteTimeout,
		IdleTimeout:       a.cfg.API.IdleTimeout,
		MaxHeaderBytes:    a.cfg.API.MaxHeaderBytes,
	}
	s := apisrv.NewServer(apiCfg, log)
	s.Use(apimw.Recover(log))
	s.Use(apimw.RequestID())
	s.Use(apimw.Logger(log))

	// Health/stats
	s.Router.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)
	s.Router.HandleFunc("/stats", a.handleStats).Methods(http.MethodGet)

	// Metrics
	if a.cfg.Metrics.Enabled {
		s.Router.Handle(a.cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
	}

	// Domain API
	accounthttp.NewHandler(accounts, log).RegisterMux(s.Router)
	timerhttp.NewHandler(timers, heartbeats, log).RegisterMux(s.Router)
	vaulthttp.NewHandler(vaults, log).RegisterMux(s.Router)
	beneficiaryhttp.NewHandler(beneficiaries, log).RegisterMux(s.Router)

	a.apiServer = s

	return nil
}

// runSweep is the runner callback: one full sweep pass per boundary.
func (a *App) runSweep(ctx context.Context, info hourrunner.RunInfo) error {
	sum := a.sweeper.RunPass(ctx)

	a.statsMu.Lock()
	a.lastSweep = sum
	a.lastSweepAt = info.ScheduledAt
	a.sweepRuns++
	a.statsMu.Unlock()

	return nil
}

// Run starts the application and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if err := a.runner.Start(runCtx); err != nil {
		return fmt.Errorf("failed to start sweep runner: %w", err)
	}

	go func() {
		if err := a.apiServer.Start(runCtx); err != nil {
			a.log.Error().Err(err).Msg("API server error")
		}
	}()

	return a.runWithGracefulShutdown(runCtx)
}

// runWithGracefulShutdown handles shutdown signals.
func (a *App) runWithGracefulShutdown(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info().Msg("Sentinel started successfully")

	select {
	case <-ctx.Done():
		a.log.Info().Msg("Context canceled, initiating shutdown")
	case sig := <-sigCh:
		a.log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	}

	if a.cancel != nil {
		a.cancel()
	}

	return a.shutdown()
}

// shutdown stops the runner, letting an in-flight sweep candidate finish.
func (a *App) shutdown() error {
	a.log.Info().Msg("Initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.runner.Stop(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("Sweep runner shutdown error")
		return err
	}

	a.log.Info().Msg("Graceful shutdown complete")
	return nil
}

// handleHealth responds to health check requests.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a.GetStats())
}

// GetStats returns application statistics.
func (a *App) GetStats() map[string]interface{} {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()

	stats := map[string]interface{}{
		"app_version":    Version,
		"app_build_time": BuildTime,
		"app_git_commit": GitCommit,
		"sweep_runs":     a.sweepRuns,
		"last_sweep":     a.lastSweep,
	}
	if !a.lastSweepAt.IsZero() {
		stats["last_sweep_at"] = a.lastSweepAt.UTC().Format(time.RFC3339)
	}
	if a.runner != nil {
		stats["next_sweep_at"] = a.runner.NextRun(time.Now()).UTC().Format(time.RFC3339)
	}
	return stats
}
