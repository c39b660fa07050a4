package main

import (
	"context"

	"go.uber.org/fx"

	"github.com/wfunc/arena/coach"
	"github.com/wfunc/arena/config"
	"github.com/wfunc/arena/logger"
	"github.com/wfunc/arena/monitor"
	"github.com/wfunc/arena/server"
	"github.com/wfunc/arena/timer"
)

func provideConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level)
	return cfg, nil
}

func provideMonitor(cfg *config.Config) *monitor.Monitor {
	return monitor.NewMonitor(cfg.Metrics.Namespace)
}

func provideScheduler() *timer.Scheduler {
	return timer.NewScheduler(nil)
}

func provideStrategist(cfg *config.Config) coach.Strategist {
	return coach.NewGeminiClient(cfg.Coach.Endpoint, cfg.Coach.Model, cfg.Coach.APIKey, cfg.Coach.Timeout)
}

var module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideMonitor),
	fx.Provide(provideScheduler),
	fx.Provide(provideStrategist),
	fx.Provide(coach.NewCoach),
	fx.Provide(server.NewArenaServer),
)

func main() {
	fx.New(
		module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(lc fx.Lifecycle, cfg *config.Config, arena *server.ArenaServer, scheduler *timer.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := arena.Start(); err != nil {
					logger.Log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Log.Info("Shutting down arena server")
			defer logger.Sync()
			defer scheduler.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := arena.Shutdown(shutdownCtx); err != nil {
				logger.Log.Errorf("Server shutdown failed: %v", err)
				return err
			}
			logger.Log.Info("Server stopped gracefully")
			return nil
		},
	})
}
