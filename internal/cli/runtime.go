package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tatianab/aetheria/internal/config"
	"github.com/tatianab/aetheria/internal/engine"
	"github.com/tatianab/aetheria/internal/game"
	"github.com/tatianab/aetheria/internal/pkg/clock"
	"github.com/tatianab/aetheria/internal/storage"
)

// runtime holds everything a command may need. Close releases it.
type runtime struct {
	cfg     *config.Config
	store   storage.Store
	engine  *engine.Engine
	session *game.Session
	logFile *os.File
}

// setup loads config, installs the file logger and opens the store.
func setup(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}
	if err := rt.initLogging(); err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open save store: %w", err)
	}
	rt.store = store
	return rt, nil
}

// setupSession additionally connects to Gemini and builds the game session.
func setupSession(ctx context.Context) (*runtime, error) {
	rt, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	if err := rt.cfg.RequireAPIKey(); err != nil {
		rt.Close()
		return nil, err
	}

	eng, err := engine.NewEngine(ctx, rt.cfg.GeminiAPIKey, rt.cfg.EngineOptions())
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}
	rt.engine = eng

	session, err := game.NewSession(&game.Config{
		DM:    eng,
		Store: rt.store,
		Clock: clock.New(),
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.session = session
	return rt, nil
}

// initLogging sends slog output to the log file; the TUI owns the terminal.
func (rt *runtime) initLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(rt.cfg.LogLevel))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", rt.cfg.LogLevel, err)
	}

	f, err := os.OpenFile(rt.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	rt.logFile = f
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return nil
}

func (rt *runtime) Close() {
	if rt.engine != nil {
		rt.engine.Close()
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}
	if rt.logFile != nil {
		rt.logFile.Close()
	}
}
