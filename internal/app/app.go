// Package app wires the scenario runner together: logger, session, command
// layer, and the scenario loader.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/scenemock/internal/cmds"
	"github.com/vk/scenemock/internal/ctxlog"
	"github.com/vk/scenemock/internal/scenario"
	"github.com/vk/scenemock/internal/session"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cmds   *cmds.Cmds
}

// NewApp constructs the application with its own isolated logger and a
// fresh scene session.
func NewApp(outW io.Writer, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		cmds:   cmds.New(session.New(logger)),
	}
}

// Cmds returns the application's command layer. This is primarily for
// testing.
func (a *App) Cmds() *cmds.Cmds {
	return a.cmds
}

// Run loads the scenario from the configured path and applies it to the
// session.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	scn, err := scenario.Load(ctx, cfg.ScenePath)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	a.logger.Info("Scenario loaded.", "path", cfg.ScenePath, "steps", len(scn.Steps))

	return scenario.NewRunner(a.cmds, a.outW).Run(ctx, scn)
}
