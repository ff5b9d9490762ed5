package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/szntools/szngo/internal/ctxlog"
	"github.com/szntools/szngo/internal/fsutil"
	"github.com/szntools/szngo/internal/injectfile"
	"github.com/szntools/szngo/szn"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Run parses every discovered topology file, applies injections and renders
// the results to the output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.FindTopologyFiles(a.config.Path, a.config.Excludes)
	if err != nil {
		return fmt.Errorf("failed to find topology files in %s: %w", a.config.Path, err)
	}
	if len(files) == 0 {
		a.logger.Warn("No topology files found in path.", "path", a.config.Path)
		return nil
	}
	a.logger.Debug("Topology files discovered.", "count", len(files))

	var injections *injectfile.Document
	if a.config.InjectionPath != "" {
		injections, err = injectfile.Load(a.config.InjectionPath)
		if err != nil {
			return fmt.Errorf("failed to load injection file %s: %w", a.config.InjectionPath, err)
		}
		a.logger.Debug("Injection file loaded.", "path", a.config.InjectionPath, "rules", len(injections.Rules))
	}

	for _, file := range files {
		if err := a.processFile(ctx, file, injections); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) processFile(ctx context.Context, path string, injections *injectfile.Document) error {
	a.logger.Info("Parsing topology.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	topo, err := szn.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if injections != nil {
		if err := injections.Apply(ctx, topo, path); err != nil {
			return fmt.Errorf("failed to apply injections to %s: %w", path, err)
		}
	}

	switch a.config.Format {
	case "json":
		return renderJSON(a.outW, topo)
	default:
		return renderText(a.outW, topo)
	}
}
