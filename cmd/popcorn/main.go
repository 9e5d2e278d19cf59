package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"popcorn/internal/logger"
	"popcorn/internal/metrics"
	"popcorn/internal/services/config"
	"popcorn/internal/services/omdb"
	"popcorn/internal/ui"
	"popcorn/internal/watched"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "popcorn: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := config.Flags()
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.NewViperConfigService(fs).Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFile, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if srv := metrics.Serve(cfg.MetricsAddr); srv != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	movies, err := omdb.NewCachedClient(omdb.NewClient(cfg), cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("creating movie cache: %w", err)
	}

	store := watched.New()
	if cfg.Demo {
		store = watched.New(watched.SampleEntries()...)
	}

	p := tea.NewProgram(ui.InitialModel(movies, store, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Error().Err(err).Msg("Program exited with error")
		return err
	}
	logger.Log.Info().Int("watched", store.Len()).Msg("Bye")
	return nil
}
