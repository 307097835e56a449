// Command httpd runs the classification HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/papertrail/classifier/internal/bootstrap"
	"github.com/papertrail/classifier/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := bootstrap.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	comps, err := bootstrap.Build(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := comps.Close(); closeErr != nil {
			log.Error("close components", logger.Error(closeErr))
		}
	}()

	log.Info("starting classification service",
		logger.String("service", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port))

	return comps.NewHTTPServer().Run()
}
