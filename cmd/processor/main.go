// Command processor classifies every supported document in a folder,
// writes the results to CSV, and optionally files the documents into
// per-category folders.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/papertrail/classifier/internal/bootstrap"
	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/export"
	"github.com/papertrail/classifier/internal/logger"
	"github.com/papertrail/classifier/internal/logging"
	"github.com/papertrail/classifier/internal/parser"
	"github.com/papertrail/classifier/internal/processor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		inputDir = flag.String("input", "", "folder of documents to classify (required)")
		output   = flag.String("output", "", "CSV output path (default from config)")
		organize = flag.Bool("organize", false, "move classified files into per-category folders")
		destDir  = flag.String("dest", "", "destination root for organized files (default: input folder)")
		noStore  = flag.Bool("no-store", false, "skip writing results to the history database")
	)
	flag.Parse()

	if *inputDir == "" {
		flag.Usage()
		return fmt.Errorf("input folder is required")
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *output != "" {
		cfg.Export.CSVPath = *output
	}
	if *organize {
		cfg.Export.Organize = true
	}

	log, err := bootstrap.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := bootstrap.Build(ctx, cfg, log, !*noStore)
	if err != nil {
		return err
	}
	defer func() { _ = comps.Close() }()

	docs, err := parser.New(log).ParseDir(*inputDir)
	if err != nil {
		return fmt.Errorf("parse folder: %w", err)
	}
	if len(docs) == 0 {
		log.Warn("no supported documents found", logger.String("folder", *inputDir))
		return nil
	}
	log.Info("folder parsed",
		logger.String("folder", *inputDir),
		logger.Int("documents", len(docs)))

	var store processor.RecordStore
	if comps.History != nil {
		store = comps.History
	}
	rlp := processor.NewRateLimitedProcessor(comps.Batch, cfg.Service.DBWriteRPS, logging.NewKV(log))
	items, err := rlp.ProcessAndStore(ctx, docs, store)
	if err != nil {
		return fmt.Errorf("classify folder: %w", err)
	}

	results := make([]*domain.ClassificationResult, len(items))
	byCategory := map[domain.Category]int{}
	for i, item := range items {
		results[i] = item.Result
		byCategory[item.Result.Category]++
	}

	exporter := export.NewCSVExporter(log, comps.Telemetry)
	if err := exporter.Write(cfg.Export.CSVPath, results); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if cfg.Export.Organize {
		dest := *destDir
		if dest == "" {
			dest = *inputDir
		}
		organizer := export.NewOrganizer(cfg.Export.MinOrganizeConfidence, log, comps.Telemetry)
		moved, orgErr := organizer.Organize(dest, items)
		if orgErr != nil {
			return fmt.Errorf("organize files: %w", orgErr)
		}
		log.Info("files organized",
			logger.String("dest", dest),
			logger.Int("moved", moved))
	}

	for _, cat := range domain.Categories() {
		if n := byCategory[cat]; n > 0 {
			log.Info("category total",
				logger.String("category", string(cat)),
				logger.Int("documents", n))
		}
	}
	log.Info("run complete",
		logger.Int("documents", len(results)),
		logger.String("output", cfg.Export.CSVPath))
	return nil
}
