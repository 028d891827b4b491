package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"

	"github.com/ticketdup/ticketdup/internal/config"
	"github.com/ticketdup/ticketdup/internal/database"
	"github.com/ticketdup/ticketdup/internal/detect"
	"github.com/ticketdup/ticketdup/internal/detect/similarity"
	"github.com/ticketdup/ticketdup/internal/ingest"
	"github.com/ticketdup/ticketdup/internal/notify"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it (this is fine if using environment variables): %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// A positional argument overrides the configured input path.
	if len(os.Args) > 1 {
		cfg.InputPath = os.Args[1]
	}
	if cfg.InputPath == "" {
		log.Fatalf("No input file: set input_path in %s, TICKETDUP_INPUT, or pass a path argument", configPath)
	}

	engine, ok := similarity.Select(cfg.SimilarityEngine)
	if !ok {
		log.Printf("Warning: similarity engine %q unavailable, falling back to %s", cfg.SimilarityEngine, engine.Name())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("Analyzing %s (engine=%s, threshold=%d, windows=%v)",
		cfg.InputPath, engine.Name(), cfg.SimilarityThreshold, cfg.WindowHours)

	res, err := detect.Run(ctx, detect.RunOptions{
		InputPath: cfg.InputPath,
		Ingest: ingest.Options{
			AutoRepair:     cfg.AutoRepair,
			CreateBackup:   cfg.CreateBackup,
			TargetEncoding: cfg.TargetEncoding,
		},
		ExcludeResolved: cfg.ExcludeResolved,
		Windows:         cfg.WindowHours,
		Threshold:       cfg.SimilarityThreshold,
		Engine:          engine,
		EngineFallback:  !ok,
	})
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if res.Repair != nil && res.Repair.Changed() {
		log.Printf("Repaired input: %d rows removed, %d rows fixed, encoding %s, backup %s",
			res.Repair.RowsRemoved, res.Repair.RowsFixed, res.Repair.EncodingDetected, res.Repair.BackupPath)
	}
	log.Printf("Run %s: %d tickets across %d sites in %s", res.RunID, res.TicketCount, res.SiteCount, res.Duration)

	// Persistence and notification failures are logged, never fatal: the
	// analysis already succeeded and its output goes to stdout regardless.
	if cfg.DatabaseURL != "" {
		if err := persistRun(cfg, res); err != nil {
			log.Printf("Warning: failed to persist run: %v", err)
		}
	}
	if notifier := notify.New(cfg.SlackBotToken, cfg.SlackChannel); notifier != nil {
		if err := notifier.PostSummary(res); err != nil {
			log.Printf("Warning: failed to post Slack summary: %v", err)
		}
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}

func persistRun(cfg *config.Config, res *detect.RunResult) error {
	db, err := database.Connect(cfg.DatabaseURL, logger.Warn)
	if err != nil {
		return err
	}
	defer database.Close(db)

	store := database.NewStore(db)
	run := database.BuildRunRecord(res, cfg.InputPath, cfg.SimilarityThreshold)
	if err := store.SaveRun(run); err != nil {
		return err
	}
	log.Printf("Saved run %s (id=%d)", run.RunID, run.ID)
	return nil
}
