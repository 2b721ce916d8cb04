// screenbatch screens a bookings CSV offline and writes one decision per
// record as JSON lines. The analyzer is optional: with -no-ai every decision
// is rule-only.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"skyscreen/internal/airport"
	"skyscreen/internal/ingest"
	"skyscreen/internal/ollama"
	"skyscreen/internal/platform/config"
	"skyscreen/internal/platform/logger"
	"skyscreen/internal/screening"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	input := flag.String("input", "", "bookings CSV path (required)")
	parallel := flag.Int("parallel", 0, "max concurrent analyses (default from config)")
	noAI := flag.Bool("no-ai", false, "skip the AI analyzer, rule-only decisions")
	flag.Parse()

	log := logger.New("info")
	if *input == "" {
		log.Error("missing -input")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	airports, err := airport.LoadCSV(cfg.Airport.CSVPath, cfg.Airport.Column)
	if err != nil {
		log.Warn("airport reference load failed, using empty set", "error", err)
	}

	var analyzer screening.Analyzer
	if !*noAI {
		analyzer = ollama.New(ollama.Config{
			BaseURL:        cfg.Ollama.BaseURL,
			Model:          cfg.Ollama.Model,
			ProbeTimeout:   cfg.Ollama.ProbeTimeout,
			AnalyzeTimeout: cfg.Ollama.AnalyzeTimeout,
		}, log)
	}
	service := screening.NewService(analyzer, airports, log, nil)

	records, err := ingest.LoadRecords(*input)
	if err != nil {
		log.Error("load bookings", "error", err)
		os.Exit(1)
	}

	parallelism := cfg.Batch.Parallelism
	if *parallel > 0 {
		parallelism = *parallel
	}

	decisions := service.AnalyzeBatch(context.Background(), records, parallelism)

	enc := json.NewEncoder(os.Stdout)
	anomalies := 0
	for _, d := range decisions {
		if d.OverallAnomaly {
			anomalies++
		}
		if err := enc.Encode(d); err != nil {
			log.Error("write decision", "error", err)
			os.Exit(1)
		}
	}
	log.Info("batch complete", "records", len(decisions), "anomalies", anomalies)
}
