package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"

	"skyscreen/internal/airport"
	"skyscreen/internal/ollama"
	"skyscreen/internal/platform/config"
	"skyscreen/internal/platform/httpserver"
	"skyscreen/internal/platform/logger"
	"skyscreen/internal/screening"
	screeninghandler "skyscreen/internal/screening/handler"
	"skyscreen/internal/screening/metrics"
	httptransport "skyscreen/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New("info").Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	// The reference set is loaded once and injected everywhere; a missing
	// file degrades to an empty (maximally strict) set instead of crashing.
	airports, err := airport.LoadCSV(cfg.Airport.CSVPath, cfg.Airport.Column)
	if err != nil {
		log.Warn("airport reference load failed, using empty set", "error", err)
	}
	log.Info("airport reference loaded", "codes", airports.Len(), "path", cfg.Airport.CSVPath)

	analyzer := ollama.New(ollama.Config{
		BaseURL:        cfg.Ollama.BaseURL,
		Model:          cfg.Ollama.Model,
		ProbeTimeout:   cfg.Ollama.ProbeTimeout,
		AnalyzeTimeout: cfg.Ollama.AnalyzeTimeout,
	}, log)

	service := screening.NewService(analyzer, airports, log, metrics.New())
	handler := screeninghandler.New(service, screeninghandler.AnalyzerInfo{
		Endpoint: analyzer.BaseURL(),
		Model:    analyzer.Model(),
	}, cfg.Batch.Parallelism, log)

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	log.Info("starting skyscreen", "addr", cfg.Addr, "ollama", analyzer.BaseURL())

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	if err := httpserver.Shutdown(srv); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
