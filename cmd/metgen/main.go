package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/wxforge/metgen/internal/airport"
	"github.com/wxforge/metgen/internal/api"
	"github.com/wxforge/metgen/internal/config"
	"github.com/wxforge/metgen/internal/noaa"
	"github.com/wxforge/metgen/internal/provider"
	"github.com/wxforge/metgen/internal/storage/sqlite"
	"github.com/wxforge/metgen/internal/synth"
	"github.com/wxforge/metgen/internal/ui"
	"github.com/wxforge/metgen/pkg/logger"
	"github.com/wxforge/metgen/pkg/metar"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", config.DefaultPath, "Path to configuration file")
	unitsFlag := flag.String("units", "", "Override units: metric or imperial")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of the terminal UI")
	officialFlag := flag.Bool("official", false, "Also fetch the published METAR for comparison")
	noHistoryFlag := flag.Bool("no-history", false, "Do not record generated reports")
	flagNoColor := flag.Bool("no-color", false, "Disable color output")
	flag.Parse()

	if *flagNoColor {
		color.NoColor = true // disables colorized output globally
	}

	cfg, firstRun, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if firstRun {
		fmt.Printf("Created default configuration at %s\n", *configPath)
	}

	if *unitsFlag != "" {
		cfg.Units = strings.ToLower(*unitsFlag)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Debug("Starting metgen",
		logger.String("version", Version),
		logger.String("config_path", *configPath))

	var store *sqlite.ReportStore
	if cfg.Storage.SQLitePath != "" && !*noHistoryFlag {
		store, err = sqlite.NewReportStore(cfg.Storage.SQLitePath, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening report history: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	weather := provider.NewClient(cfg.APIKey(), cfg.OneCallKey(), log)
	resolver := airport.NewResolver(cfg.APIKey(), log)
	official := noaa.NewClient(log)
	generator := synth.NewGenerator(weather, resolver, metar.NewEncoder(), store, metar.Units(cfg.Units), log)

	switch {
	case *serveFlag:
		runServer(cfg, generator, official, store, log)
	case len(flag.Args()) > 0:
		runOneShot(flag.Args()[0], *officialFlag, generator, official)
	default:
		menu := ui.NewMenu(generator, weather, resolver, official, store, cfg, os.Stdin, os.Stdout, log)
		if err := menu.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// runOneShot generates a single report for the station given on the command
// line and exits.
func runOneShot(station string, withOfficial bool, generator *synth.Generator, official *noaa.Client) {
	stationCode := strings.ToUpper(strings.TrimSpace(station))
	if len(stationCode) != 4 {
		fmt.Fprintln(os.Stderr, "Error: invalid station code: must be 4 characters")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := generator.ForICAO(ctx, stationCode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.Report)
	for _, alert := range result.Alerts {
		color.New(color.FgRed, color.Bold).Printf("ALERT: %s\n", alert)
	}

	if withOfficial {
		raw, err := official.FetchMETAR(ctx, stationCode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not fetch published METAR: %v\n", err)
			return
		}
		fmt.Println("\nPublished METAR:")
		fmt.Println(raw)
	}
}

// runServer starts the HTTP API and blocks until interrupted.
func runServer(cfg *config.Config, generator *synth.Generator, official *noaa.Client, store *sqlite.ReportStore, log *logger.Logger) {
	var history api.HistoryStore
	if store != nil {
		history = store
	}
	handler := api.NewHandler(generator, official, history, log)
	router := api.NewRouter(handler, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", logger.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during shutdown", logger.Error(err))
	}
}
