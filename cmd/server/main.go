package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"pinboard/internal/catalog"
	"pinboard/internal/config"
	"pinboard/internal/handler"
	"pinboard/internal/hub"
	"pinboard/internal/loader"
	"pinboard/internal/mqtt"
	"pinboard/internal/repository/sqlite"
	"pinboard/internal/service"
	"pinboard/internal/simulation"
	"pinboard/internal/store"
	"pinboard/internal/watcher"
)

func main() {
	// Command line flags. Empty values leave the config file in charge.
	configPath := flag.String("config", "", "Config file path (default: search $PINBOARD_CONFIG, ./pinboard.yaml, XDG)")
	addr := flag.String("addr", "", "HTTP listen address (default :3000)")
	dbPath := flag.String("db", "", "SQLite database path (default ./pinboard.db)")
	circuitPath := flag.String("circuit", "", "Circuit file to load and watch for changes")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	broker := flag.String("mqtt", "", "MQTT broker URL for simulation frames, e.g. mqtt://localhost:1883")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	cfg, foundPath, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", "path", foundPath, "err", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *circuitPath != "" {
		cfg.Watch.CircuitPath = *circuitPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *broker != "" {
		cfg.MQTT.Broker = *broker
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Fatal("invalid log level", "level", cfg.Log.Level)
	}
	logger.SetLevel(level)

	if foundPath != "" {
		logger.Info("config loaded", "path", foundPath)
	}
	logger.Info("starting pinboard server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite repository
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open database", "path", cfg.Database.Path, "err", err)
	}
	defer repo.Close()
	logger.Info("database opened", "path", cfg.Database.Path)

	// Initialize event bus and SSE hub
	eventBus := service.NewEventBus()
	sseHub := hub.New(logger.WithPrefix("sse"))
	go sseHub.Run(ctx.Done())

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventChan:
				sseHub.Broadcast(event)
			}
		}
	}()

	// Initialize services
	cat := catalog.Default()
	st := store.New(cat)
	circuitSvc := service.NewCircuitService(st, cat, repo, eventBus, logger)
	simSvc := service.NewSimulationService(ctx, st, eventBus, logger.WithPrefix("sim"),
		simulation.WithInterval(cfg.Simulation.Interval.Duration()))
	circuitSvc.SetPinValueSource(simSvc)

	if n, err := circuitSvc.RestoreWorkspace(ctx); err != nil {
		logger.Warn("failed to restore workspace", "err", err)
	} else if n > 0 {
		logger.Info("workspace restored", "components", n)
	}

	if path := cfg.Watch.CircuitPath; path != "" {
		reload := func(path string) {
			circuit, err := loader.LoadFile(path)
			if err != nil {
				logger.Error("failed to load circuit", "path", path, "err", err)
				return
			}
			kept := circuitSvc.ReplaceCircuit(circuit)
			logger.Info("circuit loaded", "path", path, "components", kept)
		}
		reload(path)

		w := watcher.New(path, reload).
			WithDebounce(cfg.Watch.Debounce.Duration()).
			WithLogger(logger.WithPrefix("watch"))
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("circuit watcher stopped", "err", err)
			}
		}()
	}

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled() {
		mqttLogger := logger.WithPrefix("mqtt")
		mqttClient, err = mqtt.NewClient(cfg.MQTT.Broker, cfg.MQTT.ClientID, mqttLogger)
		if err != nil {
			logger.Fatal("invalid mqtt config", "err", err)
		}
		if err := mqttClient.Connect(ctx); err != nil {
			logger.Fatal("failed to start mqtt client", "err", err)
		}
		forwarder := mqtt.NewForwarder(cfg.MQTT.Topic, mqttClient, eventBus, mqttLogger)
		go forwarder.Run(ctx)
		logger.Info("publishing simulation to mqtt", "broker", cfg.MQTT.Broker, "topic", cfg.MQTT.Topic)
	}

	// Initialize HTTP handlers
	circuitHandler := handler.NewCircuitHandler(circuitSvc, logger)
	simHandler := handler.NewSimulationHandler(simSvc, logger)

	mux := http.NewServeMux()
	handler.Routes(mux, circuitHandler, simHandler, sseHub)

	finalHandler := handler.Chain(mux,
		handler.Recover(logger),
		handler.CORS,
		handler.Logger(logger.WithPrefix("http")),
	)

	// No WriteTimeout: SSE streams stay open until shutdown
	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     finalHandler,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		logger.Error("server error", "err", err)
		stop()
	}

	logger.Info("shutting down server")

	simSvc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := circuitSvc.SaveWorkspace(shutdownCtx); err != nil {
		logger.Error("failed to save workspace", "err", err)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}

	if mqttClient != nil {
		if err := mqttClient.Disconnect(shutdownCtx); err != nil {
			logger.Warn("mqtt disconnect error", "err", err)
		}
	}

	logger.Info("server stopped")
}

// loadConfig reads the config at path, or searches the default locations
// when path is empty
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
