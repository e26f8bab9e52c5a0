package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/soar/inputmap/internal/config"
	"github.com/soar/inputmap/internal/device"
	"github.com/soar/inputmap/internal/hub"
	"github.com/soar/inputmap/internal/scan"
	"github.com/soar/inputmap/internal/server"
	"github.com/soar/inputmap/internal/storage"
	"github.com/soar/inputmap/internal/transform"
	"github.com/soar/inputmap/internal/tray"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	store := storage.NewFileStore(logger)
	registry := device.NewRegistry()
	transformer := transform.New(logger)
	manager := storage.NewManager(logger, store, registry, transformer, storage.Options{
		DataDir:          cfg.DataDir,
		FixTriggers:      cfg.FixTriggers,
		RetroArchConfigs: cfg.RetroArchConfigs,
		RetroArchDir:     cfg.RetroArchDir,
	})
	if err := manager.RestoreRegistry(); err != nil {
		logger.Warn("restoring device registry failed", zap.Error(err))
	}

	// Enumerate joysticks before serving so the registry and the trigger
	// detectors are seeded. Must happen on the main goroutine, SDL owns the
	// thread during the scan.
	if cfg.ScanDevices {
		results, err := scan.Devices(logger)
		if err != nil {
			logger.Warn("joystick enumeration failed", zap.Error(err))
		}
		for _, res := range results {
			dev := manager.RegisterDevice(res.Identity)
			for axisIndex, value := range res.AxisValues {
				manager.FeedAxis(dev, axisIndex, value)
			}
			manager.ButtonMaps(dev)
		}
	}

	// Create and start hub
	h := hub.NewHub(logger)
	go h.Run()

	// Create broadcaster
	broadcaster := hub.NewBroadcaster(logger, h, manager.Events(), registry)
	go broadcaster.Run()

	// Create and start HTTP server
	srv := server.New(logger, h, broadcaster, manager, registry, frontendFS(), cfg.Listen)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := displayURL(cfg.Listen)
	logger.Info("inputmap started", zap.String("url", url))

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	if cfg.Tray {
		go func() {
			t := tray.New(logger, url, func() {
				close(shutdownRequested)
			})
			t.Run()
		}()
	}

	// Wait for shutdown signal, tray request, or server error
	select {
	case <-sigCh:
		logger.Info("shutting down")
	case <-shutdownRequested:
		logger.Info("shutdown requested from tray")
	case err := <-serverErrCh:
		logger.Error("http server error", zap.Error(err))
	}

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	if err := manager.SaveRegistry(); err != nil {
		logger.Error("saving device registry failed", zap.Error(err))
	}

	logger.Info("inputmap stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return logCfg.Build()
}

// displayURL turns a listen address into something a browser accepts.
func displayURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://" + listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
