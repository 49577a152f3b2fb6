package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"qam-observer/internal/app"
	"qam-observer/internal/ipc"
	"qam-observer/internal/observer"
	"qam-observer/internal/wm"
	"qam-observer/pkg/config"
	"qam-observer/pkg/global"
	"qam-observer/pkg/logger"
	"qam-observer/pkg/notify"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	status := flag.Bool("status", false, "query a running daemon and print the focus state")
	panel := flag.Bool("panel", false, "show the status panel window")
	flag.Parse()

	// Setup logging level
	logLevel := zerolog.InfoLevel
	if *debug {
		logLevel = zerolog.DebugLevel
	}

	// Initialize logger first for early logging
	log, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(logLevel),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting QAM Observer",
		"version", "1.0.0",
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", *debug)

	// Load configuration
	cfg, err := config.FindConfig(*configPath, log)
	if err != nil {
		log.Error("Failed to load configuration", err,
			"provided_path", *configPath)
		os.Exit(1)
	}

	// Initialize globals
	global.InitGlobals(cfg, log)

	// Handle status query
	if *status {
		resp, err := ipc.SendCommand("status")
		if err != nil {
			log.Error("Failed to query daemon, is it running?", err)
			os.Exit(1)
		}
		fmt.Println(resp.Message)
		if resp.Status != "ok" {
			os.Exit(1)
		}
		return
	}

	if err := runDaemon(cfg, log, *configPath, *panel); err != nil {
		log.Error("Daemon exited with error", err)
		os.Exit(1)
	}
}

func runDaemon(cfg *config.Config, log *logger.Logger, configPath string, showPanel bool) error {
	notifier := global.GetNotifier()

	manager, err := wm.NewManager(log)
	if err != nil {
		notifier.Show("Could not initialize window manager support", notify.Error)
		return fmt.Errorf("window manager init: %w", err)
	}

	bridge := wm.NewBridge(manager, cfg.GetPollInterval(), log)
	bridge.Bind(cfg.GetNodeID(), cfg.GetWindowClasses(), cfg.GetWindowTitles())
	bridge.Start()
	defer bridge.Stop()

	obs := observer.New(bridge, cfg.GetNodeID(), log)

	var statusPanel *app.StatusPanel
	if showPanel {
		statusPanel = app.NewStatusPanel(obs, log)
	}

	obs.OnChange(func(visible bool) {
		log.Debug("Visibility changed", "visible", visible)
		if statusPanel != nil {
			statusPanel.SetState(visible)
		}
	})

	obs.Attach()
	defer obs.Detach()
	if !obs.Resolved() {
		notifier.Show("Quick Access window not found yet, waiting", notify.Info)
	}

	// An attachment resolves exactly once. Until one succeeds the
	// daemon re-mounts the observer on a slow cadence; once resolved
	// it never re-resolves on its own.
	stopRemount := make(chan struct{})
	go remountLoop(obs, log, stopRemount)
	defer close(stopRemount)

	// Config hot reload
	cfgPath, err := config.Path(configPath)
	if err == nil {
		stopWatch, werr := config.Watch(cfgPath, log, func(fresh *config.Config) {
			global.ReplaceConfig(fresh)
			bridge.Bind(fresh.GetNodeID(), fresh.GetWindowClasses(), fresh.GetWindowTitles())
			obs.Detach()
			obs.Attach()
			log.Info("Applied reloaded configuration", "node_id", fresh.GetNodeID())
		})
		if werr != nil {
			log.Warn("Config watching unavailable", "error", werr)
		} else {
			defer stopWatch()
		}
	}

	go ipc.StartSocketServer(obs)

	if statusPanel != nil {
		// Blocks on the main goroutine until the window closes.
		return statusPanel.Run()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Shutting down", "signal", sig.String())
	return nil
}

// remountLoop re-mounts the observer until a window resolves.
func remountLoop(obs *observer.Visibility, log *logger.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if obs.Resolved() {
				continue
			}
			obs.Detach()
			obs.Attach()
			if obs.Resolved() {
				log.Info("Panel window resolved")
			}
		}
	}
}
