package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"screenvoyeur/internal/config"
	"screenvoyeur/internal/eventbus"
	"screenvoyeur/internal/replay"
	"screenvoyeur/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath  string
		replayPath  string
		debug       bool
		forceActive bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a TOML config file")
	flag.StringVar(&configPath, "c", "", "Path to a TOML config file (shorthand)")
	flag.StringVar(&replayPath, "replay", "", "Run a TOML scroll script headless and print transitions")
	flag.BoolVar(&debug, "debug", false, "Show the trigger band overlay")
	flag.BoolVar(&forceActive, "force-active", false, "Keep one section active at all times")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("screenvoyeur.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if debug {
		cfg.Debug = true
	}
	if forceActive {
		cfg.ForceActive = true
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	if replayPath != "" {
		if err := runReplay(cfg, replayPath, bus); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runUI(cfg, bus); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// loadConfig reads path when given, otherwise the user config with
// defaults for a missing file
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.NewConfigServiceAt(path).LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded config from %s", path)
		return cfg, nil
	}
	return config.NewConfigService().Load()
}

func runReplay(cfg *config.Config, path string, bus eventbus.EventBus) error {
	script, err := replay.LoadScript(path)
	if err != nil {
		return err
	}
	summary, err := replay.Run(cfg, script, bus, os.Stdout)
	if err != nil {
		return err
	}
	log.Printf("Replay finished: %d frames, %d enters, %d leaves", summary.Frames, summary.Enters, summary.Leaves)
	return nil
}

func runUI(cfg *config.Config, bus eventbus.EventBus) error {
	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)

	// Forward events to the event channel
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	// Subscribe before the model exists so its startup events are queued
	for _, t := range []eventbus.EventType{
		eventbus.EventWaypointAdded,
		eventbus.EventWaypointEntered,
		eventbus.EventWaypointLeft,
		eventbus.EventEngineStarted,
		eventbus.EventEngineStopped,
	} {
		unsubscribe := bus.Subscribe(t, forwardEvent)
		defer unsubscribe()
	}

	log.Printf("Creating UI model...")
	model, err := ui.NewModel(cfg, bus)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Start forwarding events to UI in background
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Printf("Starting UI...")
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// interrupted by a signal
		return nil
	}
	return err
}
