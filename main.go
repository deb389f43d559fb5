package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"dorkdeck/internal/assembler"
	"dorkdeck/internal/catalog"
	"dorkdeck/internal/config"
	"dorkdeck/internal/eventbus"
	"dorkdeck/internal/ui"
)

func main() {
	// Parse command line arguments
	var catalogPath string
	flag.StringVar(&catalogPath, "catalog", "", "Path to the dork catalog file")
	flag.StringVar(&catalogPath, "c", "", "Path to the dork catalog file (shorthand)")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("dorkdeck.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	// Load configuration; the flag wins over config and environment
	configSvc := config.NewConfigService()
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}

	// Load the catalog, seeding defaults on first run
	repo := catalog.NewRepository(cfg.CatalogPath, bus)
	if err := repo.Load(); err != nil {
		fmt.Printf("Error loading catalog %s: %v\n", cfg.CatalogPath, err)
		os.Exit(1)
	}
	log.Printf("Loaded catalog from %s (%d categories)", cfg.CatalogPath, len(repo.Categories()))

	// Assembler service subscribes to request events on the bus
	svc := assembler.NewService(bus)

	// Create UI model and program
	uiModel := ui.NewModel(cfg, configSvc, repo, svc, bus)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward outcome events from the bus into the UI loop
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	var unsubscribes []func()
	for _, et := range []eventbus.EventType{
		eventbus.EventQueryUpdated,
		eventbus.EventDuplicateFragment,
		eventbus.EventFragmentNotFound,
		eventbus.EventError,
	} {
		unsubscribes = append(unsubscribes, bus.Subscribe(et, forward))
	}

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Quit cleanly on interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Detach the forwarders before closing the channel they feed
	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
	close(eventChan)
}
