package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"selectsearch/internal/config"
	"selectsearch/internal/domain"
	"selectsearch/internal/eventbus"
	"selectsearch/internal/source"
	"selectsearch/internal/ui"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "selectsearch",
		Short:        "Pick options from a static list, a searchable catalog or a remote endpoint",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the widget config file (.toml, .yaml)")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the sample config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(configPath)
			if err != nil {
				return err
			}
			if err := config.NewConfigService().SaveToPath(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return err
	}

	// Set up logging
	logFile, err := os.OpenFile("selectsearch.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	cfg, err := loadOrCreateConfig(config.NewConfigService(), path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	fetch, err := buildFetch(cfg)
	if err != nil {
		return fmt.Errorf("error configuring source: %w", err)
	}

	bus := eventbus.New()
	defer bus.Close()

	bus.Subscribe(eventbus.EventFetchCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchCompletedEvent); ok {
			log.Printf("Loaded %d option(s), page %d/%d", event.Count, event.Search.Page+1, event.Search.Pages)
		}
	})
	bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchFailedEvent); ok {
			log.Printf("Fetch %d failed: %v", event.Token, event.Err)
		}
	})

	var mu sync.Mutex
	var final []domain.Option
	onSelect := func(selected []domain.Option) {
		mu.Lock()
		final = selected
		mu.Unlock()
		log.Printf("Selected %v", selected)
	}

	options := cfg.Options
	if cfg.Source.Kind != config.SourceStatic {
		options = nil
	}

	uiModel, err := ui.NewModel(ui.Settings{
		Title:         cfg.Title,
		Options:       options,
		DefaultOption: cfg.DefaultOption,
		Fetch:         fetch,
		Search:        cfg.Search,
		Multiple:      cfg.Multiple,
		OnSelect:      onSelect,
		Bus:           bus,
		Height:        cfg.Height,
	})
	if err != nil {
		return fmt.Errorf("error creating widget: %w", err)
	}
	defer uiModel.Close()

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Handle termination signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")

	mu.Lock()
	defer mu.Unlock()
	for _, opt := range final {
		fmt.Printf("%s\t%s\n", opt.Value, opt.Name)
	}
	return nil
}

func resolveConfigPath(configPath string) (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error getting current directory: %w", err)
	}
	return filepath.Join(wd, ".selectsearch.toml"), nil
}

// loadOrCreateConfig loads the config at path or writes the sample config there
func loadOrCreateConfig(configSvc config.ConfigService, path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		cfg, err := configSvc.LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded config from %s", path)
		return cfg, nil
	}

	log.Printf("Creating new config at %s", path)
	cfg := config.DefaultConfig()
	if err := configSvc.SaveToPath(cfg, path); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg, nil
}

// buildFetch returns the fetch function for the configured source, or nil
// for static options
func buildFetch(cfg *config.Config) (domain.FetchFunc, error) {
	switch cfg.Source.Kind {
	case config.SourceCatalog:
		catalog := source.NewCatalog(cfg.Catalog, cfg.Source.PerPage).
			WithLatency(time.Duration(cfg.Source.LatencyMillis) * time.Millisecond)
		return catalog.Fetch, nil
	case config.SourceRemote:
		remote, err := source.NewRemote(cfg.Source.URL, nil, time.Duration(cfg.Source.TimeoutSeconds)*time.Second)
		if err != nil {
			return nil, err
		}
		return remote.Fetch, nil
	default:
		return nil, nil
	}
}
