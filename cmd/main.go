package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/subwaylabs/traintrack"
	"github.com/subwaylabs/traintrack/config"
	"github.com/subwaylabs/traintrack/parse"
	"github.com/subwaylabs/traintrack/storage"
)

var rootCmd = &cobra.Command{
	Use:          "traintrack",
	Short:        "Transit delay reconciliation tool",
	Long:         "Ingests realtime transit feeds and reconciles them against the static schedule",
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "path to config file")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Everything a subcommand needs, loaded per the config file.
type pipeline struct {
	cfg      *config.Config
	static   *traintrack.Static
	store    storage.Store
	location *time.Location
}

func loadPipeline() (*pipeline, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	tables, err := parse.LoadStatic(cfg.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("loading static schedule: %w", err)
	}

	static, err := traintrack.NewStatic(tables)
	if err != nil {
		return nil, err
	}

	var store storage.Store
	if cfg.PostgresURL != "" {
		store, err = storage.NewPSQLStore(cfg.PostgresURL, false)
	} else {
		store, err = storage.NewSQLiteStore(cfg.DatabasePath)
	}
	if err != nil {
		return nil, fmt.Errorf("opening observation store: %w", err)
	}

	return &pipeline{
		cfg:      cfg,
		static:   static,
		store:    store,
		location: location,
	}, nil
}
