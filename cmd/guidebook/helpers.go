package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/eringen/guidebook"
	"github.com/eringen/guidebook/logging"
)

// loadConfig reads --config and builds the logger it describes.
func loadConfig() (guidebook.SiteConfig, *slog.Logger, error) {
	cfg, err := guidebook.LoadConfig(cfgFile)
	if err != nil {
		return cfg, nil, err
	}
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	level := new(slog.LevelVar)
	level.Set(lvl)
	return cfg, logging.New(logging.Options{Level: level, Journal: cfg.Journal}), nil
}

func loadCatalog(cfg guidebook.SiteConfig) (*guidebook.Catalog, error) {
	c := guidebook.NewCatalog(os.DirFS(cfg.GuidesDir), cfg.GuidesGlob)
	if err := c.Reload(); err != nil {
		return nil, fmt.Errorf("loading guides from %s: %w", cfg.GuidesDir, err)
	}
	return c, nil
}
