// Package main is the entry point for the interactive patch viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/bezier-teapot/internal/assets"
	"github.com/Faultbox/bezier-teapot/internal/config"
	"github.com/Faultbox/bezier-teapot/internal/logger"
	"github.com/Faultbox/bezier-teapot/internal/viewer"
	"github.com/Faultbox/bezier-teapot/pkg/formats"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Bezier Teapot Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	m := assets.NewManager()
	defer m.Close()

	doc, err := m.Load(cfg.Tessellation.PatchFile)
	if err != nil {
		return err
	}
	grids, err := doc.Grids()
	if err != nil {
		logger.Warn("document has invalid surfaces", zap.Error(err))
	}
	logger.Info("patches loaded",
		zap.String("file", cfg.Tessellation.PatchFile),
		zap.Int("surfaces", len(doc.Surfaces)),
		zap.Int("valid", formats.ValidGrids(grids)),
	)

	v, err := viewer.New(cfg, grids)
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}
