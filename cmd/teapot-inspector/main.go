// Package main is the entry point for the ImGui patch inspector.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/bezier-teapot/internal/assets"
	"github.com/Faultbox/bezier-teapot/internal/config"
	"github.com/Faultbox/bezier-teapot/internal/inspector"
	"github.com/Faultbox/bezier-teapot/internal/logger"
)

var screenshotDir = flag.String("screenshots", filepath.Join(os.TempDir(), "bezier-teapot"), "Directory for preview screenshots")

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Bezier Patch Inspector ===")

	m := assets.NewManager()
	defer m.Close()

	in, err := inspector.New(cfg, m, inspector.Options{ScreenshotDir: *screenshotDir})
	if err != nil {
		logger.Error("inspector error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer in.Close()

	in.Run()
	logger.Info("inspector closed normally")
}
