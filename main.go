package main

import (
	"log/slog"

	"github.com/soocke/vision-tester-go/app"
	"github.com/soocke/vision-tester-go/config"
)

func main() {
	cfgPath := config.PathFromEnv("vision-tester.json")
	cfg, err := config.Load(cfgPath)

	cfg.Debug = config.DebugFromEnv(cfg.Debug)
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Error("config load", "path", cfgPath, "error", err)
	}

	application := app.NewApp("Vision Tester", 800, 600, cfg, cfgPath, logger)
	application.Start()
}
