// Muscleview opens the muscle-selection viewer in a window. Click a muscle
// to select it and its linked group; drag to rotate the model.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/phanxgames/musclemap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	gender := flag.String("gender", "", "model variant: male or female")
	model := flag.String("model", "", "model path or URL, overriding the configured one")
	script := flag.String("script", "", "JSON test script to replay")
	debug := flag.Bool("debug", false, "log per-frame stats")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := musclemap.DefaultConfig()
	if *configPath != "" {
		c, err := musclemap.LoadConfig(*configPath)
		if err != nil {
			logger.Error("load config", "err", err)
			os.Exit(1)
		}
		cfg = c
	}
	cfg.Logger = logger
	if *gender != "" {
		cfg.Gender = musclemap.Gender(*gender)
	}
	if *model != "" {
		cfg.Models[cfg.Gender] = *model
	}

	viewer, err := musclemap.NewViewer(cfg, nil)
	if err != nil {
		logger.Error("create viewer", "err", err)
		os.Exit(1)
	}
	viewer.SetDebugMode(*debug)
	viewer.OnMuscleSelect(func(key string) {
		logger.Info("muscle selected", "key", key, "label", viewer.MuscleLabel(key))
	})
	viewer.OnLoadError(func(url string, err error) {
		logger.Warn("viewer is empty: model failed to load", "url", url)
	})

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			logger.Error("read script", "err", err)
			os.Exit(1)
		}
		runner, err := musclemap.LoadTestScript(data)
		if err != nil {
			logger.Error("load script", "err", err)
			os.Exit(1)
		}
		viewer.SetTestRunner(runner)
	}

	if err := musclemap.Run(viewer, musclemap.RunConfig{
		Title:   "Muscle Map",
		Width:   cfg.Width,
		Height:  cfg.Height,
		ShowFPS: *debug,
	}); err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
