// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/magpierre/gridaccess/internal/config"
	"github.com/magpierre/gridaccess/internal/logging"
	"github.com/magpierre/gridaccess/windows"
)

func main() {
	configPath := flag.String("config", "", "Path to the TOML configuration file")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, cleanup, err := logging.Setup(logging.Options{
		Level:     cfg.Log.Level,
		SeqURL:    cfg.Log.SeqURL,
		AddSource: cfg.Log.AddSource,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cleanup()
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn("configuration", "warning", w)
	}

	b, err := windows.NewBrowser(app.NewWithID("gridaccess"), cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for _, path := range append(cfg.Files, flag.Args()...) {
		if err := b.OpenFile(ctx, path); err != nil {
			logger.Error("failed to open file", "path", path, "error", err)
			b.SetStatus(fmt.Sprintf("Failed to open %s: %v", path, err))
		}
	}

	b.ShowAndRun()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
