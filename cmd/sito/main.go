// cmd/sito/main.go
package main

import (
	"fmt"
	"os"

	"github.com/gameall123/sito/internal/cli"
	"github.com/gameall123/sito/internal/config"
	"github.com/gameall123/sito/internal/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg)

	app, err := cli.NewApp(cfg, logger, os.Stdout)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize application")
		os.Exit(1)
	}

	if err := cli.NewRootCommand(app).Execute(); err != nil {
		os.Exit(1)
	}
}
