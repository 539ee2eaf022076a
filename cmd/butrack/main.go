package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hkhalid/butrack/internal/cli"
	"github.com/hkhalid/butrack/internal/config"
	"github.com/hkhalid/butrack/internal/db"
	"github.com/hkhalid/butrack/internal/portal"
	"github.com/hkhalid/butrack/internal/repository"
	"github.com/hkhalid/butrack/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	// Determine DB path: env var or default ~/.butrack/butrack.db
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".butrack", "butrack.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	credRepo := repository.NewSQLiteCredentialRepo(database)

	relay := cli.NewEventRelay()
	var observer service.Observer = relay
	if cfg.LogEvents {
		observer = service.MultiObserver(relay, service.NewLogObserver(os.Stderr))
	}

	client := portal.NewClient(cfg)
	runs := service.NewRunService(portal.NewBootstrapper(cfg), client, credRepo, observer)

	app := &cli.App{
		Runs:        runs,
		Credentials: credRepo,
		Cfg:         cfg,
		Relay:       relay,
		IsInteractive: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	return rootCmd.Execute()
}
