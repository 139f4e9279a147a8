// Package main is the entry point for the ledgerctl command line tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/cli"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

var (
	dbPath = flag.String("db", defaultDBPath(), "Path to the SQLite ledger file")
	plain  = flag.Bool("plain", false, "Print raw markdown instead of rendering it")
)

func defaultDBPath() string {
	if p := os.Getenv("LEDGER_DB_PATH"); p != "" {
		return p
	}
	return "ledger.db"
}

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	app := &cli.App{
		Out:   os.Stdout,
		Err:   os.Stderr,
		Plain: false,
	}
	cli.Register(commander, app)

	flag.Parse()
	app.Plain = *plain

	os.Exit(run(commander, app))
}

func run(commander *subcommands.Commander, app *cli.App) int {
	cfg := config.Load()

	location, err := time.LoadLocation(cfg.Server.Location)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid location %q: %v\n", cfg.Server.Location, err)
		return int(subcommands.ExitFailure)
	}
	app.Location = location

	database, err := db.NewSQLiteConnection(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return int(subcommands.ExitFailure)
	}
	defer database.Close()

	if err := database.Migrate(false); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return int(subcommands.ExitFailure)
	}

	registry := ledger.NewRegistry(persistence.NewLedgerRepository(database.DB()), slog.Default())
	registry.SetSaveTimeout(cfg.Storage.SaveTimeout)
	app.Ledgers = registry

	if cfg.Gemini.APIKey != "" {
		app.Insights = adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return int(commander.Execute(ctx))
}
