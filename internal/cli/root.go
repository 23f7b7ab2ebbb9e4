// Package cli implements the command-line interface for abook.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/kilupskalvis/abook/internal/config"
	"github.com/kilupskalvis/abook/internal/core"
	"github.com/kilupskalvis/abook/internal/models"
	"github.com/kilupskalvis/abook/internal/store"
	"github.com/spf13/cobra"
)

// Global flags
var (
	flagDataDir   string
	flagBackend   string
	flagLogLevel  string
	flagLogFormat string
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config  *config.Config
	Logger  *slog.Logger
	Manager *store.Manager
	Session *core.Session
}

// Model returns the loaded address book
func (c *cmdContext) Model() *core.Model {
	return c.Session.Model()
}

// save persists preferences and every collection
func (c *cmdContext) save(ctx context.Context) error {
	m := c.Model()
	return c.Manager.SaveAll(ctx, m.Preferences(), m.Snapshot())
}

// loadConfig resolves the configuration and applies command-line overrides
func loadConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		exitError("%v", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		exitError("%v", err)
	}

	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		exitError("%v", err)
	}
	return cfg
}

// initContext loads the configuration and the whole address book
func initContext(ctx context.Context) *cmdContext {
	cfg := loadConfig()

	logger, err := newLogger(cfg.LogLevel, flagLogFormat, os.Stderr)
	if err != nil {
		exitError("%v", err)
	}

	st, err := store.New(cfg.DataDir, cfg.StorageBackend(), store.WithLogger(logger))
	if err != nil {
		exitError("failed to open store: %v", err)
	}
	mgr := store.NewManager(st, logger)

	prefs, data, err := mgr.LoadAll(ctx, models.DefaultPreferences(cfg.DataDir))
	if err != nil {
		exitError("failed to load address book: %s", describeError(err))
	}

	model, err := core.NewModel(data, prefs, core.WithLogger(logger))
	if err != nil {
		exitError("failed to load address book: %s", describeError(err))
	}

	return &cmdContext{
		Config:  cfg,
		Logger:  logger,
		Manager: mgr,
		Session: core.NewSession(model, logger),
	}
}

var rootCmd = &cobra.Command{
	Use:   "abook",
	Short: "A personal address book",
	Long: `abook keeps your contacts in three lists: active contacts, archived contacts
and pinned contacts. Use the subcommands for one-off changes, or run
'abook shell' for an interactive session with undo and redo.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory holding the address book (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: bolt or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (json, text)")
	registerFlagCompletions(rootCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(findTagCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(completionCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// parseIndex reads a one-based list index argument
func parseIndex(arg string) int {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 {
		exitError("index must be a positive number, got %q", arg)
	}
	return i
}

// runCommand executes one command against a freshly loaded address book,
// prints the outcome and saves when anything changed.
func runCommand(cmd core.Command) *cmdContext {
	ctx := context.Background()
	c := initContext(ctx)

	res, err := c.Session.Execute(cmd)
	if err != nil {
		exitError("%s", describeError(err))
	}
	if res.Modified {
		if err := c.save(ctx); err != nil {
			exitError("failed to save address book: %s", describeError(err))
		}
	}
	printResult(os.Stdout, res)
	return c
}
