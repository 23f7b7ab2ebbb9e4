package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/kilupskalvis/abook/internal/config"
	"github.com/kilupskalvis/abook/internal/models"
	"github.com/kilupskalvis/abook/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an address book in the current directory",
	Long: `Create an address book in the current directory.
This writes a .abook.toml config file and an empty address book into the
data directory (--data-dir, default .abook, relative to the current
directory). abook commands run in this directory or below it use it.`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

func runInit(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	cwd, err := os.Getwd()
	if err != nil {
		exitError("%v", err)
	}
	backend, err := store.ParseBackend(flagBackend)
	if err != nil {
		exitError("%v", err)
	}
	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir
	}

	fmt.Printf("Initializing address book...\n")
	cfg, err := config.Initialize(cwd, dataDir, backend)
	if err != nil {
		exitError("failed to initialize config: %v", err)
	}

	st, err := store.New(cfg.DataDir, backend)
	if err != nil {
		exitError("failed to create store: %v", err)
	}
	empty := map[models.Kind][]models.Contact{}
	if err := store.NewManager(st, nil).SaveAll(ctx, models.DefaultPreferences(cfg.DataDir), empty); err != nil {
		exitError("failed to initialize store: %s", describeError(err))
	}

	fmt.Printf("\nInitialized empty address book in %s\n", cfg.DataDir)
	fmt.Printf("Storage backend: %s\n", backend)
	fmt.Printf("\nRun 'abook add' to add a contact, or 'abook shell' for an interactive session.\n")
}
