package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/kilupskalvis/abook/internal/models"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show preferences",
	Long:  `Show the window settings and the location of each contact list.`,
	Args:  cobra.NoArgs,
	Run:   runPrefs,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change preferences",
	Long: `Change window settings or move a contact list to a new file.
The list is written to its new location immediately.`,
	Args: cobra.NoArgs,
	Run:  runPrefsSet,
}

var (
	prefsWidth       float64
	prefsHeight      float64
	prefsX           int
	prefsY           int
	prefsActivePath  string
	prefsArchivePath string
	prefsPinPath     string
)

func init() {
	prefsSetCmd.Flags().Float64Var(&prefsWidth, "width", 0, "Window width")
	prefsSetCmd.Flags().Float64Var(&prefsHeight, "height", 0, "Window height")
	prefsSetCmd.Flags().IntVar(&prefsX, "x", 0, "Window x position")
	prefsSetCmd.Flags().IntVar(&prefsY, "y", 0, "Window y position")
	prefsSetCmd.Flags().StringVar(&prefsActivePath, "active-path", "", "File holding active contacts")
	prefsSetCmd.Flags().StringVar(&prefsArchivePath, "archive-path", "", "File holding archived contacts")
	prefsSetCmd.Flags().StringVar(&prefsPinPath, "pin-path", "", "File holding pinned contacts")
	prefsCmd.AddCommand(prefsSetCmd)
}

func runPrefs(cmd *cobra.Command, args []string) {
	c := initContext(context.Background())
	printPreferences(c.Model().Preferences())
}

// prefsPathFlags maps each collection to the flag that relocates it
var prefsPathFlags = map[models.Kind]struct {
	name  string
	value *string
}{
	models.KindActive:  {"active-path", &prefsActivePath},
	models.KindArchive: {"archive-path", &prefsArchivePath},
	models.KindPin:     {"pin-path", &prefsPinPath},
}

func runPrefsSet(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext(ctx)
	m := c.Model()

	p, err := updatePreferences(m.Preferences(), cmd.Flags().Changed)
	if err != nil {
		exitError("%v", err)
	}
	m.SetPreferences(p)

	if err := c.save(ctx); err != nil {
		exitError("failed to save preferences: %s", describeError(err))
	}
	color.New(color.FgGreen).Println("Preferences updated")
	printPreferences(m.Preferences())
}

// updatePreferences applies the changed prefs set flags to p. Paths are
// applied in collection order and the first invalid one fails the whole
// update.
func updatePreferences(p models.Preferences, changed func(string) bool) (models.Preferences, error) {
	if changed("width") {
		p.Gui.Width = prefsWidth
	}
	if changed("height") {
		p.Gui.Height = prefsHeight
	}
	if changed("x") {
		p.Gui.X = prefsX
	}
	if changed("y") {
		p.Gui.Y = prefsY
	}

	for _, kind := range models.AllKinds() {
		flag := prefsPathFlags[kind]
		if !changed(flag.name) {
			continue
		}
		var err error
		if p, err = p.WithCollectionPath(kind, *flag.value); err != nil {
			return models.Preferences{}, fmt.Errorf("--%s: %w", flag.name, err)
		}
	}
	return p, nil
}

func printPreferences(p models.Preferences) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Window"), fmt.Sprintf("%gx%g at (%d, %d)", p.Gui.Width, p.Gui.Height, p.Gui.X, p.Gui.Y))
	for _, kind := range models.AllKinds() {
		tbl.AddRow(bold.Sprint(listTitles[kind]), p.CollectionPath(kind))
	}
	fmt.Fprintln(os.Stdout, tbl)
}
