package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/kilupskalvis/abook/internal/core"
	"github.com/kilupskalvis/abook/internal/models"
	"github.com/spf13/cobra"
)

const shellPrompt = "abook> "

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	Long: `Start an interactive session. Commands use the prefix syntax
(add n/NAME p/PHONE e/EMAIL a/ADDRESS t/TAG) and indexes refer to the list
shown last. Undo and redo work across the whole session; the address book is
saved after every change. Type 'help' for every command and 'exit' to leave.`,
	Args: cobra.NoArgs,
	Run:  runShellCmd,
}

func runShellCmd(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext(ctx)

	c.Logger.Info("shell started", "session", c.Session.ID, "data_dir", c.Config.DataDir)
	if err := runShell(ctx, os.Stdin, os.Stdout, c.Session, c.save); err != nil {
		exitError("%s", describeError(err))
	}
}

// runShell reads commands from in until exit or end of input. save is called
// after every command that modified the address book; a failed save ends the
// session.
func runShell(ctx context.Context, in io.Reader, out io.Writer, s *core.Session, save func(context.Context) error) error {
	red := color.New(color.FgRed)

	fmt.Fprintln(out, "Welcome to abook! Type 'help' to see every command.")
	showLists(out, s.Model(), []models.Kind{models.KindActive})

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()

		res, err := s.Run(line)
		if err != nil {
			red.Fprintln(out, describeError(err))
			continue
		}
		if res.Modified {
			if err := save(ctx); err != nil {
				return fmt.Errorf("save address book: %w", err)
			}
		}

		printResult(out, res)
		showLists(out, s.Model(), res.Show)
		if res.Exit {
			return nil
		}
	}
}
