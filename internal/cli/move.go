package cli

import (
	"github.com/kilupskalvis/abook/internal/core"
	"github.com/spf13/cobra"
)

// newMoveCmd builds a command that moves the contact at INDEX of one list
// into another
func newMoveCmd(op, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   op + " INDEX",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runCommand(core.MoveCommand{Op: op, Index: parseIndex(args[0])})
		},
	}
}

var (
	archiveCmd = newMoveCmd("archive", "Archive a contact",
		`Move the contact at INDEX of the active list into the archive.`)
	unarchiveCmd = newMoveCmd("unarchive", "Restore an archived contact",
		`Move the contact at INDEX of the archived list back to the active list.`)
	pinCmd = newMoveCmd("pin", "Pin a contact",
		`Move the contact at INDEX of the active list into the pinned list.`)
	unpinCmd = newMoveCmd("unpin", "Unpin a contact",
		`Move the contact at INDEX of the pinned list back to the active list.`)
)
