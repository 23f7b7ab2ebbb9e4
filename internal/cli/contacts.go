package cli

import (
	"os"

	"github.com/kilupskalvis/abook/internal/core"
	"github.com/kilupskalvis/abook/internal/models"
	"github.com/spf13/cobra"
)

// Contact field flags shared by add and edit
var (
	fieldName    string
	fieldPhone   string
	fieldEmail   string
	fieldAddress string
	fieldTags    []string
	editNoTags   bool
)

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&fieldName, "name", "n", "", "Contact name")
	cmd.Flags().StringVarP(&fieldPhone, "phone", "p", "", "Phone number (digits only)")
	cmd.Flags().StringVarP(&fieldEmail, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&fieldAddress, "address", "a", "", "Postal address")
	cmd.Flags().StringArrayVarP(&fieldTags, "tag", "t", nil, "Tag (repeatable)")
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contact",
	Long: `Add a contact to the active list.

Example:
  abook add -n "John Doe" -p 98765432 -e johnd@example.com -a "311, Clementi Ave 2" -t friends`,
	Args: cobra.NoArgs,
	Run:  runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit INDEX",
	Short: "Edit a contact",
	Long: `Edit the contact at INDEX of the active list. Only the given fields change;
--tag replaces every tag and --no-tags removes them all.`,
	Args: cobra.ExactArgs(1),
	Run:  runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete INDEX",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(core.DeleteCommand{Index: parseIndex(args[0])})
	},
}

var listCollection string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Long: `List the contacts of one collection: active (the default), archive
or pin.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

var findCmd = &cobra.Command{
	Use:   "find KEYWORD...",
	Short: "Find contacts by name",
	Long:  `List active contacts whose name contains any of the keywords as a whole word, ignoring case.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := runCommand(core.FindCommand{Keywords: args})
		showLists(os.Stdout, c.Model(), []models.Kind{models.KindActive})
	},
}

var findTagCmd = &cobra.Command{
	Use:   "findtag TAG...",
	Short: "Find contacts by tag",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := runCommand(core.FindTagCommand{Tags: args})
		showLists(os.Stdout, c.Model(), []models.Kind{models.KindActive})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every active contact",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(core.ClearCommand{})
	},
}

func init() {
	addFieldFlags(addCmd)
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("phone")
	addCmd.MarkFlagRequired("email")
	addCmd.MarkFlagRequired("address")

	addFieldFlags(editCmd)
	editCmd.Flags().BoolVar(&editNoTags, "no-tags", false, "Remove every tag")
	editCmd.MarkFlagsMutuallyExclusive("tag", "no-tags")

	listCmd.Flags().StringVarP(&listCollection, "collection", "c", models.KindActive.String(), "Collection to list (active, archive, pin)")
	_ = listCmd.RegisterFlagCompletionFunc("collection", cobra.FixedCompletions(kindNames(), cobra.ShellCompDirectiveNoFileComp))
}

func runAdd(cmd *cobra.Command, args []string) {
	contact, err := models.NewContact(fieldName, fieldPhone, fieldEmail, fieldAddress, fieldTags...)
	if err != nil {
		exitError("%s", describeError(err))
	}
	runCommand(core.AddCommand{Contact: contact})
}

func runEdit(cmd *cobra.Command, args []string) {
	patch := models.ContactPatch{
		Name:    fieldName,
		Phone:   fieldPhone,
		Email:   fieldEmail,
		Address: fieldAddress,
	}
	switch {
	case editNoTags:
		patch.Tags = []string{}
	case cmd.Flags().Changed("tag"):
		patch.Tags = fieldTags
	}
	if patch.IsEmpty() {
		exitError("at least one field to edit must be provided")
	}
	runCommand(core.EditCommand{Index: parseIndex(args[0]), Patch: patch})
}

func runList(cmd *cobra.Command, args []string) {
	kind, err := models.ParseKind(listCollection)
	if err != nil {
		exitError("%v", err)
	}
	c := runCommand(core.ListCommand{Kind: kind})
	showLists(os.Stdout, c.Model(), []models.Kind{kind})
}

func kindNames() []string {
	var names []string
	for _, k := range models.AllKinds() {
		names = append(names, k.String())
	}
	return names
}
