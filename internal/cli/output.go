package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/kilupskalvis/abook/internal/book"
	"github.com/kilupskalvis/abook/internal/core"
	"github.com/kilupskalvis/abook/internal/models"
	"github.com/kilupskalvis/abook/internal/store"
)

var listTitles = map[models.Kind]string{
	models.KindActive:  "Contacts",
	models.KindArchive: "Archived contacts",
	models.KindPin:     "Pinned contacts",
}

// describeError turns an error into text for the user
func describeError(err error) string {
	var (
		recErr   *book.RecordError
		idxErr   *core.IndexError
		parseErr *core.ParseError
		fieldErr *models.FieldError
		convErr  *store.ConversionError
	)
	switch {
	case errors.Is(err, book.ErrNothingToUndo):
		return "No more commands to undo!"
	case errors.Is(err, book.ErrNothingToRedo):
		return "No more commands to redo!"
	case errors.As(err, &recErr) && errors.Is(err, book.ErrDuplicateRecord):
		return fmt.Sprintf("This contact already exists: %s", recErr.Record)
	case errors.As(err, &recErr) && errors.Is(err, book.ErrRecordNotFound):
		return fmt.Sprintf("Contact not found: %s", recErr.Record)
	case errors.As(err, &idxErr):
		return "The contact " + idxErr.Error()
	case errors.As(err, &parseErr):
		return parseErr.Error()
	case errors.As(err, &fieldErr):
		return fieldErr.Error()
	case errors.As(err, &convErr):
		return fmt.Sprintf("data in %s could not be read and was left untouched: %v", convErr.Path, convErr.Err)
	default:
		return err.Error()
	}
}

// printResult writes a command's message in green, or its help text plainly
func printResult(w io.Writer, res core.Result) {
	if res.ShowHelp {
		fmt.Fprintln(w, res.Message)
		return
	}
	color.New(color.FgGreen).Fprintln(w, res.Message)
}

// printContacts renders contacts as a numbered table
func printContacts(w io.Writer, title string, contacts []models.Contact) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Fprintf(w, "%s (%d)\n", bold.Sprint(title), len(contacts))
	if len(contacts) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Name"), bold.Sprint("Phone"), bold.Sprint("Email"), bold.Sprint("Address"), bold.Sprint("Tags"))
	for i, c := range contacts {
		tbl.AddRow(strconv.Itoa(i+1), c.Name(), c.Phone(), c.Email(), c.Address(), cyan.Sprint(formatTags(c.Tags())))
	}
	tbl.RightAlign(0)
	fmt.Fprintln(w, tbl)
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "[" + strings.Join(tags, "] [") + "]"
}

// showLists prints the visible contents of each listed collection
func showLists(w io.Writer, m *core.Model, kinds []models.Kind) {
	for _, k := range kinds {
		printContacts(w, listTitles[k], m.Visible(k))
	}
}
