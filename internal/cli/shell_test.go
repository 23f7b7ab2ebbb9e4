package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/kilupskalvis/abook/internal/core"
	"github.com/kilupskalvis/abook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	amy = models.MustContact("Amy Bee", "85355255", "amy@gmail.com", "123, Jurong West Ave 6", "friends")
	bob = models.MustContact("Bob Choo", "22222222", "bob@example.com", "Block 123, Bobby Street 3")
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestSession(t *testing.T) *core.Session {
	t.Helper()
	m, err := core.NewModel(core.Contents{models.KindActive: {amy, bob}}, models.DefaultPreferences(t.TempDir()))
	require.NoError(t, err)
	return core.NewSession(m, nil)
}

// countingSave returns a save func and a pointer to how often it ran
func countingSave() (func(context.Context) error, *int) {
	n := 0
	return func(context.Context) error {
		n++
		return nil
	}, &n
}

func TestRunShell_SavesAfterChanges(t *testing.T) {
	s := newTestSession(t)
	save, saves := countingSave()
	in := strings.NewReader(strings.Join([]string{
		"add n/Cat Dee p/33333 e/cat@example.com a/catnip lane",
		"list",
		"undo",
		"exit",
		"delete 1",
	}, "\n"))
	var out bytes.Buffer

	err := runShell(context.Background(), in, &out, s, save)
	require.NoError(t, err)

	assert.Equal(t, 2, *saves, "add and undo modify the book, list does not")
	assert.Contains(t, out.String(), "New contact added: Cat Dee")
	assert.Contains(t, out.String(), "Undo success!")
	assert.Contains(t, out.String(), "Exiting abook as requested")
	assert.Equal(t, []models.Contact{amy, bob}, s.Model().Items(models.KindActive), "input after exit is not run")
}

func TestRunShell_ReportsErrorsAndContinues(t *testing.T) {
	s := newTestSession(t)
	save, saves := countingSave()
	in := strings.NewReader("frobnicate\ndelete 9\nundo\npin 1\n")
	var out bytes.Buffer

	err := runShell(context.Background(), in, &out, s, save)
	require.NoError(t, err, "end of input ends the session")

	assert.Contains(t, out.String(), "Unknown command")
	assert.Contains(t, out.String(), "must be between 1 and 2")
	assert.Contains(t, out.String(), "No more commands to undo!")
	assert.Contains(t, out.String(), "Pinned contact: Amy Bee")
	assert.Contains(t, out.String(), "Pinned contacts (1)")
	assert.Equal(t, 1, *saves)
}

func TestRunShell_SaveFailureEndsSession(t *testing.T) {
	s := newTestSession(t)
	boom := errors.New("disk full")
	in := strings.NewReader("delete 1\nlist\n")
	var out bytes.Buffer

	err := runShell(context.Background(), in, &out, s, func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestRunShell_ShowsActiveListOnStart(t *testing.T) {
	s := newTestSession(t)
	save, _ := countingSave()
	var out bytes.Buffer

	require.NoError(t, runShell(context.Background(), strings.NewReader(""), &out, s, save))

	assert.Contains(t, out.String(), "Contacts (2)")
	assert.Contains(t, out.String(), "Amy Bee")
	assert.Contains(t, out.String(), "Bob Choo")
}
