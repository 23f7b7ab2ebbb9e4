package core

import (
	"fmt"
	"strings"

	"github.com/kilupskalvis/abook/internal/book"
	"github.com/kilupskalvis/abook/internal/models"
)

// activeOnly is the touched/show set of commands that change only the
// active collection
func activeOnly() []models.Kind {
	return []models.Kind{models.KindActive}
}

// AddCommand adds a contact to the active collection
type AddCommand struct {
	Contact models.Contact
}

func (AddCommand) Word() string { return "add" }

func (c AddCommand) Execute(s *Session) (Result, error) {
	if err := s.model.Add(c.Contact); err != nil {
		return Result{}, err
	}
	return Result{
		Message: fmt.Sprintf("New contact added: %s", c.Contact),
		Touched: activeOnly(),
		Show:    activeOnly(),
	}, nil
}

// EditCommand changes the fields of the displayed active contact at Index
type EditCommand struct {
	Index int
	Patch models.ContactPatch
}

func (EditCommand) Word() string { return "edit" }

func (c EditCommand) Execute(s *Session) (Result, error) {
	target, err := s.model.VisibleAt(models.KindActive, c.Index)
	if err != nil {
		return Result{}, err
	}
	edited, err := target.With(c.Patch)
	if err != nil {
		return Result{}, err
	}
	if err := s.model.Update(target, edited); err != nil {
		return Result{}, err
	}
	s.model.SetFilter(models.KindActive, nil)
	return Result{
		Message: fmt.Sprintf("Edited contact: %s", edited),
		Touched: activeOnly(),
		Show:    activeOnly(),
	}, nil
}

// DeleteCommand deletes the displayed active contact at Index
type DeleteCommand struct {
	Index int
}

func (DeleteCommand) Word() string { return "delete" }

func (c DeleteCommand) Execute(s *Session) (Result, error) {
	target, err := s.model.VisibleAt(models.KindActive, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := s.model.Delete(target); err != nil {
		return Result{}, err
	}
	return Result{
		Message: fmt.Sprintf("Deleted contact: %s", target),
		Touched: activeOnly(),
		Show:    activeOnly(),
	}, nil
}

// SelectCommand selects the displayed active contact at Index
type SelectCommand struct {
	Index int
}

func (SelectCommand) Word() string { return "select" }

func (c SelectCommand) Execute(s *Session) (Result, error) {
	target, err := s.model.VisibleAt(models.KindActive, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := s.model.Select(target); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("Selected contact: %d", c.Index)}, nil
}

// PinSelectCommand selects the displayed pinned contact at Index
type PinSelectCommand struct {
	Index int
}

func (PinSelectCommand) Word() string { return "pinselect" }

func (c PinSelectCommand) Execute(s *Session) (Result, error) {
	target, err := s.model.VisibleAt(models.KindPin, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := s.model.SelectPin(target); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("Selected pinned contact: %d", c.Index)}, nil
}

// FindCommand shows active contacts whose name contains any keyword as a
// whole word, ignoring case
type FindCommand struct {
	Keywords []string
}

func (FindCommand) Word() string { return "find" }

func (c FindCommand) Execute(s *Session) (Result, error) {
	s.model.SetFilter(models.KindActive, NameContainsAny(c.Keywords))
	n := len(s.model.Visible(models.KindActive))
	return Result{Message: fmt.Sprintf("%d contacts listed!", n), Show: activeOnly()}, nil
}

// FindTagCommand shows active contacts carrying any of the tags
type FindTagCommand struct {
	Tags []string
}

func (FindTagCommand) Word() string { return "findtag" }

func (c FindTagCommand) Execute(s *Session) (Result, error) {
	s.model.SetFilter(models.KindActive, HasAnyTag(c.Tags))
	n := len(s.model.Visible(models.KindActive))
	return Result{Message: fmt.Sprintf("%d contacts listed!", n), Show: activeOnly()}, nil
}

// ListCommand clears the filter of one collection
type ListCommand struct {
	Kind models.Kind
}

func (c ListCommand) Word() string {
	switch c.Kind {
	case models.KindArchive:
		return "archivelist"
	case models.KindPin:
		return "pinlist"
	default:
		return "list"
	}
}

func (c ListCommand) Execute(s *Session) (Result, error) {
	s.model.SetFilter(c.Kind, nil)
	msg := "Listed all contacts"
	switch c.Kind {
	case models.KindArchive:
		msg = "Listed all archived contacts"
	case models.KindPin:
		msg = "Listed all pinned contacts"
	}
	return Result{Message: msg, Show: []models.Kind{c.Kind}}, nil
}

// ClearCommand empties the active collection
type ClearCommand struct{}

func (ClearCommand) Word() string { return "clear" }

func (ClearCommand) Execute(s *Session) (Result, error) {
	s.model.ResetData(models.KindActive, nil)
	return Result{Message: "Address book has been cleared!", Touched: activeOnly(), Show: activeOnly()}, nil
}

// MoveCommand moves the displayed contact at Index between collections.
// Op is one of archive, unarchive, pin or unpin.
type MoveCommand struct {
	Op    string
	Index int
}

func (c MoveCommand) Word() string { return c.Op }

func (c MoveCommand) Execute(s *Session) (Result, error) {
	var (
		src, dst models.Kind
		move     func(models.Contact) error
		verb     string
	)
	switch c.Op {
	case "archive":
		src, dst, move, verb = models.KindActive, models.KindArchive, s.model.Archive, "Archived"
	case "unarchive":
		src, dst, move, verb = models.KindArchive, models.KindActive, s.model.Unarchive, "Unarchived"
	case "pin":
		src, dst, move, verb = models.KindActive, models.KindPin, s.model.Pin, "Pinned"
	case "unpin":
		src, dst, move, verb = models.KindPin, models.KindActive, s.model.Unpin, "Unpinned"
	default:
		return Result{}, fmt.Errorf("unknown move %q", c.Op)
	}

	target, err := s.model.VisibleAt(src, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := move(target); err != nil {
		return Result{}, err
	}
	kinds := []models.Kind{src, dst}
	return Result{
		Message: fmt.Sprintf("%s contact: %s", verb, target),
		Touched: kinds,
		Show:    kinds,
	}, nil
}

// UndoCommand reverts the latest committed command
type UndoCommand struct{}

func (UndoCommand) Word() string { return "undo" }

func (UndoCommand) Execute(s *Session) (Result, error) {
	kinds, err := s.undo()
	if err != nil {
		return Result{}, err
	}
	for _, k := range kinds {
		s.model.SetFilter(k, nil)
	}
	return Result{Message: "Undo success!", Show: kinds, Modified: true}, nil
}

// RedoCommand re-applies the latest undone command
type RedoCommand struct{}

func (RedoCommand) Word() string { return "redo" }

func (RedoCommand) Execute(s *Session) (Result, error) {
	kinds, err := s.redo()
	if err != nil {
		return Result{}, err
	}
	for _, k := range kinds {
		s.model.SetFilter(k, nil)
	}
	return Result{Message: "Redo success!", Show: kinds, Modified: true}, nil
}

// HistoryCommand lists the entered commands, most recent first
type HistoryCommand struct{}

func (HistoryCommand) Word() string { return "history" }

func (HistoryCommand) Execute(s *Session) (Result, error) {
	lines := s.History()
	if len(lines) == 0 {
		return Result{Message: "You have not yet entered any commands."}, nil
	}
	var b strings.Builder
	b.WriteString("Entered commands (from most recent to earliest):")
	for i := len(lines) - 1; i >= 0; i-- {
		b.WriteString("\n")
		b.WriteString(lines[i])
	}
	return Result{Message: b.String()}, nil
}

// HelpCommand shows usage for every command
type HelpCommand struct{}

func (HelpCommand) Word() string { return "help" }

func (HelpCommand) Execute(*Session) (Result, error) {
	return Result{Message: HelpText(), ShowHelp: true}, nil
}

// ExitCommand ends an interactive session
type ExitCommand struct{}

func (ExitCommand) Word() string { return "exit" }

func (ExitCommand) Execute(*Session) (Result, error) {
	return Result{Message: "Exiting abook as requested ...", Exit: true}, nil
}

// NameContainsAny matches contacts with a name word equal to any keyword,
// ignoring case
func NameContainsAny(keywords []string) book.Predicate[models.Contact] {
	return func(c models.Contact) bool {
		for _, word := range strings.Fields(c.Name()) {
			for _, k := range keywords {
				if strings.EqualFold(word, k) {
					return true
				}
			}
		}
		return false
	}
}

// HasAnyTag matches contacts carrying at least one of tags
func HasAnyTag(tags []string) book.Predicate[models.Contact] {
	return func(c models.Contact) bool {
		for _, t := range tags {
			if c.HasTag(t) {
				return true
			}
		}
		return false
	}
}
