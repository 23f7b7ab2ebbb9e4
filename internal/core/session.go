package core

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/kilupskalvis/abook/internal/book"
	"github.com/kilupskalvis/abook/internal/models"
)

// Result describes the outcome of a command for the user interface
type Result struct {
	Message string
	// Touched lists the collections the command changed; the session commits
	// each of them and records the set for undo.
	Touched []models.Kind
	// Show lists the collections whose visible contents should be redisplayed
	Show []models.Kind
	// Modified is set when any collection's contents changed and should be
	// persisted
	Modified bool
	ShowHelp bool
	Exit     bool
}

// Command is one parsed user intent
type Command interface {
	Word() string
	Execute(s *Session) (Result, error)
}

// Session runs commands against a model. It commits the collections each
// command touches and keeps an undo log of those sets, so undoing a move
// restores both collections involved.
type Session struct {
	ID      string
	model   *Model
	logger  *slog.Logger
	done    [][]models.Kind
	undone  [][]models.Kind
	history []string
}

// NewSession returns a session over model with an empty undo log
func NewSession(model *Model, logger *slog.Logger) *Session {
	id := uuid.NewString()
	if logger == nil {
		logger = model.logger
	}
	return &Session{
		ID:     id,
		model:  model,
		logger: logger.With("session", id),
	}
}

// Model returns the model the session operates on
func (s *Session) Model() *Model {
	return s.model
}

// Run parses line and executes the command. Every non-blank line is added to
// the input history once it has run, including ones that fail.
func (s *Session) Run(line string) (Result, error) {
	line = strings.TrimSpace(line)
	if line != "" {
		defer func() { s.history = append(s.history, line) }()
	}
	cmd, err := ParseCommand(line)
	if err != nil {
		return Result{}, err
	}
	return s.Execute(cmd)
}

// Execute runs cmd. On success every touched collection is committed; on
// failure nothing was changed and nothing is committed.
func (s *Session) Execute(cmd Command) (Result, error) {
	res, err := cmd.Execute(s)
	if err != nil {
		s.logger.Debug("command failed", "command", cmd.Word(), "error", err)
		return Result{}, err
	}

	if len(res.Touched) > 0 {
		for _, kind := range res.Touched {
			s.model.Commit(kind)
		}
		s.done = append(s.done, slices.Clone(res.Touched))
		s.undone = nil
		res.Modified = true
	}

	s.logger.Info("command executed", "command", cmd.Word(), "touched", len(res.Touched))
	return res, nil
}

// History returns the entered lines, oldest first
func (s *Session) History() []string {
	return slices.Clone(s.history)
}

// CanUndo reports whether a committed command can be undone
func (s *Session) CanUndo() bool {
	return len(s.done) > 0
}

// CanRedo reports whether an undone command can be redone
func (s *Session) CanRedo() bool {
	return len(s.undone) > 0
}

// undo reverts every collection touched by the latest command. It checks
// all of them first so that it either reverts the whole set or nothing.
func (s *Session) undo() ([]models.Kind, error) {
	if len(s.done) == 0 {
		return nil, book.ErrNothingToUndo
	}
	kinds := s.done[len(s.done)-1]
	for _, kind := range kinds {
		if !s.model.CanUndo(kind) {
			return nil, book.ErrNothingToUndo
		}
	}
	for _, kind := range kinds {
		if err := s.model.Undo(kind); err != nil {
			return nil, err
		}
	}
	s.done = s.done[:len(s.done)-1]
	s.undone = append(s.undone, kinds)
	return kinds, nil
}

func (s *Session) redo() ([]models.Kind, error) {
	if len(s.undone) == 0 {
		return nil, book.ErrNothingToRedo
	}
	kinds := s.undone[len(s.undone)-1]
	for _, kind := range kinds {
		if !s.model.CanRedo(kind) {
			return nil, book.ErrNothingToRedo
		}
	}
	for _, kind := range kinds {
		if err := s.model.Redo(kind); err != nil {
			return nil, err
		}
	}
	s.undone = s.undone[:len(s.undone)-1]
	s.done = append(s.done, kinds)
	return kinds, nil
}
