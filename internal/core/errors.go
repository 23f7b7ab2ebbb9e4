package core

import "fmt"

// IndexError reports a one-based index outside the displayed list
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("index %d is invalid: the list is empty", e.Index)
	}
	return fmt.Sprintf("index %d is invalid: must be between 1 and %d", e.Index, e.Size)
}

// ParseError reports input that does not form a valid command
type ParseError struct {
	Msg   string
	Usage string
}

func (e *ParseError) Error() string {
	if e.Usage == "" {
		return e.Msg
	}
	return e.Msg + "\n" + e.Usage
}
