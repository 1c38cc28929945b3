package pane

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedEdition means the current file name carries none of
	// the known edition suffixes.
	ErrUnrecognizedEdition = errors.New("unrecognized edition")
	// ErrNoSibling means neither requested edition exists on disk.
	ErrNoSibling = errors.New("no sibling edition found")
)

// PaneSyncError reports that a pane could not be moved to its mirrored
// line. It never aborts synchronization of the other panes.
type PaneSyncError struct {
	PaneID int
	Line   int
	Err    error
}

func (e *PaneSyncError) Error() string {
	return fmt.Sprintf("sync pane %d to line %d: %v", e.PaneID, e.Line, e.Err)
}

func (e *PaneSyncError) Unwrap() error { return e.Err }
