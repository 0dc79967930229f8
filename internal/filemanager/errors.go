package filemanager

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by GetEntryAtIndex for an index outside the listing.
	ErrIndexOutOfRange = errors.New("entry index out of range")
	// ErrNotDirectory is wrapped in a NavigationError when the target is a file.
	ErrNotDirectory = errors.New("not a directory")
)

// NavigationError reports a directory that could not be entered.
type NavigationError struct {
	Path string
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("cannot open directory %s: %v", e.Path, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// ListingError reports a failure to enumerate a directory or stat an entry.
type ListingError struct {
	Path string
	Err  error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("cannot list %s: %v", e.Path, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// PasteError reports one selected path that could not be copied.
type PasteError struct {
	Path string
	Dest string
	Err  error
}

func (e *PasteError) Error() string {
	return fmt.Sprintf("cannot paste %s into %s: %v", e.Path, e.Dest, e.Err)
}

func (e *PasteError) Unwrap() error { return e.Err }

// DeletionError reports one selected path that could not be removed.
type DeletionError struct {
	Path string
	Err  error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("cannot delete %s: %v", e.Path, e.Err)
}

func (e *DeletionError) Unwrap() error { return e.Err }

// CreateError reports a file or directory that could not be created.
type CreateError struct {
	Path string
	Err  error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("cannot create %s: %v", e.Path, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }
