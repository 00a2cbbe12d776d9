package sdsignals

import (
	"errors"
	"fmt"
)

var (
	ErrNoEvent        = errors.New("no event has been read")
	ErrUnknownStation = errors.New("station not in detector geometry")
	ErrUnknownGroup   = errors.New("unknown signal group")
	ErrReadGeometry   = errors.New("error reading detector geometry")
)

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error {
	return e.Err
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error {
	return e.Err
}

// ErrReadTable represents an error when reading a table from the event file.
type ErrReadTable struct {
	TableName string
	Err       error
}

func (e *ErrReadTable) Error() string {
	return fmt.Sprintf("error reading table %q: %v", e.TableName, e.Err)
}

func (e *ErrReadTable) Unwrap() error {
	return e.Err
}

// ErrEventIndex is returned when reading an event past the end of the file.
type ErrEventIndex struct {
	Index   int
	NEvents int
}

func (e *ErrEventIndex) Error() string {
	return fmt.Sprintf("event index %d out of range, file has %d events", e.Index, e.NEvents)
}
