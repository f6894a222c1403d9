package ingest

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below matches exactly one of these with errors.Is.
var (
	ErrKindMalformed  = errors.New("malformed input")
	ErrKindIo         = errors.New("io failure")
	ErrKindSchema     = errors.New("schema mismatch")
	ErrKindDegenerate = errors.New("degenerate geometry")
)

// ErrMalformedInput indicates an unrecognized classification string or unparsable geometry
type ErrMalformedInput struct {
	Source string // file or record the problem came from, may be empty
	Reason string
	Err    error
}

func (e *ErrMalformedInput) Error() string {
	msg := e.Reason
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", msg, e.Err)
	}
	return fmt.Sprintf("malformed input: %s", msg)
}

func (e *ErrMalformedInput) Unwrap() error { return e.Err }

func (e *ErrMalformedInput) Is(target error) bool { return target == ErrKindMalformed }

// ErrIoFailure indicates a missing or unreadable source or cache file
type ErrIoFailure struct {
	Path string
	Op   string // "open", "read", "write", ...
	Err  error
}

func (e *ErrIoFailure) Error() string {
	return fmt.Sprintf("io failure: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ErrIoFailure) Unwrap() error { return e.Err }

func (e *ErrIoFailure) Is(target error) bool { return target == ErrKindIo }

// ErrSchemaMismatch indicates a cache file that does not match the expected structure.
// Recovery is to delete the cache and ingest again from source.
type ErrSchemaMismatch struct {
	Path   string
	Reason string
	Err    error
}

func (e *ErrSchemaMismatch) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema mismatch in %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("schema mismatch in %s: %s", e.Path, e.Reason)
}

func (e *ErrSchemaMismatch) Unwrap() error { return e.Err }

func (e *ErrSchemaMismatch) Is(target error) bool { return target == ErrKindSchema }

// ErrDegenerateGeometry indicates a ring with fewer than 3 points or a zero-length way.
// It is not fatal: the affected feature is dropped.
type ErrDegenerateGeometry struct {
	Kind   RecordKind
	Name   string
	Reason string
}

func (e *ErrDegenerateGeometry) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("degenerate %v %q: %s", e.Kind, e.Name, e.Reason)
	}
	return fmt.Sprintf("degenerate %v: %s", e.Kind, e.Reason)
}

func (e *ErrDegenerateGeometry) Is(target error) bool { return target == ErrKindDegenerate }

// IsFatal reports whether err should abort an ingestion run.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrKindDegenerate)
}
