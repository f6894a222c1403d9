// Package cache reads and writes ingested datasets as versioned CBOR files.
//
// Every file carries an envelope naming the schema version, the coordinate
// scale the data was projected with, and the dataset kind. A file that does
// not match any of these is a schema mismatch and must be regenerated from
// source.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"

	"github.com/beetlebugorg/geoingest/internal/ingest"
)

// Version is bumped whenever a cached type changes shape.
const Version = 1

// magic identifies a geoingest cache file
const magic = "GEOI"

// Kind names the dataset stored in a cache file
type Kind string

const (
	KindWays        Kind = "ways"
	KindRegions     Kind = "regions"
	KindSettlements Kind = "settlements"
	KindBoundaries  Kind = "boundaries"
)

// FileName is the conventional file name for a kind inside a cache directory.
func (k Kind) FileName() string {
	return string(k) + ".cbor"
}

type envelope struct {
	Magic   string          `cbor:"magic"`
	Version int             `cbor:"version"`
	Scale   float64         `cbor:"scale"`
	Kind    Kind            `cbor:"kind"`
	Payload cbor.RawMessage `cbor:"payload"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{Sort: cbor.SortCanonical}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		// national road networks exceed the default 128k element limit
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal encodes v inside an envelope for kind.
func Marshal(kind Kind, v any) ([]byte, error) {
	payload, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return encMode.Marshal(envelope{
		Magic:   magic,
		Version: Version,
		Scale:   ingest.Scale,
		Kind:    kind,
		Payload: payload,
	})
}

// Unmarshal checks the envelope of data and decodes its payload into v.
// path is only used in error messages.
func Unmarshal(path string, data []byte, kind Kind, v any) error {
	var env envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return &ingest.ErrSchemaMismatch{Path: path, Reason: "envelope", Err: err}
	}
	switch {
	case env.Magic != magic:
		return &ingest.ErrSchemaMismatch{Path: path, Reason: fmt.Sprintf("not a cache file (magic %q)", env.Magic)}
	case env.Version != Version:
		return &ingest.ErrSchemaMismatch{Path: path, Reason: fmt.Sprintf("version %d, want %d", env.Version, Version)}
	case env.Scale != ingest.Scale:
		return &ingest.ErrSchemaMismatch{Path: path, Reason: fmt.Sprintf("scale %v, want %v", env.Scale, ingest.Scale)}
	case env.Kind != kind:
		return &ingest.ErrSchemaMismatch{Path: path, Reason: fmt.Sprintf("holds %s, want %s", env.Kind, kind)}
	}
	if err := decMode.Unmarshal(env.Payload, v); err != nil {
		return &ingest.ErrSchemaMismatch{Path: path, Reason: string(kind) + " payload", Err: err}
	}
	return nil
}

// Write encodes v and replaces path atomically.
func Write(path string, kind Kind, v any) error {
	data, err := Marshal(kind, v)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &ingest.ErrIoFailure{Path: dir, Op: "mkdir", Err: err}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return &ingest.ErrIoFailure{Path: path, Op: "create", Err: err}
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &ingest.ErrIoFailure{Path: tmp.Name(), Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &ingest.ErrIoFailure{Path: tmp.Name(), Op: "close", Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &ingest.ErrIoFailure{Path: path, Op: "rename", Err: err}
	}
	return nil
}

// Read decodes the cache file at path into v.
func Read(path string, kind Kind, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ingest.ErrIoFailure{Path: path, Op: "read", Err: err}
	}
	return Unmarshal(path, data, kind, v)
}

// Probe reports the kind stored at path without decoding the payload.
func Probe(path string) (Kind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ingest.ErrIoFailure{Path: path, Op: "read", Err: err}
	}
	var env envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return "", &ingest.ErrSchemaMismatch{Path: path, Reason: "envelope", Err: err}
	}
	if env.Magic != magic {
		return "", &ingest.ErrSchemaMismatch{Path: path, Reason: "not a cache file"}
	}
	return env.Kind, nil
}

// IsStale reports whether err means the cache must be regenerated rather than
// retried.
func IsStale(err error) bool {
	return errors.Is(err, ingest.ErrKindSchema)
}
