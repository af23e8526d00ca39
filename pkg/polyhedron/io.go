package polyhedron

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/polyfold/polyfold/pkg/errors"
)

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts a polyhedron to indented JSON bytes.
func Marshal(p *Polyhedron) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a polyhedron as JSON to an io.Writer.
func Write(p *Polyhedron, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a polyhedron to a JSON file with 0644 permissions.
func WriteFile(p *Polyhedron, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(p, f)
}

// Read decodes and validates a polyhedron from an io.Reader.
// Decoding failures are INVALID_FORMAT errors; structural problems are
// MALFORMED_INPUT errors from Validate.
func Read(r io.Reader) (*Polyhedron, error) {
	var p Polyhedron
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode polyhedron")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReadFile reads a polyhedron from a JSON file.
func ReadFile(path string) (*Polyhedron, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "polyhedron file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
