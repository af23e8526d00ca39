package unfold

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/polyhedron"
)

// SchemaVersion is written on records produced by Reconstruct.
const SchemaVersion = 2

// maxRecordLine bounds a single JSONL line.
const maxRecordLine = 16 << 20

// RecordFace is one face of an unfolding record. EdgeID is the edge the face
// is attached by and is nil on the root. Geometry is carried through
// untouched.
type RecordFace struct {
	FaceID   int      `json:"face_id"`
	Gon      int      `json:"gon"`
	EdgeID   *int     `json:"edge_id,omitempty"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	AngleDeg *float64 `json:"angle_deg,omitempty"`
}

// Source records where an expanded record came from.
type Source struct {
	InputFile        string    `json:"input_file,omitempty"`
	InputRecordIndex int       `json:"input_record_index"`
	Variant          Chirality `json:"isomorphism_variant"`
}

// Record is one unfolding in the JSONL interchange format. ExactOverlap is
// an opaque payload produced by the geometric stage and is copied verbatim.
type Record struct {
	SchemaVersion int             `json:"schema_version,omitempty"`
	Faces         []RecordFace    `json:"faces"`
	ExactOverlap  json.RawMessage `json:"exact_overlap,omitempty"`
	Source        *Source         `json:"source,omitempty"`
}

// Steps converts the record into (face, incoming edge) steps. Every face
// after the root must carry an edge id.
func (r *Record) Steps() ([]Step, error) {
	steps := make([]Step, len(r.Faces))
	for i, f := range r.Faces {
		steps[i] = Step{Face: f.FaceID, Edge: NoEdge}
		if i == 0 {
			continue
		}
		if f.EdgeID == nil {
			return nil, errors.Malformed("record face %d (face_id %d) has no edge_id", i, f.FaceID)
		}
		steps[i].Edge = *f.EdgeID
	}
	return steps, nil
}

// FaceSequence returns the face ids in visiting order.
func (r *Record) FaceSequence() FaceSequence {
	faces := make(FaceSequence, len(r.Faces))
	for i, f := range r.Faces {
		faces[i] = f.FaceID
	}
	return faces
}

// EdgeSet returns the sorted, deduplicated incoming edge ids of a record:
// the cut edges of the spanning tree the unfolding was cut from.
func EdgeSet(r *Record) []int {
	edges := make([]int, 0, len(r.Faces))
	for _, f := range r.Faces {
		if f.EdgeID != nil {
			edges = append(edges, *f.EdgeID)
		}
	}
	slices.Sort(edges)
	return slices.Compact(edges)
}

// Reconstruct rebuilds a full record for a face path found on p. The edge
// between consecutive faces is their unique shared edge. Geometry is copied
// by position from src, and src's exact_overlap payload is kept.
func Reconstruct(p *polyhedron.Polyhedron, faces FaceSequence, src *Record, index int, variant Chirality) (*Record, error) {
	out := &Record{
		SchemaVersion: SchemaVersion,
		Faces:         make([]RecordFace, len(faces)),
		Source:        &Source{InputRecordIndex: index, Variant: variant},
	}
	if src != nil {
		out.ExactOverlap = slices.Clone(src.ExactOverlap)
		if src.Source != nil {
			out.Source.InputFile = src.Source.InputFile
		}
	}

	for i, id := range faces {
		if id < 0 || id >= p.NumFaces() {
			return nil, errors.Malformed("face %d out of range", id)
		}
		rf := RecordFace{FaceID: id, Gon: p.Faces[id].Gon}
		if i > 0 {
			e, err := SharedEdge(p, faces[i-1], id)
			if err != nil {
				return nil, err
			}
			rf.EdgeID = &e
		}
		if src != nil && i < len(src.Faces) {
			sf := src.Faces[i]
			rf.X, rf.Y, rf.AngleDeg = sf.X, sf.Y, sf.AngleDeg
		}
		out.Faces[i] = rf
	}
	return out, nil
}

// ExpandRecord expands one canonical record into every isomorphic record,
// standard matches first. index is the record's position in its input and is
// written to each result's provenance.
func ExpandRecord(ctx context.Context, p *polyhedron.Polyhedron, rec *Record, index int) ([]*Record, error) {
	steps, err := rec.Steps()
	if err != nil {
		return nil, err
	}
	exp, err := Expand(ctx, p, steps)
	if err != nil {
		return nil, err
	}
	out := make([]*Record, 0, len(exp.Matches))
	for _, m := range exp.Matches {
		r, err := Reconstruct(p, m.Faces, rec, index, m.Chirality)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ReadRecords decodes JSONL records, one per non-blank line.
func ReadRecords(r io.Reader) ([]*Record, error) {
	var records []*Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordLine)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		if len(rec.Faces) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: record has no faces", line)
		}
		records = append(records, &rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return records, nil
}

// ReadRecordsFile reads JSONL records from path.
func ReadRecordsFile(path string) ([]*Record, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// WriteRecords encodes records as JSONL.
func WriteRecords(w io.Writer, records []*Record) error {
	enc := json.NewEncoder(w)
	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

// WriteRecordsFile writes JSONL records to path.
func WriteRecordsFile(path string, records []*Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteRecords(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
