// Package pipeline runs polyfold's stages with caching and logging.
//
// The same runner backs the CLI and the HTTP API, so both get identical
// caching, logging and timeout behavior.
//
// # Stages
//
//  1. Skeleton: reconstruct vertices and the edge graph of a polyhedron
//  2. Automorphisms: enumerate the skeleton's automorphism group and derive
//     edge permutations and zero flags
//  3. Expand: expand canonical unfolding records into every isomorphic
//     record, fanned out over a worker pool
//
// Each stage can be run on its own. Every result carries a run ID.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	sk, err := runner.Skeleton(ctx, poly)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	auto, err := runner.Automorphisms(ctx, sk.Reconstruction.Graph, pipeline.Options{})
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/polyfold/polyfold/pkg/skeleton"
	"github.com/polyfold/polyfold/pkg/symmetry"
	"github.com/polyfold/polyfold/pkg/unfold"
)

// ArtifactVersion is part of every automorphism cache key. Bump it when the
// shape of symmetry.Result changes.
const ArtifactVersion = 1

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures the automorphism and expansion stages.
type Options struct {
	// Timeout bounds a single search; 0 means unbounded.
	Timeout time.Duration `json:"timeout,omitempty"`

	// Workers is the number of records expanded in parallel; 0 means one per CPU.
	Workers int `json:"workers,omitempty"`

	// Dedupe drops repeated face paths from each record's expansion.
	Dedupe bool `json:"dedupe,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Progress, if set, receives automorphism search progress: first-vertex
	// images tried, images in total, automorphisms found.
	Progress func(done, total, found int) `json:"-"`
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate rejects negative limits.
func (o *Options) Validate() error {
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", o.Timeout)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", o.Workers)
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// SkeletonResult is the output of the skeleton stage.
type SkeletonResult struct {
	RunID          string
	PolyHash       string
	Reconstruction *skeleton.Reconstruction
	Duration       time.Duration
	CacheHit       bool
}

// AutomorphismResult is the output of the automorphism stage.
type AutomorphismResult struct {
	RunID     string
	GraphHash string
	Result    *symmetry.Result
	Duration  time.Duration
	CacheHit  bool
}

// ExpandResult is the output of the expansion stage. Records are grouped
// by input record, in input order.
type ExpandResult struct {
	RunID     string
	Records   []*unfold.Record
	Inputs    int
	CacheHits int
	Duration  time.Duration
}

func newRunID() string { return uuid.NewString() }
