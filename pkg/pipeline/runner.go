package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/polyfold/polyfold/pkg/cache"
	perrors "github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/observability"
	"github.com/polyfold/polyfold/pkg/polyhedron"
	"github.com/polyfold/polyfold/pkg/skeleton"
	"github.com/polyfold/polyfold/pkg/symmetry"
	"github.com/polyfold/polyfold/pkg/unfold"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to every entry the runner writes.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Skeleton reconstructs the vertices and edge graph of p.
func (r *Runner) Skeleton(ctx context.Context, p *polyhedron.Polyhedron) (*SkeletonResult, error) {
	start := time.Now()
	observability.Pipeline().OnReconstructStart(ctx, p.NumFaces())

	hash, err := cache.HashJSON(p)
	if err != nil {
		return nil, err
	}
	res := &SkeletonResult{RunID: newRunID(), PolyHash: hash}
	key := r.Keyer.SkeletonKey(hash)

	var rec skeleton.Reconstruction
	if r.get(ctx, "skeleton", key, &rec, false) {
		res.Reconstruction = &rec
		res.CacheHit = true
	} else {
		res.Reconstruction, err = skeleton.Reconstruct(p)
		if err != nil {
			observability.Pipeline().OnReconstructComplete(ctx, 0, 0, time.Since(start), err)
			return nil, err
		}
		r.set(ctx, "skeleton", key, res.Reconstruction)
	}
	res.Duration = time.Since(start)

	g := res.Reconstruction.Graph
	observability.Pipeline().OnReconstructComplete(ctx, g.NumVertices, g.NumEdges(), res.Duration, nil)
	r.Logger.Info("reconstructed skeleton",
		"vertices", g.NumVertices,
		"edges", g.NumEdges(),
		"faces", res.Reconstruction.NumFaces,
		"euler", res.Reconstruction.EulerCharacteristic(),
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

// Automorphisms analyzes the automorphism group of g.
func (r *Runner) Automorphisms(ctx context.Context, g *skeleton.Graph, opts Options) (*AutomorphismResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	opts.SetDefaults()

	start := time.Now()
	observability.Pipeline().OnAutomorphismsStart(ctx, g.NumVertices)

	hash, err := cache.HashJSON(g)
	if err != nil {
		return nil, err
	}
	res := &AutomorphismResult{RunID: newRunID(), GraphHash: hash}
	key := r.Keyer.AutomorphismKey(hash, cache.AutomorphismKeyOpts{Version: ArtifactVersion})

	var cached symmetry.Result
	if r.get(ctx, "automorphisms", key, &cached, opts.Refresh) {
		res.Result = &cached
		res.CacheHit = true
	} else {
		searchCtx, cancel := withTimeout(ctx, opts.Timeout)
		defer cancel()
		search := symmetry.Search{Progress: func(done, total, found int) {
			opts.Logger.Debug("automorphism branch", "done", done, "total", total, "found", found)
			if opts.Progress != nil {
				opts.Progress(done, total, found)
			}
		}}
		res.Result, err = search.Analyze(searchCtx, g)
		if err != nil {
			observability.Pipeline().OnAutomorphismsComplete(ctx, 0, time.Since(start), err)
			return nil, err
		}
		r.set(ctx, "automorphisms", key, res.Result)
	}
	res.Duration = time.Since(start)

	observability.Pipeline().OnAutomorphismsComplete(ctx, res.Result.GroupOrder(), res.Duration, nil)
	r.Logger.Info("enumerated automorphisms",
		"order", res.Result.GroupOrder(),
		"zero", res.Result.ZeroCount(),
		"cached", res.CacheHit,
		"duration", res.Duration)
	for _, w := range res.Result.Warnings {
		r.Logger.Warn(w.Message, "code", w.Code)
	}
	return res, nil
}

// Expand expands every canonical record on p over a pool of workers. The
// first failing record cancels the rest and its error is returned.
func (r *Runner) Expand(ctx context.Context, p *polyhedron.Polyhedron, records []*unfold.Record, opts Options) (*ExpandResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	opts.SetDefaults()

	start := time.Now()
	observability.Pipeline().OnExpandStart(ctx, len(records))

	polyHash, err := cache.HashJSON(p)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()
	ex := &expander{
		runner:   r,
		ctx:      ctx,
		cancel:   cancel,
		opts:     opts,
		poly:     p,
		polyHash: polyHash,
		jobs:     make(chan int),
		outputs:  make([][]*unfold.Record, len(records)),
		records:  records,
	}
	if err := ex.run(); err != nil {
		observability.Pipeline().OnExpandComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}

	res := &ExpandResult{RunID: newRunID(), Inputs: len(records), CacheHits: ex.hits}
	for _, out := range ex.outputs {
		res.Records = append(res.Records, out...)
	}
	res.Duration = time.Since(start)

	observability.Pipeline().OnExpandComplete(ctx, len(res.Records), res.Duration, nil)
	r.Logger.Info("expanded unfoldings",
		"inputs", res.Inputs,
		"outputs", len(res.Records),
		"cached", res.CacheHits,
		"duration", res.Duration)
	return res, nil
}

// expander fans record indices out to workers; outputs[i] belongs to
// records[i] so the result order does not depend on scheduling.
type expander struct {
	runner   *Runner
	ctx      context.Context
	cancel   context.CancelFunc
	opts     Options
	poly     *polyhedron.Polyhedron
	polyHash string

	records []*unfold.Record
	outputs [][]*unfold.Record
	jobs    chan int
	wg      sync.WaitGroup

	mu   sync.Mutex
	err  error
	hits int
}

func (e *expander) run() error {
	for range min(e.opts.Workers, max(len(e.records), 1)) {
		e.wg.Add(1)
		go e.worker()
	}

feed:
	for i := range e.records {
		select {
		case e.jobs <- i:
		case <-e.ctx.Done():
			break feed
		}
	}
	close(e.jobs)
	e.wg.Wait()

	if e.err != nil {
		return e.err
	}
	if err := e.ctx.Err(); err != nil {
		return perrors.Wrap(perrors.ErrCodeTimeout, err, "expansion stopped")
	}
	return nil
}

func (e *expander) worker() {
	defer e.wg.Done()
	for i := range e.jobs {
		if e.ctx.Err() != nil {
			continue
		}
		out, hit, err := e.expand(i)
		e.mu.Lock()
		if err != nil && e.err == nil {
			e.err = fmt.Errorf("record %d: %w", i, err)
			e.cancel()
		}
		if hit {
			e.hits++
		}
		e.mu.Unlock()
		e.outputs[i] = out
	}
}

func (e *expander) expand(i int) ([]*unfold.Record, bool, error) {
	recHash, err := cache.HashJSON(struct {
		Index  int            `json:"index"`
		Record *unfold.Record `json:"record"`
		Dedupe bool           `json:"dedupe"`
	}{i, e.records[i], e.opts.Dedupe})
	if err != nil {
		return nil, false, err
	}
	key := e.runner.Keyer.ExpansionKey(e.polyHash, recHash)

	var cached []*unfold.Record
	if e.runner.get(e.ctx, "expand", key, &cached, e.opts.Refresh) {
		return cached, true, nil
	}

	out, err := unfold.ExpandRecord(e.ctx, e.poly, e.records[i], i)
	if err != nil {
		return nil, false, err
	}
	if e.opts.Dedupe {
		out = unfold.DedupeRecords(out)
	}
	e.opts.Logger.Debug("expanded record", "index", i, "results", len(out))
	e.runner.set(e.ctx, "expand", key, out)
	return out, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads a cached JSON value, reporting a hit. Backend errors are logged
// and treated as misses.
func (r *Runner) get(ctx context.Context, keyType, key string, v any, refresh bool) bool {
	if refresh {
		return false
	}
	err := cache.GetJSON(ctx, r.Cache, key, v)
	switch {
	case err == nil:
		observability.Cache().OnCacheHit(ctx, keyType)
		return true
	case !errors.Is(err, cache.ErrCacheMiss):
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return false
}

// set writes a JSON value to the cache. Failures are logged, never returned.
func (r *Runner) set(ctx context.Context, keyType, key string, v any) {
	size, err := cache.SetJSON(ctx, r.Cache, key, v, r.TTL)
	if err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, size)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
