package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	layout "github.com/grindlemire/go-layout"
)

// benchOptions shapes one layoutbench run.
type benchOptions struct {
	Depth     int
	Fanout    int
	Mutations int
	Trees     int
	Seed      uint64
	Width     float64
	Height    float64
}

func (o benchOptions) validate() error {
	switch {
	case o.Depth < 1:
		return fmt.Errorf("depth must be at least 1")
	case o.Fanout < 1:
		return fmt.Errorf("fanout must be at least 1")
	case o.Mutations < 0:
		return fmt.Errorf("mutations cannot be negative")
	case o.Trees < 1:
		return fmt.Errorf("trees must be at least 1")
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("viewport must be positive, got %gx%g", o.Width, o.Height)
	}
	return nil
}

// treeResult is the outcome of driving one tree.
type treeResult struct {
	Index   int
	Nodes   int
	Stats   layout.Stats
	Elapsed time.Duration
	Errors  int
}

// runBench drives opts.Trees independent trees in parallel. Each tree gets
// its own goroutine, dispatcher and scheduler.
func runBench(ctx context.Context, opts benchOptions, cfg layout.Config, logger *log.Logger) ([]treeResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	results := make([]treeResult, opts.Trees)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < opts.Trees; i++ {
		g.Go(func() error {
			r, err := runTree(ctx, i, opts, cfg, logger.With("tree", i))
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runTree must run on its own goroutine: the dispatcher it creates is
// owned by the caller.
func runTree(ctx context.Context, index int, opts benchOptions, cfg layout.Config, logger *log.Logger) (treeResult, error) {
	d, err := layout.NewDispatcher()
	if err != nil {
		return treeResult{}, err
	}

	result := treeResult{Index: index}
	s, err := layout.NewScheduler(d,
		layout.WithConfig(cfg),
		layout.WithLogger(logger),
		layout.WithErrorHandler(func(err error) {
			result.Errors++
			logger.Warn("pass failed", "err", err)
		}),
	)
	if err != nil {
		return result, err
	}
	defer s.Close()

	rng := rand.New(rand.NewPCG(opts.Seed, uint64(index)))
	root := buildTree(rng, opts.Depth, opts.Fanout)

	start := time.Now()
	root.Mount(s, layout.Size{Width: opts.Width, Height: opts.Height})
	d.RunPending()

	for i := 0; i < opts.Mutations; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		mutate(rng, root)
		// Let a few mutations accumulate between passes.
		if i%8 == 7 {
			d.RunPending()
		}
	}
	if err := s.RunToQuiescence(ctx); err != nil {
		return result, err
	}
	d.RunPending()

	result.Elapsed = time.Since(start)
	result.Stats = s.Stats()
	root.Walk(func(*layout.Element) { result.Nodes++ })
	logger.Debug("tree drained", "nodes", result.Nodes, "passes", result.Stats.Passes, "elapsed", result.Elapsed)
	return result, nil
}

// buildTree returns a tree depth levels deep with fanout children per
// interior node. Leaves get random intrinsic sizes; directions alternate
// by level.
func buildTree(rng *rand.Rand, depth, fanout int) *layout.Element {
	var build func(level int) *layout.Element
	build = func(level int) *layout.Element {
		dir := layout.Column
		if level%2 == 1 {
			dir = layout.Row
		}
		if level == depth-1 {
			return layout.New(layout.WithIntrinsicSize(randSize(rng)))
		}
		e := layout.New(layout.WithDirection(dir), layout.WithGap(1), layout.WithPadding(1))
		for i := 0; i < fanout; i++ {
			e.AddChild(build(level + 1))
		}
		return e
	}
	return build(0)
}

func randSize(rng *rand.Rand) (float64, float64) {
	return float64(1 + rng.IntN(20)), float64(1 + rng.IntN(4))
}

// mutate applies one random change somewhere under root.
func mutate(rng *rand.Rand, root *layout.Element) {
	var nodes []*layout.Element
	root.Walk(func(e *layout.Element) { nodes = append(nodes, e) })
	target := nodes[rng.IntN(len(nodes))]

	switch rng.IntN(5) {
	case 0, 1:
		w, h := randSize(rng)
		target.SetIntrinsicSize(layout.Size{Width: w, Height: h})
	case 2:
		if target != root {
			target.SetVisible(!target.Visible())
		}
	case 3:
		target.AddChild(layout.New(layout.WithIntrinsicSize(randSize(rng))))
	case 4:
		if children := target.Children(); len(children) > 0 {
			target.RemoveChild(children[rng.IntN(len(children))])
		} else {
			target.InvalidateArrange()
		}
	}
}
