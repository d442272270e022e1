package testdiff

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/parsetest/pkg/testlog"
)

// Side is one parsed log of a comparison.
type Side struct {
	Path    string
	Results testlog.OutcomeMapping
	Stats   testlog.Stats
}

// Comparison holds both parsed logs and their diff.
type Comparison struct {
	Baseline Side
	Current  Side
	Diff     TransitionMapping
}

// DiffFiles parses both logs concurrently and diffs them. If either log
// cannot be read, no comparison is returned.
func DiffFiles(ctx context.Context, baseline, current string, opts testlog.ParseOptions) (*Comparison, error) {
	cmp := &Comparison{
		Baseline: Side{Path: baseline},
		Current:  Side{Path: current},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, side := range []*Side{&cmp.Baseline, &cmp.Current} {
		g.Go(func() error {
			results, stats, err := testlog.ParseFile(gctx, side.Path, opts)
			if err != nil {
				return err
			}
			side.Results = results
			side.Stats = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp.Diff = Diff(cmp.Baseline.Results, cmp.Current.Results)
	return cmp, nil
}
