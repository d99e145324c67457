package aggregate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"brc/segment"

	"golang.org/x/exp/mmap"
	"golang.org/x/sync/errgroup"
)

// Segments per CPU. Extra segments even out workers that got longer lines.
const DEFAULT_SEGMENT_FACTOR = 10

// Runner computes per-name min/mean/max over one measurements file.
type Runner struct {
	path     string
	segments int
	strategy Strategy
	logger   *slog.Logger
}

// Summary is the outcome of a successful run.
type Summary struct {
	Result  Result
	Workers []WorkerStat
}

func NewRunner(path string, options ...Option) *Runner {
	r := &Runner{
		path:     path,
		segments: runtime.NumCPU() * DEFAULT_SEGMENT_FACTOR,
		strategy: StrategyRadix,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		r = opt(r)
	}
	return r
}

// Run splits the file into line aligned segments, aggregates each one in
// its own goroutine and merges the results once every worker is done. Any
// worker failure fails the whole run.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	segments, err := r.plan()
	if err != nil {
		return nil, err
	}

	lists := make([][]Entry, len(segments))
	workers := make([]WorkerStat, len(segments))

	eg, ectx := errgroup.WithContext(ctx)
	for i, seg := range segments {
		i, seg := i, seg
		eg.Go(func() error {
			// Segments that have not started yet are skipped once another
			// worker failed; running ones are never interrupted.
			if err := ectx.Err(); err != nil {
				return err
			}

			start := time.Now()
			agg, err := runWorker(r.path, seg, r.strategy)
			if err != nil {
				return err
			}
			lists[i] = agg.entries()
			workers[i] = WorkerStat{
				Segment:  seg,
				Names:    len(lists[i]),
				Nodes:    agg.nodes(),
				Duration: time.Since(start),
			}

			r.logger.Debug(
				"segment aggregated",
				slog.Int("segment", i),
				slog.Int64("bytes", seg.Len()),
				slog.Int("names", workers[i].Names),
				slog.Duration("elapsed", workers[i].Duration),
			)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("unable to aggregate %s: %w", r.path, err)
	}

	return &Summary{
		Result:  Merge(lists...),
		Workers: workers,
	}, nil
}

func (r *Runner) plan() ([]segment.Segment, error) {
	reader, err := mmap.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", r.path, err)
	}
	defer reader.Close()

	size := int64(reader.Len())
	segments, err := segment.Plan(reader, size, r.segments)
	if err != nil {
		return nil, fmt.Errorf("unable to plan segments: %w", err)
	}

	r.logger.Debug(
		"planned segments",
		slog.String("file", r.path),
		slog.Int64("size", size),
		slog.Int("desired", r.segments),
		slog.Int("segments", len(segments)),
		slog.String("strategy", r.strategy.String()),
	)
	return segments, nil
}
