package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"brc/aggregate"

	"github.com/fatih/color"
	"github.com/jamiealquiza/tachymeter"
	"github.com/pkg/profile"
	"github.com/rodaine/table"
)

var (
	filePath string
	strategy string
	segments int
	factor   int
	format   string
	stats    bool
	cpuProf  bool
	debug    bool
)

func init() {
	flag.StringVar(&filePath, "filePath", "measurements.txt", "measurements file")
	flag.StringVar(&strategy, "strategy", "radix", "aggregation strategy (radix or hash)")
	flag.IntVar(&segments, "segments", 0, "number of segments, 0 derives it from -factor")
	flag.IntVar(&factor, "factor", aggregate.DEFAULT_SEGMENT_FACTOR, "segments per cpu")
	flag.StringVar(&format, "format", "text", "output format (text or table)")
	flag.BoolVar(&stats, "stats", false, "print per segment timings to stderr")
	flag.BoolVar(&cpuProf, "profile", false, "profile cpu")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.Parse()
}

func main() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, opts))

	if err := run(logger); err != nil {
		logger.Error("run failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if cpuProf {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	s, err := aggregate.ParseStrategy(strategy)
	if err != nil {
		return err
	}
	if format != "text" && format != "table" {
		return fmt.Errorf("unsupported format: %s", format)
	}
	if segments <= 0 {
		segments = runtime.NumCPU() * max(factor, 1)
	}

	t := time.Now()
	summary, err := aggregate.NewRunner(
		filePath,
		aggregate.WithSegments(segments),
		aggregate.WithStrategy(s),
		aggregate.WithLogger(logger),
	).Run(context.Background())
	if err != nil {
		return err
	}

	switch format {
	case "table":
		summary.Result.WriteTable(os.Stdout)
	default:
		fmt.Println(summary.Result)
	}

	logger.Info(
		"done",
		slog.Int("names", len(summary.Result)),
		slog.Int("segments", len(summary.Workers)),
		slog.Duration("elapsed", time.Since(t)),
	)

	if stats {
		printStats(summary.Workers)
	}
	return nil
}

func printStats(workers []aggregate.WorkerStat) {
	if len(workers) == 0 {
		return
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.
		New("Segment", "Bytes", "Names", "Nodes", "Elapsed").
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt).
		WithWriter(os.Stderr)

	tm := tachymeter.New(&tachymeter.Config{Size: len(workers)})
	for i, w := range workers {
		tm.AddTime(w.Duration)
		tbl.AddRow(i, w.Segment.Len(), w.Names, w.Nodes, w.Duration)
	}
	tbl.Print()

	m := tm.Calc()
	fmt.Fprintln(os.Stderr)
	table.
		New("Workers", "Min", "P50", "P99", "Max").
		WithHeaderFormatter(headerFmt).
		WithWriter(os.Stderr).
		AddRow(m.Count, m.Time.Min, m.Time.P50, m.Time.P99, m.Time.Max).
		Print()
}
