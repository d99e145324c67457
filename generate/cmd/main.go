package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"brc/generate"
)

var (
	rows     int
	stations int
	seed     int64
	crlf     bool
	out      string
)

func init() {
	flag.IntVar(&rows, "rows", 1_000_000, "number of records")
	flag.IntVar(&stations, "stations", 413, "number of distinct station names")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.BoolVar(&crlf, "crlf", false, "end lines with \\r\\n")
	flag.StringVar(&out, "out", "measurements.txt", "output file")
	flag.Parse()
}

func main() {
	if err := run(); err != nil {
		slog.Error("unable to generate measurements", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", out, err)
	}
	defer f.Close()

	t := time.Now()
	err = generate.Write(f, generate.Config{
		Rows:     rows,
		Stations: stations,
		Seed:     seed,
		CRLF:     crlf,
	})
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close %s: %w", out, err)
	}

	slog.Info(
		"generated measurements",
		slog.String("file", out),
		slog.Int("rows", rows),
		slog.Int64("seed", seed),
		slog.Duration("elapsed", time.Since(t)),
	)
	return nil
}
