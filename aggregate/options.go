package aggregate

import (
	"fmt"
	"log/slog"
)

// Strategy selects how a worker maps names to their aggregation state.
type Strategy int

const (
	// StrategyRadix walks a per-segment radix tree directly over the
	// mapped bytes.
	StrategyRadix Strategy = iota
	// StrategyHash hashes every name into a swiss map.
	StrategyHash
)

func (s Strategy) String() string {
	switch s {
	case StrategyRadix:
		return "radix"
	case StrategyHash:
		return "hash"
	}
	return "unknown"
}

func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "radix":
		return StrategyRadix, nil
	case "hash":
		return StrategyHash, nil
	default:
		return StrategyRadix, fmt.Errorf("unsupported strategy: %s", s)
	}
}

type Option func(*Runner) *Runner

// WithSegments sets the desired number of segments. Values below one fall
// back to the default.
func WithSegments(n int) Option {
	return func(r *Runner) *Runner {
		if n > 0 {
			r.segments = n
		}
		return r
	}
}

func WithStrategy(s Strategy) Option {
	return func(r *Runner) *Runner {
		r.strategy = s
		return r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) *Runner {
		r.logger = logger
		return r
	}
}
