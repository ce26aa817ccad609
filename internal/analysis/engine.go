package analysis

import (
	"github.com/marcoviero/daily-diary/internal/service"
)

// Default analysis parameters.
const (
	DefaultMinDays    = 7
	DefaultMaxLagDays = 3
)

// Options configures the analysis engine. Zero values select defaults.
type Options struct {
	// MinDays is the minimum number of recorded days required to build a
	// feature table. Below it every analysis returns no findings.
	MinDays int
	// MaxLagDays is the largest factor shift tested by the lag analyzer.
	MaxLagDays int
}

// Engine runs all analyses over a storage collaborator. It holds no mutable
// state between calls; methods are safe for concurrent use as long as the
// storage supports concurrent reads.
type Engine struct {
	store service.Storage
	opts  Options
}

// NewEngine creates an analysis engine over the given storage.
func NewEngine(store service.Storage, opts Options) *Engine {
	if opts.MinDays <= 0 {
		opts.MinDays = DefaultMinDays
	}
	if opts.MaxLagDays <= 0 {
		opts.MaxLagDays = DefaultMaxLagDays
	}
	return &Engine{store: store, opts: opts}
}
