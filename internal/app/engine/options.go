package engine

import (
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/tape"
)

// Options represents configuration options for the Engine.
type Options struct {
	// EventLogPath is where deterministic mode journals. When empty the
	// engine derives logs/events-<run id>.log.
	EventLogPath string
	// TapeCapacity bounds each per-symbol trade tape.
	TapeCapacity int
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		TapeCapacity: tape.DefaultCapacity,
	}
}
