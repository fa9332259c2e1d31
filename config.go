package segal

import (
	"fmt"

	"go.uber.org/multierr"
)

// Default window parameters, matching the block's constructor defaults.
const (
	DefaultWindowSize = 2
	DefaultStep       = 1
)

// Config holds the parameters fixed for the lifetime of a window block.
type Config struct {
	// WindowSize is the number of samples in every emitted window.
	WindowSize int

	// Step is the stream distance between the first samples of
	// consecutive windows. Step < WindowSize overlaps windows,
	// Step == WindowSize tiles them, Step > WindowSize skips samples
	// between them.
	Step int
}

// DefaultConfig returns a Config with WindowSize 2 and Step 1.
func DefaultConfig() Config {
	return Config{
		WindowSize: DefaultWindowSize,
		Step:       DefaultStep,
	}
}

// Validate reports every invalid field of the config. The returned error
// combines one *ConfigError per violation, so errors.Is works against
// ErrInvalidWindowSize and ErrInvalidStep independently.
func (c Config) Validate() error {
	var err error
	if c.WindowSize < 1 {
		err = multierr.Append(err, newConfigError("window size", c.WindowSize, ErrInvalidWindowSize))
	}
	if c.Step < 1 {
		err = multierr.Append(err, newConfigError("step", c.Step, ErrInvalidStep))
	}
	return err
}

func (c Config) String() string {
	return fmt.Sprintf("window=%d step=%d", c.WindowSize, c.Step)
}

// Rate is an output/input item ratio declared to a scheduler.
type Rate struct {
	Out int
	In  int
}

// Float64 returns the ratio as output items per input item.
func (r Rate) Float64() float64 {
	if r.In == 0 {
		return 0
	}
	return float64(r.Out) / float64(r.In)
}

func (r Rate) String() string {
	return fmt.Sprintf("%d/%d", r.Out, r.In)
}

// Metadata is the static contract a block declares to the host that drives
// it. A host sizes its buffers from these values; a block must never
// produce output that contradicts them.
type Metadata struct {
	// History is the number of input samples the host keeps visible to the
	// block on each call, including the first new sample.
	History int

	// SampleDelay is the declared delay, in samples, between input and
	// output for tag propagation.
	SampleDelay int

	// OutputMultiple is the granularity of output buffers handed to Work.
	OutputMultiple int

	// MinOutputItems is the smallest output buffer worth calling Work with.
	MinOutputItems int

	// RelativeRate is the ratio of output samples to consumed input samples.
	RelativeRate Rate
}
