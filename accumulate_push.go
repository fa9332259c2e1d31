package segal

import (
	"github.com/eapache/queue"
)

var _ Block = (*PushWindow)(nil)

// PushWindow is the accumulate-push window block. It consumes every input
// sample it is handed into a retention buffer it owns, emits as many
// windows as the output allows and trims Step samples from the front of
// the buffer after each one.
type PushWindow struct {
	buf  *queue.Queue
	name string
	cfg  Config
	skip int
}

// NewPushWindow creates a window block that owns its backlog.
// The host does not need to keep or replay any input: Work always reports
// the whole input as consumed.
//
// When to use:
//   - The host cannot replay unconsumed input
//   - Interpolating hosts that feed one chunk and expect WindowSize output
//     samples per input sample
//
// Example:
//
//	block, err := segal.NewPushWindow(segal.Config{WindowSize: 3, Step: 1})
//	if err != nil {
//		return err
//	}
//
//	out := make([]float32, 9)
//	_, produced := block.Work([]float32{0, 1}, out)
//	// produced == 0, block.Buffered() == 2
//	_, produced = block.Work([]float32{2, 3, 4}, out)
//	// produced == 9, out == [0 1 2 1 2 3 2 3 4]
//
// Parameters:
//   - cfg: Window size and step, both at least 1. Step 1 gives an
//     interpolation factor of WindowSize.
//
// Returns the block, or the Config.Validate error.
func NewPushWindow(cfg Config) (*PushWindow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PushWindow{
		buf:  queue.New(),
		name: "push-window",
		cfg:  cfg,
	}, nil
}

// Work appends in to the retention buffer and drains windows into out.
// consumed is always len(in).
func (p *PushWindow) Work(in, out []float32) (consumed, produced int) {
	for _, s := range in {
		if p.skip > 0 {
			p.skip--
			continue
		}
		p.buf.Add(s)
	}

	npos := 0
	for npos <= len(out)-p.cfg.WindowSize {
		if p.buf.Length() < p.cfg.WindowSize {
			break
		}
		for i := 0; i < p.cfg.WindowSize; i++ {
			out[npos+i] = p.buf.Get(i).(float32)
		}
		npos += p.cfg.WindowSize

		trim := min(p.cfg.Step, p.buf.Length())
		for i := 0; i < trim; i++ {
			p.buf.Remove()
		}
		// Samples of the stride not buffered yet are dropped on arrival.
		p.skip = p.cfg.Step - trim
	}

	return len(in), npos
}

// Buffered returns the number of samples held in the retention buffer.
func (p *PushWindow) Buffered() int {
	return p.buf.Length()
}

// Metadata declares no history and an interpolation of WindowSize output
// samples per Step input samples.
func (p *PushWindow) Metadata() Metadata {
	return Metadata{
		History:        1,
		OutputMultiple: p.cfg.WindowSize,
		MinOutputItems: p.cfg.WindowSize,
		RelativeRate:   Rate{Out: p.cfg.WindowSize, In: p.cfg.Step},
	}
}

func (p *PushWindow) Config() Config {
	return p.cfg
}

func (p *PushWindow) Name() string {
	return p.name
}
