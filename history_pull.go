package segal

var _ Block = (*HistoryWindow)(nil)

// HistoryWindow is the history-pull window block. The host supplies, on
// every call, a view starting at the oldest unconsumed sample; the block
// consumes only the samples no later window starts in, so the rest is
// replayed as history on the next call.
type HistoryWindow struct {
	name string
	cfg  Config
	skip int
}

// NewHistoryWindow creates a window block that reads from a host-kept
// history view instead of buffering input itself.
//
// When to use:
//   - The host already keeps unconsumed input around between calls
//   - Declared rate and history metadata are needed to size buffers
//   - Arbitrary Step values, including non-overlapping windows
//
// Example:
//
//	block, err := segal.NewHistoryWindow(segal.Config{WindowSize: 3, Step: 1})
//	if err != nil {
//		return err
//	}
//
//	out := make([]float32, 9)
//	consumed, produced := block.Work([]float32{0, 1, 2, 3, 4}, out)
//	// consumed == 3, produced == 9
//	// out == [0 1 2 1 2 3 2 3 4]
//	// the host re-offers [3 4] on the next call
//
// Parameters:
//   - cfg: Window size and step, both at least 1
//
// Returns the block, or the Config.Validate error.
func NewHistoryWindow(cfg Config) (*HistoryWindow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &HistoryWindow{
		name: "history-window",
		cfg:  cfg,
	}, nil
}

// Work copies as many whole windows from view into out as both allow.
//
// Any stride left over from the previous call (Step > WindowSize) is
// discarded from the front of view first and counted as consumed.
func (h *HistoryWindow) Work(view, out []float32) (consumed, produced int) {
	if h.skip > 0 {
		dropped := min(h.skip, len(view))
		h.skip -= dropped
		consumed = dropped
		view = view[dropped:]
		if h.skip > 0 {
			return consumed, 0
		}
	}

	e := Plan(len(view), len(out), h.cfg)
	CopyWindows(view, out, e, h.cfg)
	h.skip = e.Skip

	return consumed + e.Advance, e.Produced(h.cfg)
}

// Metadata declares a history of WindowSize+1 samples, a sample delay of
// Step, output in multiples of WindowSize and a relative rate of
// WindowSize/Step.
func (h *HistoryWindow) Metadata() Metadata {
	return Metadata{
		History:        h.cfg.WindowSize + 1,
		SampleDelay:    h.cfg.Step,
		OutputMultiple: h.cfg.WindowSize,
		MinOutputItems: h.cfg.WindowSize,
		RelativeRate:   Rate{Out: h.cfg.WindowSize, In: h.cfg.Step},
	}
}

func (h *HistoryWindow) Config() Config {
	return h.cfg
}

func (h *HistoryWindow) Name() string {
	return h.name
}
