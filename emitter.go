package segal

// Emission is the outcome of planning one Work call.
type Emission struct {
	// Windows is the number of whole windows that fit both the output
	// capacity and the available input.
	Windows int

	// Advance is the number of input samples consumed by those windows.
	Advance int

	// Skip is the part of the last stride that lies past the available
	// input. It is non-zero only when Step > WindowSize, and those samples
	// must be discarded from future input before the next window starts.
	Skip int
}

// Produced returns the number of output samples the emission fills.
func (e Emission) Produced(cfg Config) int {
	return e.Windows * cfg.WindowSize
}

// Plan computes how many windows can be emitted from avail input samples
// into an output buffer with room for capacity samples.
//
// Window k starts at input offset k*Step. A window is only counted when all
// of its WindowSize samples are available and its output slot fits whole,
// so a partial window is never planned. Plan is total: an invalid config,
// a short input or a short output all yield the zero Emission.
//
// Example:
//
//	e := segal.Plan(5, 9, segal.Config{WindowSize: 3, Step: 1})
//	// e.Windows == 3, e.Advance == 3
//
// Parameters:
//   - avail: Samples readable at the current input cursor
//   - capacity: Sample slots free in the output buffer
//   - cfg: Window size and step
//
// Returns the planned Emission.
func Plan(avail, capacity int, cfg Config) Emission {
	var e Emission
	if cfg.WindowSize < 1 || cfg.Step < 1 {
		return e
	}

	npos, spos := 0, 0
	for npos <= capacity-cfg.WindowSize {
		if avail-spos < cfg.WindowSize {
			break
		}
		e.Windows++
		npos += cfg.WindowSize
		spos += cfg.Step
	}

	e.Advance = min(spos, avail)
	e.Skip = spos - e.Advance
	return e
}

// CopyWindows writes the windows planned by e from in to out. Window k is
// read from in[k*Step:] and written to out[k*WindowSize:]. The caller must
// pass the same in and a buffer at least as large as the one planned for.
func CopyWindows(in, out []float32, e Emission, cfg Config) {
	for k := 0; k < e.Windows; k++ {
		copy(out[k*cfg.WindowSize:(k+1)*cfg.WindowSize], in[k*cfg.Step:k*cfg.Step+cfg.WindowSize])
	}
}
