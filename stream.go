package segal

import (
	"context"

	"github.com/SoniEx2/SEGAL/internal/logging"
	"github.com/SoniEx2/SEGAL/internal/metrics"
)

var _ Processor[[]float32, []float32] = (*WindowStream)(nil)

// DefaultStreamCapacity is the number of windows a WindowStream asks a
// block for per Work call.
const DefaultStreamCapacity = 64

// WindowStream drives a Block from a channel of sample chunks and emits
// every window as its own slice. It plays the host role: it keeps the
// input a block did not consume and offers it again, ahead of the next
// chunk, on the following call.
type WindowStream struct {
	block    Block
	name     string
	capacity int
}

// StreamOption configures a WindowStream.
type StreamOption func(*WindowStream)

// WithCapacity sets how many windows are requested per Work call.
// Values below 1 are ignored.
func WithCapacity(windows int) StreamOption {
	return func(s *WindowStream) {
		if windows > 0 {
			s.capacity = windows
		}
	}
}

// WithName sets the name used for logging and metrics.
func WithName(name string) StreamOption {
	return func(s *WindowStream) {
		s.name = name
	}
}

// NewWindowStream creates a processor that windows a chunked sample stream
// using block. The same stream of samples yields the same windows however
// it is split into chunks.
//
// When to use:
//   - Feeding windows to a consumer that works on channels
//   - Driving either block type without writing a host loop
//
// Example:
//
//	block, _ := segal.NewPushWindow(segal.Config{WindowSize: 2, Step: 1})
//	stream := segal.NewWindowStream(block, segal.WithCapacity(16))
//
//	for w := range stream.Process(ctx, chunks) {
//		plotXY(w[0], w[1])
//	}
//
// Parameters:
//   - block: The block to drive; it must not be shared with another host
//   - opts: Optional capacity and name
//
// Returns a new WindowStream processor.
func NewWindowStream(block Block, opts ...StreamOption) *WindowStream {
	s := &WindowStream{
		block:    block,
		name:     block.Name(),
		capacity: DefaultStreamCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WindowStream) Process(ctx context.Context, in <-chan []float32) <-chan []float32 {
	out := make(chan []float32)

	go func() {
		defer close(out)

		log := logging.FromContext(ctx).With("stream", s.name)
		buf := make([]float32, s.outputSize())
		var pending historyBuffer
		windows := 0

		for {
			select {
			case <-ctx.Done():
				log.Debugw("Window stream cancelled", "windows", windows, "retained", pending.len())
				return

			case chunk, ok := <-in:
				if !ok {
					log.Debugw("Window stream drained", "windows", windows, "retained", s.retained(&pending))
					return
				}

				pending.append(chunk)
				n, ok := s.drain(ctx, &pending, buf, out)
				windows += n
				if !ok {
					return
				}
			}
		}
	}()

	return out
}

// drain calls Work until the block makes no more output. It reports the
// number of windows sent and false if ctx ended first.
func (s *WindowStream) drain(ctx context.Context, pending *historyBuffer, buf []float32, out chan<- []float32) (int, bool) {
	ws := s.block.Config().WindowSize
	sent := 0

	for {
		consumed, produced := s.block.Work(pending.view(), buf)
		pending.discard(consumed)
		metrics.ObserveWork(s.name, consumed, produced, ws, s.retained(pending))

		if produced == 0 {
			return sent, true
		}

		for k := 0; k+ws <= produced; k += ws {
			w := make([]float32, ws)
			copy(w, buf[k:k+ws])
			select {
			case out <- w:
				sent++
			case <-ctx.Done():
				return sent, false
			}
		}
	}
}

// retained counts input that has been offered but not yet folded into a
// window, whether the host or the block holds it.
func (s *WindowStream) retained(pending *historyBuffer) int {
	n := pending.len()
	if b, ok := s.block.(interface{ Buffered() int }); ok {
		n += b.Buffered()
	}
	return n
}

func (s *WindowStream) outputSize() int {
	md := s.block.Metadata()
	multiple := max(md.OutputMultiple, 1)
	return max(s.capacity*multiple, md.MinOutputItems)
}

func (s *WindowStream) Name() string {
	return s.name
}

// historyBuffer is the host side of the history-pull convention: the
// unconsumed input, readable as one contiguous view.
type historyBuffer struct {
	samples []float32
	head    int
}

func (h *historyBuffer) append(chunk []float32) {
	if h.head > 0 && h.head >= len(h.samples)/2 {
		n := copy(h.samples, h.samples[h.head:])
		h.samples = h.samples[:n]
		h.head = 0
	}
	h.samples = append(h.samples, chunk...)
}

func (h *historyBuffer) view() []float32 {
	return h.samples[h.head:]
}

func (h *historyBuffer) discard(n int) {
	h.head = min(h.head+n, len(h.samples))
	if h.head == len(h.samples) {
		h.samples = h.samples[:0]
		h.head = 0
	}
}

func (h *historyBuffer) len() int {
	return len(h.samples) - h.head
}
