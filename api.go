// Package segal turns a stream of float32 samples into a stream of
// overlapping fixed-length windows, e.g. for feeding an XY or
// constellation plot.
//
// With a window size of 3 and a step of 1 the stream 0, 1, 2, 3, 4
// becomes the windows [0 1 2], [1 2 3], [2 3 4].
//
// The core is the Block interface: a host hands a block an input buffer and
// an output buffer, and the block reports how many input samples it
// consumed and how many output samples it produced. Two blocks implement
// the two buffering policies:
//   - HistoryWindow reads a view that the host keeps filled with the
//     unconsumed input, and only consumes what no later window needs
//   - PushWindow consumes everything it is given into its own retention
//     buffer and trims that buffer as windows are emitted
//
// Both are total: they never block, never fail after construction and never
// emit a partial window. Input that cannot form a window yet is kept for a
// later call.
//
// Basic usage:
//
//	block, err := segal.NewHistoryWindow(segal.Config{WindowSize: 3, Step: 1})
//	if err != nil {
//		return err
//	}
//
//	stream := segal.NewWindowStream(block)
//	for w := range stream.Process(ctx, chunks) {
//		plot(w[0], w[1])
//	}
package segal

import (
	"context"
)

// Processor is the core interface for stream processing components.
// It transforms an input channel of type In to an output channel of type Out.
// Processors should:
//   - Close the output channel when the input channel is closed
//   - Respect context cancellation
type Processor[In, Out any] interface {
	// Process transforms the input channel to an output channel.
	// It should close the output channel when processing is complete.
	Process(ctx context.Context, in <-chan In) <-chan Out

	// Name returns a descriptive name for the processor, useful for debugging.
	Name() string
}

// Block is a synchronous window transform driven by a host.
//
// Work is called by a single goroutine at a time. It fills a prefix of out
// with whole windows and returns how many samples of in it consumed and
// how many samples of out it produced. Samples of in that were not
// consumed must be offered again, in order, at the front of the next
// call's input. Work never retains in or out past the call.
type Block interface {
	Work(in, out []float32) (consumed, produced int)

	// Metadata returns the static declarations the host sizes buffers by.
	Metadata() Metadata

	// Config returns the parameters the block was built with.
	Config() Config

	Name() string
}
