package segal

import (
	"context"
)

// Chunk groups items into fixed-size slices without time constraints.
// It emits when exactly 'size' items have been collected, and flushes the
// remainder as a shorter final chunk when the input closes.
type Chunk[T any] struct {
	name string
	size int
}

// NewChunk creates a processor that groups items into fixed-size chunks.
// The last chunk may be smaller if the stream ends before filling completely.
//
// When to use:
//   - Turning a sample-at-a-time source into the chunks a WindowStream reads
//   - Controlling how much input a block is handed per Work call
//
// Example:
//
//	// Hand blocks 1024 samples at a time
//	chunker := segal.NewChunk[float32](1024)
//
//	chunks := chunker.Process(ctx, samples)
//	for w := range stream.Process(ctx, chunks) {
//		plot(w)
//	}
//
// Parameters:
//   - size: Number of items per chunk; values below 1 are treated as 1
//
// Returns a new Chunk processor.
func NewChunk[T any](size int) *Chunk[T] {
	return &Chunk[T]{
		size: max(size, 1),
		name: "chunk",
	}
}

func (c *Chunk[T]) Process(ctx context.Context, in <-chan T) <-chan []T {
	out := make(chan []T)

	go func() {
		defer close(out)

		chunk := make([]T, 0, c.size)

		for {
			select {
			case <-ctx.Done():
				return

			case item, ok := <-in:
				if !ok {
					if len(chunk) > 0 {
						select {
						case out <- chunk:
						case <-ctx.Done():
						}
					}
					return
				}

				chunk = append(chunk, item)

				if len(chunk) >= c.size {
					select {
					case out <- chunk:
						chunk = make([]T, 0, c.size)
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out
}

func (c *Chunk[T]) Name() string {
	return c.name
}
