// Package testing provides test utilities for segal.
package testing

import (
	"math"
	"testing"
	"time"
)

// SendChunks splits values into chunks of at most size samples and returns
// a closed channel holding them. A size below 1 sends everything as one
// chunk.
func SendChunks(t *testing.T, values []float32, size int) <-chan []float32 {
	t.Helper()

	if size < 1 {
		size = max(len(values), 1)
	}
	ch := make(chan []float32, len(values)/size+1)
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		chunk := make([]float32, end-start)
		copy(chunk, values[start:end])
		ch <- chunk
	}
	close(ch)
	return ch
}

// SendSplits sends values as consecutive chunks cut at the given offsets
// and returns the closed channel.
func SendSplits(t *testing.T, values []float32, cuts ...int) <-chan []float32 {
	t.Helper()

	ch := make(chan []float32, len(cuts)+1)
	start := 0
	for _, cut := range append(cuts, len(values)) {
		if cut < start || cut > len(values) {
			t.Fatalf("invalid cut %d for %d values", cut, len(values))
		}
		ch <- append([]float32(nil), values[start:cut]...)
		start = cut
	}
	close(ch)
	return ch
}

// CollectWindows collects windows from ch until it closes or the timeout
// expires.
func CollectWindows(t *testing.T, ch <-chan []float32, timeout time.Duration) [][]float32 {
	t.Helper()

	var windows [][]float32
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case w, ok := <-ch:
			if !ok {
				return windows
			}
			windows = append(windows, w)
		case <-timer.C:
			t.Errorf("timed out after %v with %d windows", timeout, len(windows))
			return windows
		}
	}
}

// Ramp returns the samples 0, 1, ..., n-1.
func Ramp(n int) []float32 {
	values := make([]float32, n)
	for i := range values {
		values[i] = float32(i)
	}
	return values
}

// AssertWindows verifies got holds exactly the expected windows in order.
// Samples are compared bit for bit, so NaN matches NaN.
func AssertWindows(t *testing.T, got, expected [][]float32) {
	t.Helper()

	if len(got) != len(expected) {
		t.Errorf("expected %d windows, got %d: %v", len(expected), len(got), got)
		return
	}
	for i := range expected {
		if len(got[i]) != len(expected[i]) {
			t.Errorf("window %d: expected %v, got %v", i, expected[i], got[i])
			continue
		}
		for j := range expected[i] {
			if math.Float32bits(got[i][j]) != math.Float32bits(expected[i][j]) {
				t.Errorf("window %d: expected %v, got %v", i, expected[i], got[i])
				break
			}
		}
	}
}

// SlidingWindows returns the windows of size samples, step apart, that fit
// entirely in values.
func SlidingWindows(values []float32, size, step int) [][]float32 {
	var windows [][]float32
	for start := 0; start+size <= len(values); start += step {
		windows = append(windows, append([]float32(nil), values[start:start+size]...))
	}
	return windows
}
