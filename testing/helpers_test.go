package testing

import (
	"math"
	"testing"
	"time"
)

func TestSendChunks(t *testing.T) {
	ch := SendChunks(t, Ramp(7), 3)

	var sizes []int
	for chunk := range ch {
		sizes = append(sizes, len(chunk))
	}
	if len(sizes) != 3 || sizes[0] != 3 || sizes[1] != 3 || sizes[2] != 1 {
		t.Errorf("expected chunk sizes [3 3 1], got %v", sizes)
	}
}

func TestSendChunksWhole(t *testing.T) {
	chunks := CollectWindows(t, SendChunks(t, Ramp(4), 0), time.Second)
	if len(chunks) != 1 || len(chunks[0]) != 4 {
		t.Errorf("expected a single chunk of 4, got %v", chunks)
	}
}

func TestSendSplits(t *testing.T) {
	chunks := CollectWindows(t, SendSplits(t, Ramp(5), 0, 2), time.Second)
	AssertWindows(t, chunks, [][]float32{{}, {0, 1}, {2, 3, 4}})
}

func TestSlidingWindows(t *testing.T) {
	AssertWindows(t, SlidingWindows(Ramp(5), 3, 1), [][]float32{{0, 1, 2}, {1, 2, 3}, {2, 3, 4}})
	AssertWindows(t, SlidingWindows(Ramp(4), 2, 2), [][]float32{{0, 1}, {2, 3}})
	AssertWindows(t, SlidingWindows(Ramp(2), 3, 1), nil)
}

func TestAssertWindowsNaN(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	AssertWindows(t, [][]float32{{nan, inf, -inf}}, [][]float32{{nan, inf, -inf}})
}
