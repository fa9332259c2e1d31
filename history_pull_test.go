package segal

import (
	"errors"
	"math"
	"testing"

	segaltest "github.com/SoniEx2/SEGAL/testing"
)

func newHistory(t *testing.T, ws, step int) *HistoryWindow {
	t.Helper()
	h, err := NewHistoryWindow(Config{WindowSize: ws, Step: step})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func TestHistoryWindow_Name(t *testing.T) {
	h := newHistory(t, 2, 1)
	if h.Name() != "history-window" {
		t.Errorf("expected name 'history-window', got %q", h.Name())
	}
}

func TestHistoryWindow_InvalidConfig(t *testing.T) {
	h, err := NewHistoryWindow(Config{WindowSize: 0, Step: 0})
	if h != nil {
		t.Error("expected no block for invalid config")
	}
	if !errors.Is(err, ErrInvalidWindowSize) || !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected both config errors, got %v", err)
	}
}

func TestHistoryWindow_Metadata(t *testing.T) {
	md := newHistory(t, 3, 2).Metadata()
	expected := Metadata{
		History:        4,
		SampleDelay:    2,
		OutputMultiple: 3,
		MinOutputItems: 3,
		RelativeRate:   Rate{Out: 3, In: 2},
	}
	if md != expected {
		t.Errorf("expected %+v, got %+v", expected, md)
	}
}

func TestHistoryWindow_SlidingWindows(t *testing.T) {
	h := newHistory(t, 3, 1)
	out := make([]float32, 9)

	consumed, produced := h.Work(segaltest.Ramp(5), out)
	if consumed != 3 {
		t.Errorf("expected 3 consumed, got %d", consumed)
	}
	if produced != 9 {
		t.Errorf("expected 9 produced, got %d", produced)
	}

	expected := []float32{0, 1, 2, 1, 2, 3, 2, 3, 4}
	for i := range expected {
		if out[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, out)
		}
	}
}

func TestHistoryWindow_NonOverlapping(t *testing.T) {
	h := newHistory(t, 2, 2)
	windows := drive(h, [][]float32{segaltest.Ramp(4)}, 8)
	segaltest.AssertWindows(t, windows, [][]float32{{0, 1}, {2, 3}})
}

func TestHistoryWindow_ShortView(t *testing.T) {
	h := newHistory(t, 3, 1)
	consumed, produced := h.Work([]float32{7, 8}, make([]float32, 9))
	if consumed != 0 || produced != 0 {
		t.Errorf("expected nothing consumed or produced, got %d/%d", consumed, produced)
	}
}

func TestHistoryWindow_Backpressure(t *testing.T) {
	h := newHistory(t, 3, 1)
	view := segaltest.Ramp(5)
	out := make([]float32, 3)

	consumed, produced := h.Work(view, out)
	if consumed != 1 || produced != 3 {
		t.Fatalf("expected 1 consumed and 3 produced, got %d/%d", consumed, produced)
	}
	if out[0] != 0 || out[2] != 2 {
		t.Errorf("expected [0 1 2], got %v", out)
	}

	consumed, produced = h.Work(view[consumed:], out)
	if consumed != 1 || produced != 3 {
		t.Fatalf("expected 1 consumed and 3 produced, got %d/%d", consumed, produced)
	}
	if out[0] != 1 || out[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", out)
	}

	consumed, produced = h.Work(view[1:], nil)
	if consumed != 0 || produced != 0 {
		t.Errorf("expected no work without output room, got %d/%d", consumed, produced)
	}
}

func TestHistoryWindow_IdempotentDrain(t *testing.T) {
	h := newHistory(t, 3, 1)
	view := segaltest.Ramp(5)
	out := make([]float32, 30)

	consumed, _ := h.Work(view, out)
	rest := view[consumed:]
	for i := 0; i < 3; i++ {
		c, p := h.Work(rest, out)
		if c != 0 || p != 0 {
			t.Fatalf("call %d: expected no further work, got %d/%d", i, c, p)
		}
	}
}

func TestHistoryWindow_StrideCarriedAcrossCalls(t *testing.T) {
	h := newHistory(t, 2, 3)
	out := make([]float32, 20)
	in := segaltest.Ramp(10)

	consumed, produced := h.Work(in[:5], out)
	if consumed != 5 || produced != 4 {
		t.Fatalf("expected 5 consumed and 4 produced, got %d/%d", consumed, produced)
	}

	// sample 5 belongs to the last stride and is dropped first.
	consumed, produced = h.Work(in[5:], out)
	if consumed != 4 || produced != 2 {
		t.Fatalf("expected 4 consumed and 2 produced, got %d/%d", consumed, produced)
	}
	if out[0] != 6 || out[1] != 7 {
		t.Errorf("expected window [6 7], got %v", out[:2])
	}
}

func TestHistoryWindow_ChunkBoundaryInvariance(t *testing.T) {
	values := segaltest.Ramp(10)

	for _, cfg := range []Config{{3, 1}, {2, 1}, {2, 2}, {3, 2}, {2, 3}, {1, 1}, {4, 4}} {
		expected := segaltest.SlidingWindows(values, cfg.WindowSize, cfg.Step)
		for _, capacity := range []int{cfg.WindowSize, 2 * cfg.WindowSize, 2*cfg.WindowSize + 1, 40} {
			for cut := 0; cut <= len(values); cut++ {
				for cut2 := cut; cut2 <= len(values); cut2 += 3 {
					h, err := NewHistoryWindow(cfg)
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					got := drive(h, splitAt(values, cut, cut2), capacity)
					segaltest.AssertWindows(t, got, expected)
					if t.Failed() {
						t.Fatalf("%v capacity=%d cuts=%d,%d", cfg, capacity, cut, cut2)
					}
				}
			}
		}
	}
}

func TestHistoryWindow_NonFinitePassThrough(t *testing.T) {
	nan, inf := float32(math.NaN()), float32(math.Inf(1))
	chunks := [][]float32{{nan}, {inf, -inf, 1}}

	got := drive(newHistory(t, 2, 1), chunks, 4)
	segaltest.AssertWindows(t, got, [][]float32{{nan, inf}, {inf, -inf}, {-inf, 1}})
}
