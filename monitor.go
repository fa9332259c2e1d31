package segal

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
)

// Clock provides time operations for deterministic testing.
type Clock = clockz.Clock

// RealClock is the default Clock using standard time.
var RealClock Clock = clockz.RealClock

var _ Processor[[]float32, []float32] = (*WindowMonitor)(nil)

// WindowStats contains statistics about windows flowing through a monitored stream.
type WindowStats struct {
	// LastUpdate is the timestamp of this statistics snapshot
	LastUpdate time.Time
	// Windows is the number of windows seen since the last report
	Windows int64
	// Samples is the number of samples in those windows
	Samples int64
	// Rate is the average windows per second since the last report
	Rate float64
}

// WindowMonitor observes windows passing through a stream and periodically
// reports statistics. Windows are forwarded unchanged.
type WindowMonitor struct {
	clock    Clock
	onStats  func(WindowStats)
	lastTime atomic.Value
	name     string
	interval time.Duration
	windows  atomic.Int64
	samples  atomic.Int64
}

// NewWindowMonitor creates a pass-through processor that reports window
// throughput every interval, and once more when the stream ends.
//
// Example:
//
//	monitor := segal.NewWindowMonitor(time.Second, func(s segal.WindowStats) {
//		log.Printf("%.1f windows/sec (%d samples)", s.Rate, s.Samples)
//	}, segal.RealClock)
//
//	windows := monitor.Process(ctx, stream.Process(ctx, chunks))
//
// Parameters:
//   - interval: How often to report statistics
//   - onStats: Callback invoked with statistics at each interval
//   - clock: Clock interface for time operations
//
// Returns a new WindowMonitor processor.
func NewWindowMonitor(interval time.Duration, onStats func(WindowStats), clock Clock) *WindowMonitor {
	m := &WindowMonitor{
		clock:    clock,
		name:     "window-monitor",
		interval: interval,
		onStats:  onStats,
	}
	m.lastTime.Store(clock.Now())
	return m
}

func (m *WindowMonitor) Process(ctx context.Context, in <-chan []float32) <-chan []float32 {
	out := make(chan []float32)
	ticker := m.clock.NewTicker(m.interval)

	go func() {
		defer close(out)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				m.reportStats()
				return

			case w, ok := <-in:
				if !ok {
					m.reportStats()
					return
				}

				m.windows.Add(1)
				m.samples.Add(int64(len(w)))

				select {
				case out <- w:
				case <-ctx.Done():
					return
				}

			case <-ticker.C():
				m.reportStats()
			}
		}
	}()

	return out
}

func (m *WindowMonitor) reportStats() {
	windows := m.windows.Swap(0)
	samples := m.samples.Swap(0)
	now := m.clock.Now()
	lastTime, ok := m.lastTime.Load().(time.Time)
	if !ok {
		lastTime = now
	}

	var rate float64
	if duration := now.Sub(lastTime).Seconds(); duration > 0 {
		rate = float64(windows) / duration
	}

	if m.onStats != nil {
		m.onStats(WindowStats{
			LastUpdate: now,
			Windows:    windows,
			Samples:    samples,
			Rate:       rate,
		})
	}

	m.lastTime.Store(now)
}

func (m *WindowMonitor) Name() string {
	return m.name
}
