package engine

import "time"

// Stats describes the most recently ended frame.
type Stats struct {
	Frame uint64 `yaml:"frame"`
	// Nodes is the number of live nodes, the root included.
	Nodes   int `yaml:"nodes"`
	Created int `yaml:"created"`
	Pruned  int `yaml:"pruned"`
	// Build is the time from NewFrame to EndFrame.
	Build time.Duration `yaml:"build"`
}

// Stats returns the statistics of the last ended frame.
func (in *Interface) Stats() Stats {
	return in.last
}

// Timings returns recent build durations, oldest first.
func (in *Interface) Timings() []time.Duration {
	return in.timings.Samples()
}

// FrameTimingBuffer is a ring buffer of frame durations.
type FrameTimingBuffer struct {
	samples  []time.Duration
	index    int
	capacity int
	count    int
}

// NewFrameTimingBuffer creates a buffer holding capacity samples. A
// non-positive capacity defaults to 60.
func NewFrameTimingBuffer(capacity int) *FrameTimingBuffer {
	if capacity <= 0 {
		capacity = 60
	}
	return &FrameTimingBuffer{
		samples:  make([]time.Duration, capacity),
		capacity: capacity,
	}
}

// Add records a duration, overwriting the oldest once full.
func (b *FrameTimingBuffer) Add(d time.Duration) {
	b.samples[b.index] = d
	b.index = (b.index + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
}

// Samples returns a copy of the samples in chronological order.
func (b *FrameTimingBuffer) Samples() []time.Duration {
	if b.count == 0 {
		return nil
	}
	result := make([]time.Duration, b.count)
	if b.count < b.capacity {
		copy(result, b.samples[:b.count])
	} else {
		// Full: the oldest sample is at b.index.
		copy(result, b.samples[b.index:])
		copy(result[b.capacity-b.index:], b.samples[:b.index])
	}
	return result
}

// Count returns the number of samples held.
func (b *FrameTimingBuffer) Count() int {
	return b.count
}

// Mean returns the average of the held samples, or 0 when empty.
func (b *FrameTimingBuffer) Mean() time.Duration {
	if b.count == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range b.Samples() {
		total += d
	}
	return total / time.Duration(b.count)
}
