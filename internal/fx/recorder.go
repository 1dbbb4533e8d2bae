// Package fx collects dig impacts for effects playback.
package fx

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCapacity is the number of impacts a Recorder keeps between drains.
const DefaultCapacity = 256

// Recorder buffers impact positions in a ring. When full, the oldest impact
// is overwritten. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	buf   []mgl32.Vec2
	head  int // index of the oldest entry
	size  int
	total uint64
}

// NewRecorder returns a recorder holding up to capacity impacts. A
// non-positive capacity uses DefaultCapacity.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{buf: make([]mgl32.Vec2, capacity)}
}

// NotifyImpact records a voxel that was just dug.
func (r *Recorder) NotifyImpact(pos mgl32.Vec2) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = pos
		r.size++
		return
	}
	r.buf[r.head] = pos
	r.head = (r.head + 1) % len(r.buf)
}

// Drain returns the buffered impacts, oldest first, and empties the buffer.
func (r *Recorder) Drain() []mgl32.Vec2 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mgl32.Vec2, r.size)
	for i := range out {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	r.head, r.size = 0, 0
	return out
}

// Len returns the number of buffered impacts.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Total returns the number of impacts ever recorded, including dropped ones.
func (r *Recorder) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
