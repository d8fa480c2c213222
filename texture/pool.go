package texture

import (
	"fmt"
	"sync"
)

// Pool hands out temporary render targets for the duration of one frame.
//
// Pool groups textures by their dimensions and format, so a target released
// at the end of a frame is reused by the next frame requesting the same size.
// Every Get is counted as an acquisition and every Put as a release, which
// lets callers verify that a frame returned everything it borrowed.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu        sync.Mutex
	buckets   map[poolKey][]*Texture
	maxSize   int // max textures per bucket
	maxTexels int // 0 = unlimited

	acquired  uint64
	released  uint64
	allocated uint64
}

// poolKey identifies a bucket of identical texture specifications.
type poolKey struct {
	width  int
	height int
	format Format
}

// PoolStats is a snapshot of pool accounting.
type PoolStats struct {
	// Acquired is the total number of successful Get calls.
	Acquired uint64

	// Released is the total number of Put calls that returned a texture.
	Released uint64

	// Allocated is the number of textures created because no pooled one fitted.
	Allocated uint64

	// Idle is the number of textures currently held for reuse.
	Idle int
}

// Outstanding returns the number of textures acquired but not yet released.
func (s PoolStats) Outstanding() int64 {
	return int64(s.Acquired) - int64(s.Released)
}

// NewPool creates a pool retaining at most maxPerBucket textures per size and format.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Texture),
		maxSize: maxPerBucket,
	}
}

// SetMaxTexels limits the size of textures the pool may hand out.
// Requests larger than n texels fail with ErrAllocation. 0 removes the limit.
func (p *Pool) SetMaxTexels(n int) {
	p.mu.Lock()
	p.maxTexels = n
	p.mu.Unlock()
}

// Get retrieves a cleared single-sampled texture from the pool or creates a new one.
// Failures wrap ErrAllocation; the caller is not expected to retry.
func (p *Pool) Get(width, height int, format Format) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d: %w", ErrAllocation, width, height, ErrInvalidDimensions)
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, ErrInvalidFormat)
	}
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	if p.maxTexels > 0 && width*height > p.maxTexels {
		limit := p.maxTexels
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: %dx%d exceeds %d texels", ErrAllocation, width, height, limit)
	}

	bucket := p.buckets[key]
	if len(bucket) > 0 {
		tex := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.acquired++
		p.mu.Unlock()

		tex.Clear()
		return tex, nil
	}
	p.mu.Unlock()

	tex, err := New(width, height, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	p.mu.Lock()
	p.acquired++
	p.allocated++
	p.mu.Unlock()

	slogger().Debug("texture pool: allocated temporary",
		"id", tex.ID(), "width", width, "height", height, "format", format)
	return tex, nil
}

// Put returns a texture to the pool for reuse.
// If tex is nil it is ignored; if the bucket is full the texture is dropped
// but still counted as released.
func (p *Pool) Put(tex *Texture) {
	if tex == nil {
		return
	}
	key := poolKey{width: tex.width, height: tex.height, format: tex.format}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.released++
	if tex.samples != 1 {
		return
	}

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	tex.label = ""
	p.buckets[key] = append(bucket, tex)
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	idle := 0
	for _, b := range p.buckets {
		idle += len(b)
	}
	return PoolStats{
		Acquired:  p.acquired,
		Released:  p.released,
		Allocated: p.allocated,
		Idle:      idle,
	}
}

// Drain drops every idle texture. Counters are kept.
func (p *Pool) Drain() {
	p.mu.Lock()
	clear(p.buckets)
	p.mu.Unlock()
}
