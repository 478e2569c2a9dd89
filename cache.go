package powerstroke

import (
	"encoding/binary"
	"math"
	"sync"
)

// Cache remembers the outlines of the subpaths stroked by its last call to
// [Cache.Stroke]. Subpaths that are unchanged in the next call, with the same
// samples and options, are not recomputed. This keeps interactive edits of
// one subpath from recomputing all the others.
//
// Only one generation is kept: results not used by a call are forgotten.
// The zero value is ready to use. A Cache is safe for concurrent use.
type Cache struct {
	// call serializes calls to Stroke, mu guards the maps.
	call sync.Mutex
	mu   sync.Mutex
	prev map[string]BezPath
	next map[string]BezPath
}

// Stroke is like [Stroke], reusing results of the previous call.
func (c *Cache) Stroke(path BezPath, samples []OffsetSample, opts Options) BezPath {
	c.call.Lock()
	defer c.call.Unlock()
	return stroke(path, samples, opts, c)
}

// Len returns the number of subpath results held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prev)
}

// Reset forgets all results.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prev = nil
}

func (c *Cache) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = make(map[string]BezPath)
}

func (c *Cache) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prev, c.next = c.next, nil
}

func (c *Cache) get(raw BezPath, samples []OffsetSample, opts Options) (BezPath, bool) {
	key := cacheKey(raw, samples, opts)
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.prev[key]
	if ok {
		c.next[key] = r
	}
	return r, ok
}

func (c *Cache) put(raw BezPath, samples []OffsetSample, opts Options, r BezPath) {
	key := cacheKey(raw, samples, opts)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next[key] = r
}

// cacheKey encodes everything a subpath's outline depends on.
func cacheKey(raw BezPath, samples []OffsetSample, opts Options) string {
	b := make([]byte, 0, 64*len(raw)+16*len(samples)+64)
	f := func(v float64) { b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v)) }
	i := func(v int) { b = binary.LittleEndian.AppendUint64(b, uint64(v)) }
	flag := func(v bool) {
		if v {
			b = append(b, 1)
		} else {
			b = append(b, 0)
		}
	}
	pt := func(p Point) { f(p.X); f(p.Y) }

	i(len(raw))
	for _, el := range raw {
		i(int(el.Kind))
		pt(el.P0)
		pt(el.P1)
		pt(el.P2)
		f(el.Arc.Radii.X)
		f(el.Arc.Radii.Y)
		f(el.Arc.XRotation)
		flag(el.Arc.LargeArc)
		flag(el.Arc.Sweep)
	}
	i(len(samples))
	for _, s := range samples {
		f(s.Pos)
		f(s.Width)
	}
	f(opts.Scale)
	flag(opts.SortPoints)
	i(int(opts.Interpolator))
	f(opts.Beta)
	i(int(opts.Join))
	f(opts.MiterLimit)
	i(int(opts.StartCap))
	i(int(opts.EndCap))
	f(opts.tolerance())
	i(len(opts.FormatVersion))
	b = append(b, opts.FormatVersion...)
	return string(b)
}
