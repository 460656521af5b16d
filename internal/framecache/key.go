package framecache

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/gogpu/gg-gwas"
)

// Key identifies a rendered frame. Two frames with equal keys are
// pixel-identical for a given dataset and renderer.
type Key struct {
	View     gwas.View
	Viewport gwas.ViewportDims
}

// KeyHasher computes an FNV-1a hash over the bit patterns of the key.
func KeyHasher(k Key) uint64 {
	var buf [5 * 8]byte
	for i, f := range [5]float64{k.View.Center, k.View.Scale, k.View.BaseBpWidth, k.Viewport.Width, k.Viewport.Height} {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	h := fnv.New64a()
	_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	return h.Sum64()
}

// Frames caches encoded frames.
type Frames = ShardedCache[Key, []byte]

// NewFrames returns a frame cache holding up to capacity frames per shard.
func NewFrames(capacity int) *Frames {
	return NewSharded[Key, []byte](capacity, KeyHasher)
}
