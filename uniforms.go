package gwas

import (
	"encoding/binary"
	"math"
)

// ParameterBlockSize is the size in bytes of an encoded ParameterBlock:
// a column-major mat4 followed by one vec4 of scalars (std140).
const ParameterBlockSize = 80

// ParameterBlock is the per-chromosome, per-frame bundle handed to the
// renderer: the chromosome-local scaled matrix, the vertical translation of
// the plot band and the value floor used to normalize point heights.
type ParameterBlock struct {
	Matrix         Mat4
	VerticalOffset float64
	ValueFloor     float64
}

// Bytes encodes the block in uniform-buffer layout.
func (b ParameterBlock) Bytes() []byte {
	buf := make([]byte, ParameterBlockSize)
	b.Put(buf)
	return buf
}

// Put encodes the block into buf, which must hold ParameterBlockSize bytes.
func (b ParameterBlock) Put(buf []byte) {
	_ = buf[ParameterBlockSize-1]
	for i, f := range b.Matrix.ColumnMajor() {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(float32(b.VerticalOffset)))
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(float32(b.ValueFloor)))
	clear(buf[72:80])
}

// PerChromosomeUniforms derives one ParameterBlock per chromosome each frame.
// Its storage is reused between frames, so it belongs to the render loop and
// must not be shared with input handlers.
type PerChromosomeUniforms struct {
	names  []string
	blocks []ParameterBlock
	index  map[string]int
}

// NewPerChromosomeUniforms allocates blocks for the given chromosomes, in
// draw order.
func NewPerChromosomeUniforms(names []string) *PerChromosomeUniforms {
	u := &PerChromosomeUniforms{
		names:  append([]string(nil), names...),
		blocks: make([]ParameterBlock, len(names)),
		index:  make(map[string]int, len(names)),
	}
	for i, n := range names {
		u.index[n] = i
	}
	return u
}

// Refresh recomputes every block from view. Each chromosome gets the shared
// pan/zoom re-centered by its own global offset, so the whole concatenated
// track moves together while chromosome boundaries stay fixed relative to
// each other. Chromosomes missing from offsets keep their previous block.
func (u *PerChromosomeUniforms) Refresh(view View, offsets Offsets, verticalOffset, valueFloor float64) {
	for i, name := range u.names {
		offset, ok := offsets.Get(name)
		if !ok {
			Logger().Debug("no offset for chromosome", "chromosome", name)
			continue
		}
		u.blocks[i] = ParameterBlock{
			Matrix:         view.Local(offset).ToScaledMatrix(),
			VerticalOffset: verticalOffset,
			ValueFloor:     valueFloor,
		}
	}
}

// Block returns the current block of the named chromosome.
func (u *PerChromosomeUniforms) Block(name string) (ParameterBlock, bool) {
	i, ok := u.index[name]
	if !ok {
		return ParameterBlock{}, false
	}
	return u.blocks[i], true
}

// Len returns the number of chromosomes.
func (u *PerChromosomeUniforms) Len() int { return len(u.names) }

// Names returns the chromosome names in draw order.
func (u *PerChromosomeUniforms) Names() []string { return u.names }

// DrawCall describes one chromosome to draw: its position in the coordinate
// system, its global offset and length, the number of vertices in its buffer
// and its parameter block.
type DrawCall struct {
	Chromosome  string
	Index       int
	Offset      uint64
	Length      uint64
	VertexCount int
	Block       ParameterBlock
}

// Frame is everything the renderer needs for one frame. Calls are in
// coordinate-system order; the target is cleared only before the first one.
type Frame struct {
	View     View
	Viewport ViewportDims
	Calls    []DrawCall
}
