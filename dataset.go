package gwas

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/gogpu/gg-gwas/internal/parallel"
)

// DataPoint is one association result: a position on a chromosome and its
// p-value.
type DataPoint struct {
	Chromosome string
	Position   uint64
	Value      float64
}

// Vertex is one plotted point: X is the position relative to the start of
// its chromosome, Y is -log10 of the p-value. It matches the two-float
// vertex layout of the point shader.
type Vertex struct {
	X, Y float32
}

// VertexSize is the size of one Vertex in a GPU buffer.
const VertexSize = 8

// Score converts a p-value to its -log10 plot height. Non-positive values are
// clamped to the smallest positive float64 so the result stays finite.
func Score(p float64) float64 {
	if p <= 0 {
		p = math.SmallestNonzeroFloat64
	}
	return -math.Log10(p)
}

// ChromosomeBucket holds the points of one chromosome together with the
// largest observed position and the p-value range.
type ChromosomeBucket struct {
	Name        string
	Points      []DataPoint
	MaxPosition uint64
	MinValue    float64
	MaxValue    float64
}

func newBucket(name string) *ChromosomeBucket {
	return &ChromosomeBucket{
		Name:     name,
		MinValue: math.Inf(1),
		MaxValue: math.Inf(-1),
	}
}

func (b *ChromosomeBucket) add(p DataPoint) {
	b.Points = append(b.Points, p)
	b.MaxPosition = max(b.MaxPosition, p.Position)
	b.MinValue = math.Min(b.MinValue, p.Value)
	b.MaxValue = math.Max(b.MaxValue, p.Value)
}

// Len returns the number of points in the bucket.
func (b *ChromosomeBucket) Len() int { return len(b.Points) }

// Vertices builds the renderable point list of the bucket.
func (b *ChromosomeBucket) Vertices() []Vertex {
	out := make([]Vertex, len(b.Points))
	for i, p := range b.Points {
		out[i] = Vertex{X: float32(p.Position), Y: float32(Score(p.Value))}
	}
	return out
}

// VertexBytes encodes vertices as tightly packed little-endian float32
// pairs, ready for upload into a vertex buffer.
func VertexBytes(vs []Vertex) []byte {
	buf := make([]byte, len(vs)*VertexSize)
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*VertexSize:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(buf[i*VertexSize+4:], math.Float32bits(v.Y))
	}
	return buf
}

// VertexBuffers maps chromosome names to their point lists, in
// coordinate-system order.
type VertexBuffers = ChromosomeMap[[]Vertex]

// ChromosomeDataset partitions ingested points by chromosome. Only
// chromosomes known to the coordinate system get a bucket; records naming
// any other chromosome are dropped and counted.
type ChromosomeDataset struct {
	coords  *CoordinateSystem
	buckets map[string]*ChromosomeBucket
	skipped map[string]int
	total   int
}

// NewChromosomeDataset returns an empty dataset partitioned by cs.
func NewChromosomeDataset(cs *CoordinateSystem) *ChromosomeDataset {
	return &ChromosomeDataset{
		coords:  cs,
		buckets: make(map[string]*ChromosomeBucket),
		skipped: make(map[string]int),
	}
}

// Add appends p to the bucket of its chromosome, creating the bucket on
// first use. If the chromosome is unknown the point is dropped and a
// *PartitionWarning is returned; the dataset stays usable.
func (d *ChromosomeDataset) Add(p DataPoint) error {
	index := d.total
	d.total++
	if _, ok := d.coords.Index(p.Chromosome); !ok {
		d.skipped[p.Chromosome]++
		return &PartitionWarning{Chromosome: p.Chromosome, Index: index}
	}
	b, ok := d.buckets[p.Chromosome]
	if !ok {
		b = newBucket(p.Chromosome)
		d.buckets[p.Chromosome] = b
	}
	b.add(p)
	return nil
}

// Ingest builds a dataset from points. Unknown chromosomes never fail
// ingestion; the number of dropped records is reported by Skipped.
func Ingest(cs *CoordinateSystem, points []DataPoint) *ChromosomeDataset {
	d := NewChromosomeDataset(cs)
	for _, p := range points {
		var warn *PartitionWarning
		if err := d.Add(p); errors.As(err, &warn) && d.skipped[warn.Chromosome] == 1 {
			// One line per unknown chromosome; the count is in Skipped.
			Logger().Warn("dropping records for unknown chromosome",
				"chromosome", warn.Chromosome, "first_record", warn.Index)
		}
	}
	Logger().Info("dataset built",
		"chromosomes", len(d.buckets), "points", d.total-d.Skipped(), "skipped", d.Skipped())
	return d
}

// Coords returns the coordinate system the dataset is partitioned by.
func (d *ChromosomeDataset) Coords() *CoordinateSystem { return d.coords }

// Bucket returns the bucket of the named chromosome. Chromosomes without
// points have no bucket.
func (d *ChromosomeDataset) Bucket(name string) (*ChromosomeBucket, bool) {
	b, ok := d.buckets[name]
	return b, ok
}

// Buckets returns the non-empty buckets in coordinate-system order.
func (d *ChromosomeDataset) Buckets() []*ChromosomeBucket {
	out := make([]*ChromosomeBucket, 0, len(d.buckets))
	for _, name := range d.coords.Names() {
		if b, ok := d.buckets[name]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Skipped returns the number of records dropped because their chromosome is
// not in the coordinate system.
func (d *ChromosomeDataset) Skipped() int {
	n := 0
	for _, c := range d.skipped {
		n += c
	}
	return n
}

// SkippedByChromosome returns the dropped-record count per unknown
// chromosome name.
func (d *ChromosomeDataset) SkippedByChromosome() map[string]int {
	out := make(map[string]int, len(d.skipped))
	for k, v := range d.skipped {
		out[k] = v
	}
	return out
}

// Len returns the number of points kept.
func (d *ChromosomeDataset) Len() int {
	return d.total - d.Skipped()
}

// ValueRange returns the smallest and largest p-value over all buckets.
// The boolean is false for an empty dataset.
func (d *ChromosomeDataset) ValueRange() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, b := range d.buckets {
		lo = math.Min(lo, b.MinValue)
		hi = math.Max(hi, b.MaxValue)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// ScoreRange returns the -log10 range of all points: the largest p-value
// gives the floor and the smallest gives the peak.
func (d *ChromosomeDataset) ScoreRange() (floor, peak float64, ok bool) {
	lo, hi, ok := d.ValueRange()
	if !ok {
		return 0, 0, false
	}
	return Score(hi), Score(lo), true
}

// Buffers builds the point list of every non-empty bucket, one chromosome per
// work item on pool. A nil pool builds sequentially.
func (d *ChromosomeDataset) Buffers(pool *parallel.WorkerPool) VertexBuffers {
	buckets := d.Buckets()
	built := parallel.Map(pool, buckets, (*ChromosomeBucket).Vertices)

	m := ChromosomeMap[[]Vertex]{
		names:  make([]string, len(buckets)),
		values: built,
		index:  make(map[string]int, len(buckets)),
	}
	for i, b := range buckets {
		m.names[i] = b.Name
		m.index[b.Name] = i
	}
	return m
}
