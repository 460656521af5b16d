package gwas

import (
	"fmt"
	"iter"
	"sort"
)

// DefaultPadding is the gap, in basepairs, inserted between adjacent
// chromosomes when no other padding is configured.
const DefaultPadding = 50_000_000

// ChromosomeRecord is one entry of a coordinate system: a chromosome name and
// its length in basepairs.
type ChromosomeRecord struct {
	Name   string
	Length uint64
}

// Range is a half-open basepair interval [Start, End) in the global space.
type Range struct {
	Start, End uint64
}

// Len returns the number of basepairs covered by the range.
func (r Range) Len() uint64 { return r.End - r.Start }

// Contains reports whether the global coordinate x lies inside the range.
func (r Range) Contains(x float64) bool {
	return x >= float64(r.Start) && x < float64(r.End)
}

// ChromosomeMap is an immutable name-keyed mapping that iterates in
// coordinate-system order, never lexicographically.
type ChromosomeMap[V any] struct {
	names  []string
	values []V
	index  map[string]int
}

// Len returns the number of entries.
func (m ChromosomeMap[V]) Len() int { return len(m.names) }

// Get returns the value stored for name. The boolean is false for names the
// map does not know.
func (m ChromosomeMap[V]) Get(name string) (V, bool) {
	i, ok := m.index[name]
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// At returns the i-th entry in coordinate-system order.
func (m ChromosomeMap[V]) At(i int) (string, V) {
	return m.names[i], m.values[i]
}

// Names returns the chromosome names in order. The slice must not be
// modified.
func (m ChromosomeMap[V]) Names() []string { return m.names }

// All iterates the entries in coordinate-system order.
func (m ChromosomeMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i, name := range m.names {
			if !yield(name, m.values[i]) {
				return
			}
		}
	}
}

// Offsets maps chromosome names to their start in the global space.
type Offsets = ChromosomeMap[uint64]

// Ranges maps chromosome names to their [start, end) span in the global space.
type Ranges = ChromosomeMap[Range]

// CoordinateSystem is an ordered chromosome name/length table. The order is
// the ingestion order and defines how chromosomes are concatenated into the
// global coordinate space. A CoordinateSystem is immutable once built.
type CoordinateSystem struct {
	name    string
	records []ChromosomeRecord
	index   map[string]int
}

// NewCoordinateSystem builds a coordinate system from records, keeping their
// order. Empty or duplicate chromosome names yield a *DataFormatError.
func NewCoordinateSystem(name string, records []ChromosomeRecord) (*CoordinateSystem, error) {
	cs := &CoordinateSystem{
		name:    name,
		records: make([]ChromosomeRecord, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for i, r := range records {
		if r.Name == "" {
			return nil, &DataFormatError{Source: "coordinate system", Index: i, Field: "name", Err: ErrEmptyName}
		}
		if _, dup := cs.index[r.Name]; dup {
			return nil, &DataFormatError{
				Source: "coordinate system", Index: i, Field: "name",
				Err: fmt.Errorf("%q: %w", r.Name, ErrDuplicateChromosome),
			}
		}
		cs.index[r.Name] = i
		cs.records[i] = r
	}
	Logger().Info("coordinate system built", "name", name, "chromosomes", len(records))
	return cs, nil
}

// Name returns the coordinate system (assembly) name, e.g. "GRCh38".
func (cs *CoordinateSystem) Name() string { return cs.name }

// Len returns the number of chromosomes.
func (cs *CoordinateSystem) Len() int { return len(cs.records) }

// Names returns the chromosome names in order.
func (cs *CoordinateSystem) Names() []string {
	names := make([]string, len(cs.records))
	for i, r := range cs.records {
		names[i] = r.Name
	}
	return names
}

// Index returns the position of name in the coordinate system.
func (cs *CoordinateSystem) Index(name string) (int, bool) {
	i, ok := cs.index[name]
	return i, ok
}

// ChrLen returns the length of the named chromosome. The boolean is false if
// the name is unknown.
func (cs *CoordinateSystem) ChrLen(name string) (uint64, bool) {
	i, ok := cs.index[name]
	if !ok {
		return 0, false
	}
	return cs.records[i].Length, true
}

// ChrOffsets returns the start of every chromosome in the global space:
//
//	offset[0]   = 0
//	offset[i+1] = offset[i] + length[i] + padding
func (cs *CoordinateSystem) ChrOffsets(padding uint64) Offsets {
	m := newChromosomeMap[uint64](cs)
	var offset uint64
	for i, r := range cs.records {
		m.values[i] = offset
		offset += r.Length + padding
	}
	return m
}

// ChrRanges returns the [start, end) span of every chromosome in the global
// space. Consecutive ranges are separated by exactly padding basepairs.
func (cs *CoordinateSystem) ChrRanges(padding uint64) Ranges {
	m := newChromosomeMap[Range](cs)
	var offset uint64
	for i, r := range cs.records {
		m.values[i] = Range{Start: offset, End: offset + r.Length}
		offset += r.Length + padding
	}
	return m
}

// TotalLength returns the end offset of the last chromosome, or 0 for an
// empty coordinate system. Trailing padding is not included.
func (cs *CoordinateSystem) TotalLength(padding uint64) uint64 {
	n := len(cs.records)
	if n == 0 {
		return 0
	}
	var total uint64
	for _, r := range cs.records {
		total += r.Length
	}
	return total + uint64(n-1)*padding
}

// Locate maps a global coordinate to the chromosome containing it and the
// position relative to that chromosome's start. Coordinates inside padding
// gaps or outside the concatenated track resolve to false.
func (cs *CoordinateSystem) Locate(global float64, padding uint64) (name string, local float64, ok bool) {
	if len(cs.records) == 0 || global < 0 {
		return "", 0, false
	}
	ranges := cs.ChrRanges(padding)
	// First chromosome ending after global.
	i := sort.Search(len(ranges.values), func(i int) bool {
		return float64(ranges.values[i].End) > global
	})
	if i == len(ranges.values) || !ranges.values[i].Contains(global) {
		return "", 0, false
	}
	return ranges.names[i], global - float64(ranges.values[i].Start), true
}

func newChromosomeMap[V any](cs *CoordinateSystem) ChromosomeMap[V] {
	return ChromosomeMap[V]{
		names:  cs.Names(),
		values: make([]V, len(cs.records)),
		index:  cs.index,
	}
}
