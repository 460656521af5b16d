package gwas

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors wrapped by DataFormatError.
var (
	// ErrEmptyName is returned for a chromosome record without a name.
	ErrEmptyName = errors.New("empty chromosome name")

	// ErrDuplicateChromosome is returned when a coordinate system lists the
	// same chromosome twice; offsets keyed by name would be ambiguous.
	ErrDuplicateChromosome = errors.New("duplicate chromosome")

	// ErrMissingField is returned when a required ingestion field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrNotBasepair is returned when a length or position is not a
	// non-negative integer.
	ErrNotBasepair = errors.New("not a non-negative integer")
)

// ErrInvalidViewport is returned for viewport dimensions that are not
// strictly positive.
var ErrInvalidViewport = errors.New("gwas: viewport dimensions must be positive")

// DataFormatError reports malformed or missing input while building a
// CoordinateSystem or ingesting a dataset. It is fatal: no partial state is
// constructed when it occurs.
type DataFormatError struct {
	// Source names the input, e.g. "coordinate system" or "dataset".
	Source string

	// Index is the record index inside the input, or -1 for top-level fields.
	Index int

	// Field is the offending field name, e.g. "len" or "ps".
	Field string

	Err error
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	b.WriteString("gwas: malformed ")
	b.WriteString(e.Source)
	if e.Index >= 0 {
		fmt.Fprintf(&b, " record %d", e.Index)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// PartitionWarning reports a dataset record whose chromosome is not part of
// the coordinate system. The record is dropped and ingestion continues.
type PartitionWarning struct {
	Chromosome string
	Index      int
}

func (w *PartitionWarning) Error() string {
	return fmt.Sprintf("gwas: record %d references unknown chromosome %q", w.Index, w.Chromosome)
}

// ParseBasepairs parses raw as a non-negative integer basepair count or
// position. Integral values written in float notation ("1e6", "2000.0") are
// accepted since JSON producers emit them. Failures are *DataFormatError.
func ParseBasepairs(source string, index int, field, raw string) (uint64, error) {
	fail := func(err error) error {
		return &DataFormatError{Source: source, Index: index, Field: field, Err: err}
	}
	if raw == "" {
		return 0, fail(ErrMissingField)
	}
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f >= 1<<64 {
		return 0, fail(fmt.Errorf("%q: %w", raw, ErrNotBasepair))
	}
	return uint64(f), nil
}
