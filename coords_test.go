package gwas

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func mustCoords(t *testing.T, records ...ChromosomeRecord) *CoordinateSystem {
	t.Helper()
	cs, err := NewCoordinateSystem("test", records)
	if err != nil {
		t.Fatalf("NewCoordinateSystem() = %v", err)
	}
	return cs
}

func TestCoordinateSystemScenario(t *testing.T) {
	cs := mustCoords(t, ChromosomeRecord{"1", 1000}, ChromosomeRecord{"2", 2000})

	offsets := cs.ChrOffsets(100)
	for _, tt := range []struct {
		name string
		want uint64
	}{{"1", 0}, {"2", 1100}} {
		got, ok := offsets.Get(tt.name)
		if !ok || got != tt.want {
			t.Errorf("ChrOffsets(100)[%q] = %d, %v, want %d", tt.name, got, ok, tt.want)
		}
	}

	ranges := cs.ChrRanges(100)
	for _, tt := range []struct {
		name string
		want Range
	}{{"1", Range{0, 1000}}, {"2", Range{1100, 3100}}} {
		got, ok := ranges.Get(tt.name)
		if !ok || got != tt.want {
			t.Errorf("ChrRanges(100)[%q] = %v, %v, want %v", tt.name, got, ok, tt.want)
		}
	}

	if got := cs.TotalLength(100); got != 3100 {
		t.Errorf("TotalLength(100) = %d, want 3100", got)
	}
}

func TestChrOffsetsKeepIngestionOrder(t *testing.T) {
	// Lexicographic order would put "10" before "2".
	cs := mustCoords(t,
		ChromosomeRecord{"2", 10},
		ChromosomeRecord{"10", 20},
		ChromosomeRecord{"X", 30},
		ChromosomeRecord{"1", 40},
	)
	want := []string{"2", "10", "X", "1"}

	var got []string
	for name := range cs.ChrOffsets(5).All() {
		got = append(got, name)
	}
	if !slices.Equal(got, want) {
		t.Errorf("ChrOffsets order = %v, want %v", got, want)
	}
	if names := cs.ChrRanges(5).Names(); !slices.Equal(names, want) {
		t.Errorf("ChrRanges order = %v, want %v", names, want)
	}
	if off, _ := cs.ChrOffsets(5).Get("1"); off != 10+5+20+5+30+5 {
		t.Errorf("offset of last chromosome = %d, want %d", off, 75)
	}
}

func TestOffsetProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := range 50 {
		n := 1 + rng.IntN(30)
		records := make([]ChromosomeRecord, n)
		for i := range records {
			records[i] = ChromosomeRecord{Name: string(rune('A'+i%26)) + string(rune('a'+i/26)), Length: rng.Uint64N(1 << 30)}
		}
		padding := rng.Uint64N(1 << 20)
		if trial%5 == 0 {
			padding = 0
		}
		cs := mustCoords(t, records...)

		offsets := cs.ChrOffsets(padding)
		ranges := cs.ChrRanges(padding)
		for i := 0; i+1 < n; i++ {
			_, o0 := offsets.At(i)
			_, o1 := offsets.At(i + 1)
			if o1-o0 != records[i].Length+padding {
				t.Fatalf("offset[%d]-offset[%d] = %d, want %d", i+1, i, o1-o0, records[i].Length+padding)
			}
			if records[i].Length+padding > 0 && o1 <= o0 {
				t.Fatalf("offsets not strictly increasing at %d: %d, %d", i, o0, o1)
			}
			_, r0 := ranges.At(i)
			_, r1 := ranges.At(i + 1)
			if r1.Start-r0.End != padding {
				t.Fatalf("gap between ranges %d and %d = %d, want %d", i, i+1, r1.Start-r0.End, padding)
			}
		}
		for i, r := range records {
			_, rg := ranges.At(i)
			if rg.Len() != r.Length {
				t.Fatalf("range %q length = %d, want %d", r.Name, rg.Len(), r.Length)
			}
		}
		_, last := ranges.At(n - 1)
		if got := cs.TotalLength(padding); got != last.End {
			t.Fatalf("TotalLength = %d, want %d", got, last.End)
		}
	}
}

func TestChrLen(t *testing.T) {
	cs := mustCoords(t, ChromosomeRecord{"1", 1000}, ChromosomeRecord{"2", 0})
	tests := []struct {
		name   string
		want   uint64
		wantOK bool
	}{
		{"1", 1000, true},
		{"2", 0, true},
		{"3", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := cs.ChrLen(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ChrLen(%q) = %d, %v, want %d, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
	if _, ok := cs.ChrOffsets(10).Get("3"); ok {
		t.Error("ChrOffsets().Get(unknown) reported ok")
	}
}

func TestEmptyCoordinateSystem(t *testing.T) {
	cs := mustCoords(t)
	if got := cs.TotalLength(100); got != 0 {
		t.Errorf("TotalLength() = %d, want 0", got)
	}
	if got := cs.ChrOffsets(100).Len(); got != 0 {
		t.Errorf("ChrOffsets().Len() = %d, want 0", got)
	}
	if _, _, ok := cs.Locate(0, 100); ok {
		t.Error("Locate() on empty system reported ok")
	}
}

func TestNewCoordinateSystemRejectsBadNames(t *testing.T) {
	tests := []struct {
		name    string
		records []ChromosomeRecord
		want    error
	}{
		{"empty name", []ChromosomeRecord{{"1", 10}, {"", 10}}, ErrEmptyName},
		{"duplicate", []ChromosomeRecord{{"1", 10}, {"2", 10}, {"1", 5}}, ErrDuplicateChromosome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoordinateSystem("bad", tt.records)
			var dfe *DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("error = %v, want *DataFormatError", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want wrapping %v", err, tt.want)
			}
		})
	}
}

func TestLocate(t *testing.T) {
	cs := mustCoords(t, ChromosomeRecord{"1", 1000}, ChromosomeRecord{"2", 2000})
	tests := []struct {
		global    float64
		wantName  string
		wantLocal float64
		wantOK    bool
	}{
		{0, "1", 0, true},
		{999.5, "1", 999.5, true},
		{1000, "", 0, false}, // padding gap
		{1099, "", 0, false},
		{1100, "2", 0, true},
		{3099, "2", 1999, true},
		{3100, "", 0, false},
		{-1, "", 0, false},
	}
	for _, tt := range tests {
		name, local, ok := cs.Locate(tt.global, 100)
		if name != tt.wantName || local != tt.wantLocal || ok != tt.wantOK {
			t.Errorf("Locate(%v) = %q, %v, %v, want %q, %v, %v",
				tt.global, name, local, ok, tt.wantName, tt.wantLocal, tt.wantOK)
		}
	}
}
