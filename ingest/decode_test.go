// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gg-gwas"
)

func TestReadCoordinateSystem(t *testing.T) {
	cs, err := ReadCoordinateSystem(strings.NewReader(`{
		"name": "GRCh38",
		"chrs": [
			{"name": "2", "len": 2000},
			{"name": "10", "len": 1e3},
			{"name": "X", "len": 500.0, "extra": true}
		]
	}`))
	if err != nil {
		t.Fatalf("ReadCoordinateSystem() = %v", err)
	}
	if cs.Name() != "GRCh38" {
		t.Errorf("Name() = %q, want GRCh38", cs.Name())
	}
	if got := strings.Join(cs.Names(), ","); got != "2,10,X" {
		t.Errorf("Names() = %v, want [2 10 X]", got)
	}
	if n, _ := cs.ChrLen("10"); n != 1000 {
		t.Errorf(`ChrLen("10") = %d, want 1000`, n)
	}
}

func TestReadCoordinateSystemErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
		wantIndex int
		wantErr   error
	}{
		{"not json", `{"name":`, "", -1, nil},
		{"missing name", `{"chrs": []}`, "name", -1, gwas.ErrMissingField},
		{"missing chrs", `{"name": "x"}`, "chrs", -1, gwas.ErrMissingField},
		{"record without name", `{"name": "x", "chrs": [{"len": 1}]}`, "name", 0, gwas.ErrMissingField},
		{"record without len", `{"name": "x", "chrs": [{"name": "1", "len": 1}, {"name": "2"}]}`, "len", 1, gwas.ErrMissingField},
		{"negative len", `{"name": "x", "chrs": [{"name": "1", "len": -5}]}`, "len", 0, gwas.ErrNotBasepair},
		{"fractional len", `{"name": "x", "chrs": [{"name": "1", "len": 2.5}]}`, "len", 0, gwas.ErrNotBasepair},
		{"duplicate", `{"name": "x", "chrs": [{"name": "1", "len": 1}, {"name": "1", "len": 2}]}`, "name", 1, gwas.ErrDuplicateChromosome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := ReadCoordinateSystem(strings.NewReader(tt.input))
			if cs != nil {
				t.Errorf("returned partial coordinate system %v", cs.Names())
			}
			var dfe *gwas.DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("error = %v, want *gwas.DataFormatError", err)
			}
			if dfe.Field != tt.wantField || dfe.Index != tt.wantIndex {
				t.Errorf("error at field %q index %d, want %q index %d", dfe.Field, dfe.Index, tt.wantField, tt.wantIndex)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadDataset(t *testing.T) {
	points, err := ReadDataset(strings.NewReader(`[
		{"chr": "1", "ps": 55550, "p_wald": 0.0032, "rs": "rs123"},
		{"chr": 2, "ps": 1e4, "p_wald": 1e-8},
		{"chr": "X", "ps": 7, "p_wald": 0}
	]`))
	if err != nil {
		t.Fatalf("ReadDataset() = %v", err)
	}
	want := []gwas.DataPoint{
		{Chromosome: "1", Position: 55550, Value: 0.0032},
		{Chromosome: "2", Position: 10000, Value: 1e-8},
		{Chromosome: "X", Position: 7, Value: 0},
	}
	if len(points) != len(want) {
		t.Fatalf("len = %d, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestReadDatasetEmpty(t *testing.T) {
	points, err := ReadDataset(strings.NewReader(" [ ] "))
	if err != nil || len(points) != 0 {
		t.Errorf("ReadDataset([]) = %v, %v, want empty", points, err)
	}
}

func TestReadDatasetErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
		wantIndex int
	}{
		{"object instead of array", `{"chr": "1"}`, "", -1},
		{"truncated", `[{"chr": "1", "ps": 1, "p_wald": 0.1}`, "", -1},
		{"missing chr", `[{"ps": 1, "p_wald": 0.1}]`, "chr", 0},
		{"null chr", `[{"chr": null, "ps": 1, "p_wald": 0.1}]`, "chr", 0},
		{"bool chr", `[{"chr": true, "ps": 1, "p_wald": 0.1}]`, "chr", 0},
		{"missing ps", `[{"chr": "1", "p_wald": 0.1}]`, "ps", 0},
		{"negative ps", `[{"chr": "1", "ps": 1, "p_wald": 0.1}, {"chr": "1", "ps": -1, "p_wald": 0.1}]`, "ps", 1},
		{"missing p", `[{"chr": "1", "ps": 1}]`, "p_wald", 0},
		{"string p", `[{"chr": "1", "ps": 1, "p_wald": "NA"}]`, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := ReadDataset(strings.NewReader(tt.input))
			if points != nil {
				t.Errorf("returned %d partial points", len(points))
			}
			var dfe *gwas.DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("error = %v, want *gwas.DataFormatError", err)
			}
			if dfe.Field != tt.wantField || dfe.Index != tt.wantIndex {
				t.Errorf("error at field %q index %d, want %q index %d (%v)", dfe.Field, dfe.Index, tt.wantField, tt.wantIndex, err)
			}
		})
	}
}
