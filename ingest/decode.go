// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ingest decodes the two JSON inputs of a Manhattan plot, the
// coordinate system and the association dataset, into gwas core types.
//
// Coordinate system:
//
//	{"name": "GRCh38", "chrs": [{"name": "1", "len": 248956422}, ...]}
//
// Dataset (other fields of each record are ignored):
//
//	[{"chr": "1", "ps": 55550, "p_wald": 0.0032}, ...]
//
// Any malformed or missing field fails with *gwas.DataFormatError and no
// partially built value is returned.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/gogpu/gg-gwas"
)

const (
	coordsSource  = "coordinate system"
	datasetSource = "dataset"
)

type chrRecord struct {
	Name *string      `json:"name"`
	Len  *json.Number `json:"len"`
}

type coordsDocument struct {
	Name *string     `json:"name"`
	Chrs []chrRecord `json:"chrs"`
}

// ReadCoordinateSystem decodes a coordinate system document from r. The
// order of the chrs array is kept as the canonical chromosome order.
func ReadCoordinateSystem(r io.Reader) (*gwas.CoordinateSystem, error) {
	var doc coordsDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, &gwas.DataFormatError{Source: coordsSource, Index: -1, Err: err}
	}
	if doc.Name == nil {
		return nil, &gwas.DataFormatError{Source: coordsSource, Index: -1, Field: "name", Err: gwas.ErrMissingField}
	}
	if doc.Chrs == nil {
		return nil, &gwas.DataFormatError{Source: coordsSource, Index: -1, Field: "chrs", Err: gwas.ErrMissingField}
	}

	records := make([]gwas.ChromosomeRecord, 0, len(doc.Chrs))
	for i, c := range doc.Chrs {
		if c.Name == nil {
			return nil, &gwas.DataFormatError{Source: coordsSource, Index: i, Field: "name", Err: gwas.ErrMissingField}
		}
		var raw string
		if c.Len != nil {
			raw = c.Len.String()
		}
		n, err := gwas.ParseBasepairs(coordsSource, i, "len", raw)
		if err != nil {
			return nil, err
		}
		records = append(records, gwas.ChromosomeRecord{Name: *c.Name, Length: n})
	}
	return gwas.NewCoordinateSystem(*doc.Name, records)
}

type dataRecord struct {
	Chr   json.RawMessage `json:"chr"`
	Ps    *json.Number    `json:"ps"`
	PWald *json.Number    `json:"p_wald"`
}

// ReadDataset decodes a dataset array from r one record at a time, so the
// whole document is never held in memory as generic JSON values.
func ReadDataset(r io.Reader) ([]gwas.DataPoint, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var points []gwas.DataPoint
	for i := 0; dec.More(); i++ {
		var rec dataRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, &gwas.DataFormatError{Source: datasetSource, Index: i, Err: err}
		}
		p, err := rec.point(i)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return points, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return &gwas.DataFormatError{Source: datasetSource, Index: -1, Err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return &gwas.DataFormatError{Source: datasetSource, Index: -1,
			Err: fmt.Errorf("expected %q, found %v", want, tok)}
	}
	return nil
}

func (rec dataRecord) point(i int) (gwas.DataPoint, error) {
	fail := func(field string, err error) (gwas.DataPoint, error) {
		return gwas.DataPoint{}, &gwas.DataFormatError{Source: datasetSource, Index: i, Field: field, Err: err}
	}

	chr, err := chromosomeName(rec.Chr)
	if err != nil {
		return fail("chr", err)
	}

	var rawPos string
	if rec.Ps != nil {
		rawPos = rec.Ps.String()
	}
	pos, err := gwas.ParseBasepairs(datasetSource, i, "ps", rawPos)
	if err != nil {
		return gwas.DataPoint{}, err
	}

	if rec.PWald == nil {
		return fail("p_wald", gwas.ErrMissingField)
	}
	p, err := strconv.ParseFloat(rec.PWald.String(), 64)
	if err != nil || math.IsInf(p, 0) {
		return fail("p_wald", fmt.Errorf("%q is not a finite number", rec.PWald.String()))
	}

	return gwas.DataPoint{Chromosome: chr, Position: pos, Value: p}, nil
}

var errChromosomeType = errors.New("chromosome must be a string or integer")

// chromosomeName accepts "chr": "1" as well as the bare "chr": 1 some
// association tools write.
func chromosomeName(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", gwas.ErrMissingField
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		if s == "" {
			return "", gwas.ErrEmptyName
		}
		return s, nil
	default:
		n, err := strconv.ParseUint(string(raw), 10, 64)
		if err != nil {
			return "", errChromosomeType
		}
		return strconv.FormatUint(n, 10), nil
	}
}
