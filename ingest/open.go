// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gg-gwas"
)

// DefaultClient fetches http(s) locations. Startup blocks on it, so the
// only bound is the caller's context.
var DefaultClient = &http.Client{}

// Open returns a reader for location, which is either an http(s) URL or a
// file path. "-" reads standard input.
func Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case location == "":
		return nil, fmt.Errorf("ingest: empty location")
	case location == "-":
		return io.NopCloser(os.Stdin), nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return fetch(ctx, location)
	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("ingest: %w", err)
		}
		return f, nil
	}
}

func fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ingest: fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("ingest: fetch %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}

// LoadCoordinateSystem opens and decodes a coordinate system.
func LoadCoordinateSystem(ctx context.Context, location string) (*gwas.CoordinateSystem, error) {
	rc, err := Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadCoordinateSystem(rc)
}

// Load fetches the coordinate system and the dataset and partitions the
// dataset by it. Either both are built or an error is returned; records for
// unknown chromosomes are dropped, not fatal.
func Load(ctx context.Context, coordsLocation, dataLocation string) (*gwas.ChromosomeDataset, error) {
	start := time.Now()
	log := gwas.Logger()

	cs, err := LoadCoordinateSystem(ctx, coordsLocation)
	if err != nil {
		return nil, fmt.Errorf("load coordinate system %s: %w", coordsLocation, err)
	}
	log.Debug("coordinate system loaded", "location", coordsLocation, "name", cs.Name(), "chromosomes", cs.Len())

	rc, err := Open(ctx, dataLocation)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", dataLocation, err)
	}
	defer rc.Close()
	points, err := ReadDataset(rc)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", dataLocation, err)
	}

	data := gwas.Ingest(cs, points)
	log.Info("inputs loaded", "coords", coordsLocation, "data", dataLocation,
		"records", len(points), "elapsed", time.Since(start))
	return data, nil
}
