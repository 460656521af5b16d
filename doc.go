// Package gwas is the coordinate and viewport engine of a pannable,
// zoomable genome-wide association (Manhattan) plot.
//
// # Overview
//
// Chromosomes are concatenated, in the order they were ingested, into one
// linear global coordinate space with a fixed padding between neighbours.
// A single View (pan center and zoom scale) applies to the whole track.
// Every frame the renderer receives one affine transform per chromosome that
// maps chromosome-local basepair positions into normalized render-target
// coordinates; the same view inverts pixel positions back to genomic ones
// for hit-testing.
//
// # Quick Start
//
//	cs, _ := gwas.NewCoordinateSystem("GRCh38", []gwas.ChromosomeRecord{
//	    {Name: "1", Length: 248_956_422},
//	    {Name: "2", Length: 242_193_529},
//	})
//	data := gwas.Ingest(cs, points)
//	app := gwas.NewApp(data, gwas.WithPadding(gwas.DefaultPadding))
//
//	// input goroutine
//	app.Zoom(-3, gwas.ScrollLine)
//
//	// render loop
//	frame := app.Frame()
//
// # Architecture
//
//   - CoordinateSystem: ordered chromosome table, offsets and ranges
//   - View, Mat4: pan/zoom state and the forward/inverse transforms
//   - SharedViewState: lock-free single-slot view cell
//   - ChromosomeDataset: points partitioned by chromosome, vertex buffers
//   - PerChromosomeUniforms: per-frame parameter blocks
//   - App: owns all of the above for one session
//
// The ingest package decodes the JSON inputs, render draws frames with gg
// and server exposes the input interface over HTTP.
//
// # Thread Safety
//
// CoordinateSystem and ChromosomeDataset are immutable after construction.
// SharedViewState is safe for concurrent use; concurrent writers are not
// serialized and the last store wins. PerChromosomeUniforms and App.Frame
// belong to a single render goroutine.
//
// # Logging
//
// Silent by default; see SetLogger.
package gwas
