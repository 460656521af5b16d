package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/gg-gwas"
	"github.com/gogpu/gg-gwas/ingest"
	"github.com/gogpu/gg-gwas/internal/parallel"
	"github.com/gogpu/gg-gwas/render"
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		pan  int
		zoom float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to a PNG file",
		Long: `Render one frame to a PNG file.

The initial view fits the whole track. --pan and --zoom apply input steps
before rendering, the same steps the arrow keys and the mouse wheel send
to "gwasview serve".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer c.stopProfiling()
			app, renderer, err := c.load(cmd)
			if err != nil {
				return err
			}

			step := 1
			if pan < 0 {
				step = -1
			}
			for range pan * step {
				app.Pan(step)
			}
			if zoom != 0 {
				app.Zoom(zoom, gwas.ScrollLine)
			}

			frame := app.Frame()
			target := render.NewTarget(c.cfg.Render.Width, c.cfg.Render.Height)
			defer target.Close()
			if err := renderer.Render(target, frame); err != nil {
				return err
			}
			if err := target.SavePNG(c.cfg.Render.Output); err != nil {
				return fmt.Errorf("save %s: %w", c.cfg.Render.Output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.cfg.Render.Output, renderer.Caption(frame))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "gwas.png", "PNG file to write")
	cmd.Flags().IntVar(&pan, "pan", 0, "pan steps before rendering, negative pans left")
	cmd.Flags().Float64Var(&zoom, "zoom", 0, "wheel delta in lines applied before rendering, positive zooms in")
	return cmd
}

// load reads both inputs and builds the application state and a renderer
// for it.
func (c *cli) load(cmd *cobra.Command) (*gwas.App, *render.SoftwareRenderer, error) {
	data, err := ingest.Load(cmd.Context(), c.cfg.Coords, c.cfg.Data)
	if err != nil {
		return nil, nil, err
	}
	if n := data.Skipped(); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d records on chromosomes missing from %s\n", n, c.cfg.Coords)
	}

	pool := parallel.NewWorkerPool(0)
	buffers := data.Buffers(pool)
	pool.Close()

	renderer, err := render.NewSoftwareRenderer(buffers,
		render.WithPointRadius(c.cfg.Render.PointRadius),
		render.WithLabels(c.cfg.Render.Labels),
		render.WithCaption(c.cfg.Render.Caption),
	)
	if err != nil {
		return nil, nil, err
	}
	return gwas.NewApp(data, c.cfg.AppOptions()...), renderer, nil
}
