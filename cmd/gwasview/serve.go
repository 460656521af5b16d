package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gogpu/gg-gwas/server"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plot and its pan/zoom input over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer c.stopProfiling()
			app, renderer, err := c.load(cmd)
			if err != nil {
				return err
			}
			if level, _ := c.cfg.Level(); level > slog.LevelDebug {
				gin.SetMode(gin.ReleaseMode)
			}
			s := server.New(app, renderer, server.WithFrameCache(c.cfg.Server.FrameCache))
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.ListenAndServe(ctx, c.cfg.Server.Addr)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Int("frame-cache", 8, "encoded frames kept per cache shard")
	return cmd
}
