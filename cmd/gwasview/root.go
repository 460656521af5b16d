package main

import (
	"fmt"
	"log/slog"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/gg-gwas"
	"github.com/gogpu/gg-gwas/config"
)

// cli is the state shared by the commands of one invocation.
type cli struct {
	cfgFile string
	profile string

	cfg         config.Config
	stopProfile func()
}

// flagKeys maps flag names to settings keys.
var flagKeys = map[string]string{
	"coords":          "coords",
	"data":            "data",
	"log-level":       "log-level",
	"padding":         "layout.padding",
	"base-bp-width":   "layout.base-bp-width",
	"vertical-offset": "layout.vertical-offset",
	"value-floor":     "layout.value-floor",
	"width":           "render.width",
	"height":          "render.height",
	"point-radius":    "render.point-radius",
	"labels":          "render.labels",
	"caption":         "render.caption",
	"output":          "render.output",
	"addr":            "server.addr",
	"frame-cache":     "server.frame-cache",
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "gwasview",
		Short: "Render and serve pannable Manhattan plots of GWAS results",
		Long: `gwasview lays chromosomes end to end in one global coordinate space and
plots -log10(p) of every association at its global position. A single
pan/zoom view applies to the whole track.

Inputs are JSON, read from files or http(s) URLs:
  coordinate system  {"name": "GRCh38", "chrs": [{"name": "1", "len": 248956422}, ...]}
  dataset            [{"chr": "1", "ps": 55550, "p_wald": 0.0032}, ...]`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "settings file (yaml, json or toml)")
	pf.StringVar(&c.profile, "profile", "", "write a cpu or mem profile to the working directory")
	pf.String("coords", "", "coordinate system JSON, path or URL")
	pf.String("data", "", "dataset JSON, path or URL")
	pf.String("log-level", "info", "debug, info, warn or error")
	pf.Uint64("padding", gwas.DefaultPadding, "basepairs between adjacent chromosomes")
	pf.Float64("base-bp-width", gwas.DefaultBaseBpWidth, "pixels-per-basepair baseline")
	pf.Float64("vertical-offset", gwas.DefaultVerticalOffset, "normalized y of the value floor")
	pf.Float64("value-floor", 0, "minimum -log10(p) drawn")
	pf.Int("width", 1280, "viewport width in pixels")
	pf.Int("height", 480, "viewport height in pixels")
	pf.Float64("point-radius", 2, "point radius in pixels")
	pf.Bool("labels", true, "draw chromosome labels")
	pf.Bool("caption", false, "draw the visible locus range")

	root.AddCommand(newRenderCmd(c), newServeCmd(c))
	return root
}

// setup loads the settings, installs the logger and starts profiling.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(c.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	if c.cfg, err = config.Load(v); err != nil {
		return err
	}

	level, _ := c.cfg.Level()
	gwas.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	switch c.profile {
	case "":
	case "cpu":
		c.stopProfile = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop
	case "mem":
		c.stopProfile = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop
	default:
		return fmt.Errorf("--profile must be cpu or mem, got %q", c.profile)
	}
	return nil
}

// stopProfiling flushes the profile started by setup, if any. Commands
// defer it so the profile is written on error paths too.
func (c *cli) stopProfiling() {
	if c.stopProfile != nil {
		c.stopProfile()
		c.stopProfile = nil
	}
}

// bindFlags binds every flag known to cmd to its settings key, so explicitly
// set flags override the settings file and environment.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
