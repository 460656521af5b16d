// Package config holds the application settings of gwasview, unmarshalled
// by Viper from a settings file, GWAS_* environment variables and command
// line flags (see cmd/gwasview).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/gogpu/gg-gwas"
)

// EnvPrefix prefixes environment overrides, e.g. GWAS_LAYOUT_PADDING.
const EnvPrefix = "GWAS"

// Layout settings of the global coordinate space and the plot band.
type Layout struct {
	// basepairs between adjacent chromosomes
	Padding uint64 `mapstructure:"padding"`

	// pixels-per-basepair baseline of the view
	BaseBpWidth float64 `mapstructure:"base-bp-width"`

	// normalized y of a point with score equal to the value floor
	VerticalOffset float64 `mapstructure:"vertical-offset"`

	// points scoring below this -log10(p) are not drawn
	ValueFloor float64 `mapstructure:"value-floor"`
}

// Render settings for software rendering.
type Render struct {
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	PointRadius float64 `mapstructure:"point-radius"`
	Labels      bool    `mapstructure:"labels"`
	Caption     bool    `mapstructure:"caption"`

	// PNG path written by "gwasview render"
	Output string `mapstructure:"output"`
}

// Server settings for "gwasview serve".
type Server struct {
	Addr string `mapstructure:"addr"`

	// frames kept per cache shard
	FrameCache int `mapstructure:"frame-cache"`
}

// Config is the root-level settings struct.
type Config struct {
	// location of the coordinate system JSON, a path or http(s) URL
	Coords string `mapstructure:"coords"`

	// location of the dataset JSON, a path or http(s) URL
	Data string `mapstructure:"data"`

	LogLevel string `mapstructure:"log-level"`

	Layout Layout `mapstructure:"layout"`
	Render Render `mapstructure:"render"`
	Server Server `mapstructure:"server"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	// Keys without a default are invisible to AutomaticEnv during Unmarshal.
	v.SetDefault("coords", "")
	v.SetDefault("data", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("layout.padding", gwas.DefaultPadding)
	v.SetDefault("layout.base-bp-width", gwas.DefaultBaseBpWidth)
	v.SetDefault("layout.vertical-offset", gwas.DefaultVerticalOffset)
	v.SetDefault("layout.value-floor", 0.0)
	v.SetDefault("render.width", 1280)
	v.SetDefault("render.height", 480)
	v.SetDefault("render.point-radius", 2.0)
	v.SetDefault("render.labels", true)
	v.SetDefault("render.caption", false)
	v.SetDefault("render.output", "gwas.png")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.frame-cache", 8)
}

// New returns a Viper instance with defaults and environment overrides.
// If path is not empty the settings file is read as well.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if c.Coords == "" {
		errs = append(errs, errors.New("coords: location required"))
	}
	if c.Data == "" {
		errs = append(errs, errors.New("data: location required"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Layout.BaseBpWidth <= 0 {
		errs = append(errs, fmt.Errorf("layout.base-bp-width: %v is not positive", c.Layout.BaseBpWidth))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render: %dx%d: %w", c.Render.Width, c.Render.Height, gwas.ErrInvalidViewport))
	}
	if c.Render.PointRadius <= 0 {
		errs = append(errs, fmt.Errorf("render.point-radius: %v is not positive", c.Render.PointRadius))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn" or "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log-level: %w", err)
	}
	return l, nil
}

// AppOptions translates the layout settings for gwas.NewApp.
func (c Config) AppOptions() []gwas.AppOption {
	return []gwas.AppOption{
		gwas.WithPadding(c.Layout.Padding),
		gwas.WithBaseBpWidth(c.Layout.BaseBpWidth),
		gwas.WithVerticalOffset(c.Layout.VerticalOffset),
		gwas.WithValueFloor(c.Layout.ValueFloor),
		gwas.WithViewport(float64(c.Render.Width), float64(c.Render.Height)),
	}
}
