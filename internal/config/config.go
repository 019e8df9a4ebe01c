// Package config loads imagefilter CLI settings.
//
// Values are resolved with the following precedence (highest first):
//  1. command-line flags
//  2. IMAGEFILTER_* environment variables
//  3. a config file (.imagefilter.yaml)
//  4. built-in defaults
package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/imagefilter"
	intImage "github.com/gogpu/imagefilter/internal/image"
)

// Supported log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "IMAGEFILTER"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved CLI configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log-level" json:"logLevel"`

	// LogFormat is one of text, json.
	LogFormat string `mapstructure:"log-format" json:"logFormat"`

	// Quiet raises the effective log level to error.
	Quiet bool `mapstructure:"quiet" json:"quiet"`

	// BlurAmount is the default blur radius.
	BlurAmount int `mapstructure:"blur-amount" json:"blurAmount"`

	// Brightness is the default brighten factor.
	Brightness float64 `mapstructure:"brightness" json:"brightness"`

	// JPEGQuality is used when the output file is a JPEG.
	JPEGQuality int `mapstructure:"jpeg-quality" json:"jpegQuality"`

	// ConfigFile is the config file that was read, if any. Not loaded from config.
	ConfigFile string `mapstructure:"-" json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:    LogLevelInfo,
		LogFormat:   LogFormatText,
		BlurAmount:  imagefilter.DefaultBlurAmount,
		Brightness:  imagefilter.DefaultBrightness,
		JPEGQuality: intImage.DefaultJPEGQuality,
	}
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("%w: log level %q: must be one of debug, info, warn, error", ErrInvalid, c.LogLevel)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log format %q: must be one of text, json", ErrInvalid, c.LogFormat)
	}

	if c.BlurAmount < 0 {
		return fmt.Errorf("%w: blur amount %d: must not be negative", ErrInvalid, c.BlurAmount)
	}
	if c.Brightness < 0 || math.IsNaN(c.Brightness) || c.Brightness > math.MaxFloat32 {
		return fmt.Errorf("%w: brightness %v: must be a non-negative number", ErrInvalid, c.Brightness)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg quality %d: must be between 1 and 100", ErrInvalid, c.JPEGQuality)
	}

	return nil
}

// EffectiveLogLevel returns LogLevel, or "error" when Quiet is set.
func (c *Config) EffectiveLogLevel() string {
	if c.Quiet {
		return LogLevelError
	}
	return c.LogLevel
}

// Params returns the filter parameters carried by the configuration.
func (c *Config) Params() imagefilter.Params {
	return imagefilter.Params{
		BlurAmount: c.BlurAmount,
		Brightness: float32(c.Brightness),
	}
}

// Load resolves the configuration for cmd. configFile, when non-empty, must
// exist; otherwise .imagefilter.yaml is looked up in the working directory and
// in $HOME/.config/imagefilter. A fresh viper instance is used per call.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	configureEnv(v)

	if err := configureFile(v, configFile); err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("blur-amount", d.BlurAmount)
	v.SetDefault("brightness", d.Brightness)
	v.SetDefault("jpeg-quality", d.JPEGQuality)
}

func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

func configureFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", configFile, err)
		}
		return nil
	}

	v.SetConfigName(".imagefilter")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "imagefilter"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// bindFlags binds cmd's local flags and the persistent flags of cmd and
// every ancestor.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}
	}
	return nil
}

type ctxKey struct{}

// NewContext returns a child context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the Config stored in ctx, or Default().
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return Default()
}
