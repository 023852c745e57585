// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/scroll-align/internal/scroll"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Engine() EngineConfig
	Browser() BrowserConfig
	Network() NetworkConfig
	Scroll() ScrollConfig

	// Engine Setters
	SetEngineWorkerConcurrency(int)

	// Browser Setters
	SetBrowserHeadless(bool)

	// Scroll Setters
	SetScrollBlock(string)
	SetScrollInline(string)
	SetScrollMode(string)
	SetScrollSkipOverflowHidden(bool)
}

// Config holds the entire application configuration. Fields are exported so
// viper can populate them; callers should prefer the Interface getters.
type Config struct {
	LoggerCfg  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	EngineCfg  EngineConfig  `mapstructure:"engine" yaml:"engine"`
	BrowserCfg BrowserConfig `mapstructure:"browser" yaml:"browser"`
	NetworkCfg NetworkConfig `mapstructure:"network" yaml:"network"`
	ScrollCfg  ScrollConfig  `mapstructure:"scroll" yaml:"scroll"`
}

var _ Interface = (*Config)(nil)

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig   { return c.LoggerCfg }
func (c *Config) Engine() EngineConfig   { return c.EngineCfg }
func (c *Config) Browser() BrowserConfig { return c.BrowserCfg }
func (c *Config) Network() NetworkConfig { return c.NetworkCfg }
func (c *Config) Scroll() ScrollConfig   { return c.ScrollCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetEngineWorkerConcurrency(w int) { c.EngineCfg.WorkerConcurrency = w }
func (c *Config) SetBrowserHeadless(b bool)        { c.BrowserCfg.Headless = b }
func (c *Config) SetScrollBlock(s string)          { c.ScrollCfg.Block = s }
func (c *Config) SetScrollInline(s string)         { c.ScrollCfg.Inline = s }
func (c *Config) SetScrollMode(s string)           { c.ScrollCfg.Mode = s }
func (c *Config) SetScrollSkipOverflowHidden(b bool) {
	c.ScrollCfg.SkipOverflowHidden = b
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// EngineConfig configures batch processing of snapshot files.
type EngineConfig struct {
	WorkerConcurrency  int           `mapstructure:"worker_concurrency" yaml:"worker_concurrency"`
	DefaultTaskTimeout time.Duration `mapstructure:"default_task_timeout" yaml:"default_task_timeout"`
}

// BrowserConfig holds settings for the headless browser used by capture.
type BrowserConfig struct {
	Headless        bool           `mapstructure:"headless" yaml:"headless"`
	DisableGPU      bool           `mapstructure:"disable_gpu" yaml:"disable_gpu"`
	IgnoreTLSErrors bool           `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	Debug           bool           `mapstructure:"debug" yaml:"debug"`
	Args            []string       `mapstructure:"args" yaml:"args"`
	Viewport        map[string]int `mapstructure:"viewport" yaml:"viewport"`
}

// NetworkConfig tunes page loading.
type NetworkConfig struct {
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	PostLoadWait      time.Duration `mapstructure:"post_load_wait" yaml:"post_load_wait"`
}

// ScrollConfig holds the default alignment policy and the live scroll loop
// limits.
type ScrollConfig struct {
	Block              string        `mapstructure:"block" yaml:"block"`
	Inline             string        `mapstructure:"inline" yaml:"inline"`
	Mode               string        `mapstructure:"mode" yaml:"mode"`
	SkipOverflowHidden bool          `mapstructure:"skip_overflow_hidden" yaml:"skip_overflow_hidden"`
	MaxIterations      int           `mapstructure:"max_iterations" yaml:"max_iterations"`
	SettleTime         time.Duration `mapstructure:"settle_time" yaml:"settle_time"`
}

// Options translates the configured names into scroll options. The boundary
// is left unset; it is supplied per call.
func (s ScrollConfig) Options() (scroll.Options, error) {
	block, err := scroll.ParseAlignment(s.Block, scroll.AlignCenter)
	if err != nil {
		return scroll.Options{}, fmt.Errorf("scroll.block: %w", err)
	}
	inline, err := scroll.ParseAlignment(s.Inline, scroll.AlignNearest)
	if err != nil {
		return scroll.Options{}, fmt.Errorf("scroll.inline: %w", err)
	}
	mode, err := scroll.ParseScrollMode(s.Mode)
	if err != nil {
		return scroll.Options{}, fmt.Errorf("scroll.mode: %w", err)
	}
	return scroll.Options{
		Block:                      block,
		Inline:                     inline,
		ScrollMode:                 mode,
		SkipOverflowHiddenElements: s.SkipOverflowHidden,
	}, nil
}

// Validate checks the scroll settings.
func (s *ScrollConfig) Validate() error {
	if _, err := s.Options(); err != nil {
		return err
	}
	if s.MaxIterations <= 0 {
		return fmt.Errorf("scroll.max_iterations must be a positive integer")
	}
	if s.SettleTime < 0 {
		return fmt.Errorf("scroll.settle_time must not be negative")
	}
	return nil
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "scroll-align")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Engine --
	v.SetDefault("engine.worker_concurrency", 8)
	v.SetDefault("engine.default_task_timeout", "2m")

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.disable_gpu", true)
	v.SetDefault("browser.ignore_tls_errors", false)
	v.SetDefault("browser.debug", false)
	v.SetDefault("browser.viewport", map[string]int{"width": 1280, "height": 800})

	// -- Network --
	v.SetDefault("network.navigation_timeout", "90s")
	v.SetDefault("network.post_load_wait", "500ms")

	// -- Scroll --
	v.SetDefault("scroll.block", string(scroll.AlignCenter))
	v.SetDefault("scroll.inline", string(scroll.AlignNearest))
	v.SetDefault("scroll.mode", string(scroll.ModeAlways))
	v.SetDefault("scroll.skip_overflow_hidden", false)
	v.SetDefault("scroll.max_iterations", 15)
	v.SetDefault("scroll.settle_time", "150ms")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.LoggerCfg.LogFile != "" {
		expanded, err := homedir.Expand(cfg.LoggerCfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("invalid logger.log_file %q: %w", cfg.LoggerCfg.LogFile, err)
		}
		cfg.LoggerCfg.LogFile = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	var errs []error
	if c.EngineCfg.WorkerConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("engine.worker_concurrency must be a positive integer"))
	}
	for _, dim := range []string{"width", "height"} {
		if c.BrowserCfg.Viewport[dim] < 0 {
			errs = append(errs, fmt.Errorf("browser.viewport.%s must not be negative", dim))
		}
	}
	if err := c.ScrollCfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
