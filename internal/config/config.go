// Package config handles objtool configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objkit/pkg/wavefront"
)

// Config holds all settings.
type Config struct {
	Parse   ParseConfig   `yaml:"parse"`
	Load    LoadConfig    `yaml:"load"`
	Assets  AssetsConfig  `yaml:"assets"`
	Workers WorkersConfig `yaml:"workers"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParseConfig holds OBJ/MTL parser settings.
type ParseConfig struct {
	Strict  bool   `yaml:"strict"`  // reject non-uniform face records
	Charset string `yaml:"charset"` // legacy charset of names, e.g. euc-kr
}

// LoadConfig selects which objects are loaded and what is built for them.
type LoadConfig struct {
	LoadAll        bool                                  `yaml:"load_all"`
	CreateBoundBox bool                                  `yaml:"create_bound_box"`
	Objects        map[string]wavefront.MeshLoadProperty `yaml:"objects"`
}

// AssetsConfig holds model file lookup settings.
type AssetsConfig struct {
	SearchPaths []string `yaml:"search_paths"`
	CacheSize   int      `yaml:"cache_size"` // cached files, 0 disables the cache
}

// WorkersConfig holds background loader settings.
type WorkersConfig struct {
	Count       int           `yaml:"count"`
	QueueSize   int           `yaml:"queue_size"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// PreviewConfig holds preview image settings.
type PreviewConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Padding int `yaml:"padding"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			Strict:  false,
			Charset: "",
		},
		Load: LoadConfig{
			LoadAll:        true,
			CreateBoundBox: false,
		},
		Assets: AssetsConfig{
			SearchPaths: []string{"."},
			CacheSize:   64,
		},
		Workers: WorkersConfig{
			Count:       4,
			QueueSize:   256,
			IdleTimeout: time.Second,
		},
		Preview: PreviewConfig{
			Width:   512,
			Height:  512,
			Padding: 16,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers.Count < 1 {
		errs = append(errs, fmt.Errorf("workers.count must be at least 1, got %d", c.Workers.Count))
	}
	if c.Workers.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("workers.queue_size must be at least 1, got %d", c.Workers.QueueSize))
	}
	if c.Preview.Width < 1 || c.Preview.Height < 1 {
		errs = append(errs, fmt.Errorf("preview size must be positive, got %dx%d", c.Preview.Width, c.Preview.Height))
	}
	if 2*c.Preview.Padding >= min(c.Preview.Width, c.Preview.Height) {
		errs = append(errs, fmt.Errorf("preview.padding %d leaves no room to draw", c.Preview.Padding))
	}
	if c.Assets.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("assets.cache_size must not be negative, got %d", c.Assets.CacheSize))
	}
	return errors.Join(errs...)
}

// Properties converts the load section to parser load properties.
// With no objects listed every object is loaded.
func (l LoadConfig) Properties() *wavefront.LoadProperties {
	return &wavefront.LoadProperties{
		Objects:        l.Objects,
		LoadAll:        l.LoadAll || len(l.Objects) == 0,
		CreateBoundBox: l.CreateBoundBox,
	}
}

// ParseOptions builds parser options that log through log.
func (c *Config) ParseOptions(log *zap.Logger) wavefront.Options {
	return wavefront.Options{
		Logger:  log,
		Strict:  c.Parse.Strict,
		Charset: c.Parse.Charset,
	}
}
