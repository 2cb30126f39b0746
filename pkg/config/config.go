// Package config loads gengine settings from YAML or JSON and builds the
// process logger from them.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPalette colors meshes whose material the scene does not define.
var DefaultPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// Config holds every tunable of the CLI and the preview server.
type Config struct {
	LogLevel    string   `json:"log_level" yaml:"log_level"`
	EvalTimeout Duration `json:"eval_timeout" yaml:"eval_timeout"`
	ListenAddr  string   `json:"listen_addr" yaml:"listen_addr"`
	// MeshCells is the marching-cubes resolution of the solid kernel.
	MeshCells int      `json:"mesh_cells" yaml:"mesh_cells"`
	Palette   []string `json:"palette" yaml:"palette"`
	// Workers bounds parallel meshing; 0 means one per CPU.
	Workers int  `json:"workers" yaml:"workers"`
	Horizon bool `json:"horizon" yaml:"horizon"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		EvalTimeout: Duration(5 * time.Second),
		ListenAddr:  "127.0.0.1:8080",
		MeshCells:   200,
		Palette:     append([]string(nil), DefaultPalette...),
		Horizon:     true,
	}
}

// LoadJSON loads config from a JSON reader. Absent fields keep their
// defaults.
func LoadJSON(r io.Reader) (*Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("config: decode json: %w", err)
	}
	return c, c.Validate()
}

// LoadYAML loads config from a YAML reader. Absent fields keep their
// defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return c, c.Validate()
}

// Load reads path, choosing the decoder from its extension. An empty path
// yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	if c.EvalTimeout <= 0 {
		return fmt.Errorf("config: eval_timeout must be positive, got %s", c.EvalTimeout)
	}
	if c.MeshCells <= 0 {
		return fmt.Errorf("config: mesh_cells must be positive, got %d", c.MeshCells)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("config: palette is empty")
	}
	return nil
}

// Logger builds a JSON logger on stderr at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log_level: %w", err)
	}
	zc := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return zc.Build()
}
