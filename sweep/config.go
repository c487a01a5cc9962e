// SPDX-License-Identifier: MIT

package sweep

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/phonsep/activation"
	"github.com/katalvlaran/phonsep/cluster"
	"github.com/katalvlaran/phonsep/phonetics"
	"github.com/katalvlaran/phonsep/report"
	"github.com/katalvlaran/phonsep/segmentation"
)

// LayerPlaceholder is replaced by a layer's file name in SystemConfig.FilePattern.
const LayerPlaceholder = "{layer}"

// Defaults applied by DefaultConfig and to zero-valued system fields.
const (
	DefaultPermutations = 5000
	DefaultFilePattern  = LayerPlaceholder + ".json"
	DefaultOutputPath   = "results.csv"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("sweep: invalid config")

// Config is the root of a sweep configuration file.
type Config struct {
	Systems    []SystemConfig `yaml:"systems"`
	Labellings []string       `yaml:"labellings"`
	Measures   []string       `yaml:"measures"`

	// PCADims and Permutations are pointers so that "absent" (no PCA, no
	// p-value) differs from an explicit, invalid 0.
	PCADims      *int `yaml:"pca_dims,omitempty"`
	Permutations *int `yaml:"permutations"`

	Seed               uint64 `yaml:"seed"`
	Workers            int    `yaml:"workers"` // 0 = one per CPU
	DistanceCacheLimit int    `yaml:"distance_cache_limit"`

	Output OutputConfig `yaml:"output"`
}

// SystemConfig locates the inputs of one acoustic-model system.
type SystemConfig struct {
	Name           string `yaml:"name"`
	Segmentation   string `yaml:"segmentation"`
	ActivationsDir string `yaml:"activations_dir"`
	// FilePattern names a layer file inside ActivationsDir; LayerPlaceholder
	// is substituted with each of the layer's file candidates in turn.
	FilePattern      string   `yaml:"file_pattern"`
	Layers           []string `yaml:"layers,omitempty"` // empty = all layers
	SamplesPerFrame  int64    `yaml:"samples_per_frame"`
	IgnoreExtraWords bool     `yaml:"ignore_extra_words"`
}

// OutputConfig controls the results table.
type OutputConfig struct {
	Path      string `yaml:"path"`
	Precision int    `yaml:"precision"`
	NAString  string `yaml:"na_string"`
	Delimiter string `yaml:"delimiter"`
}

// DefaultConfig returns the values used for keys a file omits. It names no
// systems, so it does not validate on its own.
func DefaultConfig() *Config {
	perms := DefaultPermutations
	return &Config{
		Labellings:         []string{"phone", "place", "manner", "front", "close"},
		Measures:           []string{cluster.Fisher.String()},
		Permutations:       &perms,
		Seed:               1,
		DistanceCacheLimit: cluster.DefaultDistanceCacheLimit,
		Output: OutputConfig{
			Path:      DefaultOutputPath,
			Precision: 6,
			NAString:  "NA",
			Delimiter: ",",
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig is LoadConfig on an in-memory document.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes c as YAML, creating the parent directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExampleConfig is DefaultConfig with one placeholder system, suitable as a
// starting point for a new sweep file.
func ExampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Systems = []SystemConfig{{
		Name:            "0",
		Segmentation:    "segmentation.json",
		ActivationsDir:  "activations",
		FilePattern:     DefaultFilePattern,
		SamplesPerFrame: segmentation.DefaultSamplesPerFrame,
	}}

	return cfg
}

func (c *Config) applyDefaults() {
	for i := range c.Systems {
		s := &c.Systems[i]
		if s.FilePattern == "" {
			s.FilePattern = DefaultFilePattern
		}
		if s.SamplesPerFrame == 0 {
			s.SamplesPerFrame = segmentation.DefaultSamplesPerFrame
		}
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
}

// Validate reports every problem in c at once, each wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	_, err := c.plan()
	return err
}

// CSVConfig translates the output section for report.NewCSVWriter.
func (c *Config) CSVConfig() *report.CSVConfig {
	cfg := report.DefaultCSVConfig()
	cfg.Precision = c.Output.Precision
	cfg.NAString = c.Output.NAString
	if r := []rune(c.Output.Delimiter); len(r) == 1 {
		cfg.Comma = r[0]
	}

	return cfg
}

type namedLabelling struct {
	name string
	fn   phonetics.Labelling
}

type systemPlan struct {
	SystemConfig
	layers []activation.Layer
}

// plan is a validated Config with every name resolved.
type plan struct {
	systems    []systemPlan
	labellings []namedLabelling
	measures   []cluster.Measure
}

func (c *Config) plan() (*plan, error) {
	var errs error
	invalid := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}
	p := &plan{}

	if len(c.Systems) == 0 {
		invalid("no systems")
	}
	seen := make(map[string]bool)
	for i, s := range c.Systems {
		if s.Name == "" {
			invalid("systems[%d]: empty name", i)
		} else if seen[s.Name] {
			invalid("systems[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
		if s.Segmentation == "" {
			invalid("system %q: empty segmentation path", s.Name)
		}
		if s.ActivationsDir == "" {
			invalid("system %q: empty activations_dir", s.Name)
		}
		if !strings.Contains(s.FilePattern, LayerPlaceholder) {
			invalid("system %q: file_pattern %q lacks %s", s.Name, s.FilePattern, LayerPlaceholder)
		}
		if s.SamplesPerFrame <= 0 {
			invalid("system %q: samples_per_frame must be positive", s.Name)
		}
		sp := systemPlan{SystemConfig: s, layers: activation.AllLayers()}
		if len(s.Layers) > 0 {
			sp.layers = nil
			for _, name := range s.Layers {
				l, err := activation.ParseLayer(name)
				if err != nil {
					invalid("system %q: %v", s.Name, err)
					continue
				}
				sp.layers = append(sp.layers, l)
			}
		}
		p.systems = append(p.systems, sp)
	}

	if len(c.Labellings) == 0 {
		invalid("no labellings")
	}
	for _, name := range c.Labellings {
		fn, err := phonetics.LabellingByName(name)
		if err != nil {
			invalid("%v", err)
			continue
		}
		p.labellings = append(p.labellings, namedLabelling{name: name, fn: fn})
	}

	if len(c.Measures) == 0 {
		invalid("no measures")
	}
	for _, name := range c.Measures {
		m, err := cluster.ParseMeasure(name)
		if err != nil {
			invalid("%v", err)
			continue
		}
		p.measures = append(p.measures, m)
	}

	if c.PCADims != nil && *c.PCADims < 1 {
		invalid("pca_dims must be at least 1, got %d", *c.PCADims)
	}
	if c.Permutations != nil && *c.Permutations < 1 {
		invalid("permutations must be at least 1, got %d", *c.Permutations)
	}
	if c.Workers < 0 {
		invalid("workers must not be negative")
	}
	if c.Output.Precision < 0 {
		invalid("output.precision must not be negative")
	}
	if n := len([]rune(c.Output.Delimiter)); n > 1 {
		invalid("output.delimiter must be a single character")
	}
	if errs != nil {
		return nil, errs
	}

	return p, nil
}
