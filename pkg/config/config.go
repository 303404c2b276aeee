// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🕒 ModifiedStats is the textual form of copydir.ModifiedStats
type ModifiedStats struct {
	Mode         string `json:"mode,omitempty" yaml:"mode,omitempty" hcl:"mode,optional"`                            // Octal permission bits, e.g. "0644"
	AccessTime   string `json:"access_time,omitempty" yaml:"access_time,omitempty" hcl:"access_time,optional"`       // RFC3339
	ModifiedTime string `json:"modified_time,omitempty" yaml:"modified_time,omitempty" hcl:"modified_time,optional"` // RFC3339
}

// 📦 Copy is one source tree to copy into one destination
type Copy struct {
	Name          string         `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,label"`
	Source        string         `json:"source" yaml:"source" hcl:"source,optional"`
	Destination   string         `json:"destination" yaml:"destination" hcl:"destination,optional"`
	Overwrite     bool           `json:"overwrite,omitempty" yaml:"overwrite,omitempty" hcl:"overwrite,optional"`
	Debug         bool           `json:"debug,omitempty" yaml:"debug,omitempty" hcl:"debug,optional"`
	Symlinks      string         `json:"symlinks,omitempty" yaml:"symlinks,omitempty" hcl:"symlinks,optional"`
	Include       []string       `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Exclude       []string       `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	IgnoreFile    string         `json:"ignore_file,omitempty" yaml:"ignore_file,omitempty" hcl:"ignore_file,optional"`
	ModifiedStats *ModifiedStats `json:"modified_stats,omitempty" yaml:"modified_stats,omitempty" hcl:"modified_stats,block"`

	// fs is where the config was loaded from; nil means the OS filesystem
	fs afero.Fs
}

func (c *Copy) filesystem() afero.Fs {
	if c.fs == nil {
		return afero.NewOsFs()
	}
	return c.fs
}

// 📚 Config represents the complete configuration
type Config struct {
	Async  bool   `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
	Copies []Copy `json:"copies" yaml:"copies" hcl:"copy,block"`
}

// 🎯 Load loads the configuration from a file on the OS filesystem
func Load(ctx context.Context, path string) (*Config, error) {
	return LoadFs(ctx, afero.NewOsFs(), path)
}

// 🎯 LoadFs loads the configuration from path on fsys. Relative sources and
// destinations are resolved against the directory holding the file.
func LoadFs(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	base := filepath.Dir(path)
	for i := range cfg.Copies {
		cfg.Copies[i].Source = resolve(base, cfg.Copies[i].Source)
		cfg.Copies[i].Destination = resolve(base, cfg.Copies[i].Destination)
		cfg.Copies[i].fs = fsys
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Int("copies", len(cfg.Copies)).Bool("async", cfg.Async).Msg("configuration loaded")
	return cfg, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Copies) == 0 {
		return errors.Errorf("at least one copy is required")
	}

	for i := range cfg.Copies {
		if err := cfg.Copies[i].Validate(); err != nil {
			return errors.Errorf("copies[%d]: %w", i, err)
		}
		if cfg.Copies[i].Name == "" {
			cfg.Copies[i].Name = fmt.Sprintf("copies[%d]", i)
		}
	}

	return nil
}

// 🔍 Validate checks a single copy and cleans its paths
func (c *Copy) Validate() error {
	if c.Source == "" {
		return errors.Errorf("source is required")
	}
	if c.Destination == "" {
		return errors.Errorf("destination is required")
	}

	c.Source = filepath.Clean(c.Source)
	c.Destination = filepath.Clean(c.Destination)

	if Within(c.Source, c.Destination) {
		return errors.Errorf("destination %s is inside source %s", c.Destination, c.Source)
	}

	// building the options checks symlinks, patterns and stats
	if _, err := c.options(true); err != nil {
		return err
	}

	return nil
}

// 📝 String returns a string representation of the copy
func (c *Copy) String() string {
	return fmt.Sprintf("%s -> %s", c.Source, c.Destination)
}

// 📂 Within reports whether child is parent or lies below it
func Within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
