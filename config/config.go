// Copyright 2025 Poiesic Systems
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


// Package config loads and validates thesaurus configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/thesaurus/core"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration of a thesaurus installation.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Index    IndexConfig    `yaml:"index"`
	Tagging  TaggingConfig  `yaml:"tagging"`
}

// DatabaseConfig configures the BadgerDB store.
type DatabaseConfig struct {
	// Path is the BadgerDB directory. Created if missing.
	Path string `yaml:"path"`
	// InMemory keeps the database in memory and ignores Path.
	InMemory bool `yaml:"in_memory"`
}

// IndexConfig configures the Solr core documents are tagged in.
type IndexConfig struct {
	// URL is the Solr base URL, e.g. "http://localhost:8983/solr"
	URL string `yaml:"url"`
	// Core is the Solr core or collection name.
	Core string `yaml:"core"`
	// UniqueKey is the schema's unique key field. Default: "id"
	UniqueKey string `yaml:"unique_key"`
	// PageSize is the number of rows per select page and documents per update.
	// Default: 500
	PageSize int `yaml:"page_size"`
	// MaxRetries is the number of attempts for transient failures. Default: 3
	MaxRetries int `yaml:"max_retries"`
	// RetryDelay is the base delay for exponential backoff. Default: 500ms
	RetryDelay time.Duration `yaml:"retry_delay"`
	// Timeout bounds a single HTTP request. Default: 60s
	Timeout time.Duration `yaml:"timeout"`
}

// TaggingConfig configures tagging runs.
type TaggingConfig struct {
	// DefaultFacet is the field for values without a facet. Default: "tag_ss"
	DefaultFacet string `yaml:"default_facet"`
	// Workers is the number of concepts tagged concurrently by tag-all. Default: 1
	Workers int `yaml:"workers"`
	// Verbose adds "Checking ..." lines to tagging logs.
	Verbose bool `yaml:"verbose"`
	// StrictGroups turns looping group parent chains into errors.
	StrictGroups bool `yaml:"strict_groups"`
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithDatabasePath sets the BadgerDB directory.
func WithDatabasePath(path string) Option {
	return func(c *Config) {
		c.Database.Path = path
	}
}

// WithInMemory keeps the database in memory.
func WithInMemory(inMemory bool) Option {
	return func(c *Config) {
		c.Database.InMemory = inMemory
	}
}

// WithSolr sets the Solr base URL and core.
func WithSolr(url, core string) Option {
	return func(c *Config) {
		c.Index.URL = url
		c.Index.Core = core
	}
}

// WithPageSize sets the Solr page size.
func WithPageSize(n int) Option {
	return func(c *Config) {
		c.Index.PageSize = n
	}
}

// WithRetry sets the attempts and base delay for transient Solr failures.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Config) {
		c.Index.MaxRetries = maxRetries
		c.Index.RetryDelay = delay
	}
}

// WithDefaultFacet sets the field for values without a facet.
func WithDefaultFacet(field string) Option {
	return func(c *Config) {
		c.Tagging.DefaultFacet = field
	}
}

// WithWorkers sets the number of concurrent concepts in batch runs.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Tagging.Workers = n
	}
}

// WithVerbose enables verbose tagging logs.
func WithVerbose(verbose bool) Option {
	return func(c *Config) {
		c.Tagging.Verbose = verbose
	}
}

// DefaultConfig returns a Config for a local Solr and a database in the
// working directory.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "thesaurus.db",
		},
		Index: IndexConfig{
			URL:        "http://localhost:8983/solr",
			Core:       "core1",
			UniqueKey:  "id",
			PageSize:   500,
			MaxRetries: 3,
			RetryDelay: 500 * time.Millisecond,
			Timeout:    60 * time.Second,
		},
		Tagging: TaggingConfig{
			DefaultFacet: core.DefaultFacet,
			Workers:      1,
		},
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithDatabasePath("/var/lib/thesaurus"),
//	    WithSolr("http://solr:8983/solr", "documents"),
//	)
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize fills unset values with defaults and trims the Solr URL.
func (c *Config) Normalize() {
	defaults := DefaultConfig()

	c.Index.URL = strings.TrimRight(strings.TrimSpace(c.Index.URL), "/")
	if c.Index.UniqueKey == "" {
		c.Index.UniqueKey = defaults.Index.UniqueKey
	}
	if c.Index.PageSize == 0 {
		c.Index.PageSize = defaults.Index.PageSize
	}
	if c.Index.MaxRetries == 0 {
		c.Index.MaxRetries = defaults.Index.MaxRetries
	}
	if c.Index.Timeout == 0 {
		c.Index.Timeout = defaults.Index.Timeout
	}
	if c.Tagging.DefaultFacet == "" {
		c.Tagging.DefaultFacet = defaults.Tagging.DefaultFacet
	}
	if c.Tagging.Workers == 0 {
		c.Tagging.Workers = defaults.Tagging.Workers
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if !c.Database.InMemory && c.Database.Path == "" {
		return ErrMissingDatabasePath
	}
	if c.Index.URL == "" {
		return ErrMissingIndexURL
	}
	if c.Index.Core == "" {
		return ErrMissingIndexCore
	}
	if c.Index.PageSize < 1 {
		return fmt.Errorf("%w: index.page_size is %d", ErrInvalidValue, c.Index.PageSize)
	}
	if c.Index.MaxRetries < 1 {
		return fmt.Errorf("%w: index.max_retries is %d", ErrInvalidValue, c.Index.MaxRetries)
	}
	if c.Index.RetryDelay < 0 {
		return fmt.Errorf("%w: index.retry_delay is negative", ErrInvalidValue)
	}
	if c.Tagging.Workers < 1 {
		return fmt.Errorf("%w: tagging.workers is %d", ErrInvalidValue, c.Tagging.Workers)
	}
	if err := core.ValidateFacet(&core.Facet{Field: c.Tagging.DefaultFacet}); err != nil {
		return fmt.Errorf("tagging.default_facet: %w", err)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one. Non-zero values of other win.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Database.Path != "" {
		c.Database.Path = other.Database.Path
	}
	if other.Database.InMemory {
		c.Database.InMemory = true
	}

	if other.Index.URL != "" {
		c.Index.URL = other.Index.URL
	}
	if other.Index.Core != "" {
		c.Index.Core = other.Index.Core
	}
	if other.Index.UniqueKey != "" {
		c.Index.UniqueKey = other.Index.UniqueKey
	}
	if other.Index.PageSize != 0 {
		c.Index.PageSize = other.Index.PageSize
	}
	if other.Index.MaxRetries != 0 {
		c.Index.MaxRetries = other.Index.MaxRetries
	}
	if other.Index.RetryDelay != 0 {
		c.Index.RetryDelay = other.Index.RetryDelay
	}
	if other.Index.Timeout != 0 {
		c.Index.Timeout = other.Index.Timeout
	}

	if other.Tagging.DefaultFacet != "" {
		c.Tagging.DefaultFacet = other.Tagging.DefaultFacet
	}
	if other.Tagging.Workers != 0 {
		c.Tagging.Workers = other.Tagging.Workers
	}
	if other.Tagging.Verbose {
		c.Tagging.Verbose = true
	}
	if other.Tagging.StrictGroups {
		c.Tagging.StrictGroups = true
	}
}
