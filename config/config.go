// Package config provides configuration loading and management for the
// guidance tooling.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete guidance configuration
type Config struct {
	Ontology OntologyConfig `yaml:"ontology"`
	Server   ServerConfig   `yaml:"server"`
	GraphDB  GraphDBConfig  `yaml:"graphdb"`
}

// OntologyConfig configures the ontology file settings
type OntologyConfig struct {
	// Path is the Turtle file the tooling operates on by default
	Path string `yaml:"path"`
	// ShapesPath is an optional separate shapes file for validation
	// (empty = shapes are read from the ontology file itself)
	ShapesPath string `yaml:"shapes_path"`
	// Backup controls whether a .bak copy is written before rewrites
	Backup bool `yaml:"backup"`
	// Inference enables RDFS inference before validation
	Inference bool `yaml:"inference"`
}

// ServerConfig configures the SPARQL HTTP server
type ServerConfig struct {
	// Addr is the listen address (default: :8000)
	Addr string `yaml:"addr"`
	// Watch reloads the graph when the source file changes
	Watch bool `yaml:"watch"`
	// DebounceDelay is how long to coalesce file events before reloading
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// GraphDBConfig configures the GraphDB connection
type GraphDBConfig struct {
	// URL is the GraphDB base URL (default: http://localhost:7200)
	URL string `yaml:"url"`
	// Username for basic auth (empty = no auth)
	Username string `yaml:"username"`
	// Password for basic auth
	Password string `yaml:"password"`
	// Repository is the default repository id
	Repository string `yaml:"repository"`
	// Timeout is the maximum time to wait for GraphDB responses
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Ontology: OntologyConfig{
			Path:      "guidance.ttl",
			Backup:    true,
			Inference: false,
		},
		Server: ServerConfig{
			Addr:          ":8000",
			Watch:         false,
			DebounceDelay: 500 * time.Millisecond,
		},
		GraphDB: GraphDBConfig{
			URL:     "http://localhost:7200",
			Timeout: 30 * time.Second,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Ontology.Path == "" {
		return fmt.Errorf("ontology.path is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.DebounceDelay < 0 {
		return fmt.Errorf("server.debounce_delay must not be negative")
	}
	if c.GraphDB.URL == "" {
		return fmt.Errorf("graphdb.url is required")
	}
	if c.GraphDB.Timeout < 0 {
		return fmt.Errorf("graphdb.timeout must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Ontology
	if other.Ontology.Path != "" {
		c.Ontology.Path = other.Ontology.Path
	}
	if other.Ontology.ShapesPath != "" {
		c.Ontology.ShapesPath = other.Ontology.ShapesPath
	}
	if other.Ontology.Backup {
		c.Ontology.Backup = true
	}
	if other.Ontology.Inference {
		c.Ontology.Inference = true
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.Watch {
		c.Server.Watch = true
	}
	if other.Server.DebounceDelay != 0 {
		c.Server.DebounceDelay = other.Server.DebounceDelay
	}

	// GraphDB
	if other.GraphDB.URL != "" {
		c.GraphDB.URL = other.GraphDB.URL
	}
	if other.GraphDB.Username != "" {
		c.GraphDB.Username = other.GraphDB.Username
	}
	if other.GraphDB.Password != "" {
		c.GraphDB.Password = other.GraphDB.Password
	}
	if other.GraphDB.Repository != "" {
		c.GraphDB.Repository = other.GraphDB.Repository
	}
	if other.GraphDB.Timeout != 0 {
		c.GraphDB.Timeout = other.GraphDB.Timeout
	}
}
