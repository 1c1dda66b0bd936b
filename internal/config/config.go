// Package config handles configuration loading and parcel file discovery.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	DataDir   string   `yaml:"data_dir,omitempty"`
	OutputDir string   `yaml:"output_dir,omitempty"`
	Parcels   []Parcel `yaml:"parcels,omitempty"`

	// Count expands to the conventional parcelN_*.txt file names when no
	// parcels are listed explicitly.
	Count int `yaml:"count,omitempty"`
}

// Parcel names one parcel's input files. Relative paths are resolved
// against DataDir during Normalize.
type Parcel struct {
	Name     string `yaml:"name"`
	Start    string `yaml:"start"`
	Bearings string `yaml:"bearings"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Normalize fills defaults and resolves parcel file paths. When the parcel
// list is empty it generates Count parcels (default 2) using the
// conventional names parcelN_start_lat_lon.txt / parcelN_bearing_distance.txt.
func (c *Config) Normalize() error {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	if len(c.Parcels) == 0 {
		count := c.Count
		if count <= 0 {
			count = 2
		}
		for n := 1; n <= count; n++ {
			c.Parcels = append(c.Parcels, Parcel{
				Name:     fmt.Sprintf("Parcel %d", n),
				Start:    fmt.Sprintf("parcel%d_start_lat_lon.txt", n),
				Bearings: fmt.Sprintf("parcel%d_bearing_distance.txt", n),
			})
		}
	}

	for i := range c.Parcels {
		p := &c.Parcels[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("Parcel %d", i+1)
		}
		if p.Start == "" || p.Bearings == "" {
			return fmt.Errorf("parcel %q: start and bearings files are required", p.Name)
		}
		if !filepath.IsAbs(p.Start) {
			p.Start = filepath.Join(c.DataDir, p.Start)
		}
		if !filepath.IsAbs(p.Bearings) {
			p.Bearings = filepath.Join(c.DataDir, p.Bearings)
		}
	}

	return nil
}
