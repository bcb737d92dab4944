// Package config holds the workflow settings: where each stage reads and
// writes, and how the remote services are reached.
//
// Files are YAML, TOML or JSON, chosen by extension. YAML and TOML are
// converted to JSON and decoded onto Default(), so a file only has to name
// what it changes.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/komkom/toml"

	"genrich/internal/diag"
	"genrich/internal/gc"
	"genrich/internal/kegg"
	"genrich/internal/stages"
	"genrich/internal/uniprot"
)

// Paths are the input and output tables of one stage.
type Paths struct {
	Input  string `json:"input,omitempty" yaml:"input,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

type Service struct {
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Organism string `json:"organism,omitempty" yaml:"organism,omitempty"`
}

type HTTP struct {
	Timeout   Duration `json:"timeout" yaml:"timeout"`
	Retries   int      `json:"retries" yaml:"retries"`
	CacheSize int      `json:"cache_size" yaml:"cache_size"`
}

type GC struct {
	Window int `json:"window" yaml:"window"`
}

type Config struct {
	Data     string           `json:"data" yaml:"data"`
	Results  string           `json:"results" yaml:"results"`
	Workflow []string         `json:"workflow" yaml:"workflow"`
	Stages   map[string]Paths `json:"stages,omitempty" yaml:"stages,omitempty"`
	KEGG     Service          `json:"kegg" yaml:"kegg"`
	UniProt  Service          `json:"uniprot" yaml:"uniprot"`
	HTTP     HTTP             `json:"http" yaml:"http"`
	GC       GC               `json:"gc" yaml:"gc"`
	LogLevel string           `json:"log_level" yaml:"log_level"`
}

// Default is the conventional layout: raw counts under ./data, every
// derived table under ./results.
func Default() Config {
	return Config{
		Data:     "./data",
		Results:  "./results",
		Workflow: append([]string(nil), stages.Names...),
		KEGG:     Service{BaseURL: kegg.DefaultBaseURL, Organism: kegg.DefaultOrganism},
		UniProt:  Service{BaseURL: uniprot.DefaultBaseURL},
		HTTP:     HTTP{Timeout: Duration(30 * time.Second), Retries: 3, CacheSize: 4096},
		GC:       GC{Window: gc.DefaultWindow},
		LogLevel: "warn",
	}
}

// file names of the tables each stage reads and writes; "@data/" marks the
// data root, everything else lives under the results root.
var layout = map[string][2]string{
	stages.IDMapName:   {"@data/RNA-Seq-counts.txt", "alternate_identifiers.csv"},
	stages.KEGGName:    {"alternate_identifiers.csv", "kegg.csv"},
	stages.UniProtName: {"kegg.csv", "uniprot.csv"},
	stages.SortName:    {"uniprot.csv", "sorted_by_pubmed.csv"},
	stages.ClusterName: {"uniprot.csv", "pubmed_clusters.csv"},
	stages.GCName:      {"sorted_by_pubmed.csv", "gc_content.csv"},
}

// Paths returns the tables of stage, applying per-stage overrides on top of
// the layout under Data and Results.
func (c Config) Paths(stage string) Paths {
	p := c.Stages[stage]
	l := layout[stage]
	if p.Input == "" && l[0] != "" {
		p.Input = c.resolve(l[0])
	}
	if p.Output == "" && l[1] != "" {
		p.Output = c.resolve(l[1])
	}
	return p
}

func (c Config) resolve(name string) string {
	if rest, ok := strings.CutPrefix(name, "@data/"); ok {
		return join(c.Data, rest)
	}
	return join(c.Results, name)
}

// join keeps a leading "./" that filepath.Join would drop.
func join(root, name string) string {
	if root == "" {
		return name
	}
	return strings.TrimRight(root, "/") + "/" + name
}

// Load reads path and overlays it onto Default.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var js []byte
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if js, err = yaml.YAMLToJSON(b); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	case ".toml":
		if js, err = io.ReadAll(toml.New(bytes.NewReader(b))); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	case ".json":
		js = b
	default:
		return Config{}, fmt.Errorf("%s: unsupported config format %q (want .yaml, .toml or .json)", path, ext)
	}

	c := Default()
	if len(bytes.TrimSpace(js)) > 0 && string(bytes.TrimSpace(js)) != "null" {
		dec := json.NewDecoder(bytes.NewReader(js))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks values that would otherwise fail in the middle of a run.
func (c Config) Validate() error {
	if c.GC.Window <= 0 {
		return fmt.Errorf("gc.window must be positive, got %d", c.GC.Window)
	}
	if c.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must not be negative, got %d", c.HTTP.Retries)
	}
	if c.HTTP.CacheSize < 0 {
		return fmt.Errorf("http.cache_size must not be negative, got %d", c.HTTP.CacheSize)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %s", c.HTTP.Timeout)
	}
	if _, err := diag.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if len(c.Workflow) == 0 {
		return fmt.Errorf("workflow lists no stages")
	}
	for _, n := range c.Workflow {
		if !stages.Known(n) {
			return fmt.Errorf("workflow: unknown stage %q", n)
		}
	}
	for n := range c.Stages {
		if !stages.Known(n) {
			return fmt.Errorf("stages: unknown stage %q", n)
		}
	}
	return nil
}
