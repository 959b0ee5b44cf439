package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// Config is the generator input. YAML and HCL files decode into the same shape.
type Config struct {
	Project   ProjectConfig   `yaml:"project"`
	Messages  MessagesConfig  `yaml:"messages"`
	Features  FeatureList     `yaml:"features"`
	Constants ConstantsConfig `yaml:"constants"`
}

type ProjectConfig struct {
	Name    string `yaml:"name" hcl:"name"`
	Version string `yaml:"version" hcl:"version"`
	Author  string `yaml:"author" hcl:"author,optional"`
}

type MessagesConfig struct {
	Welcome string `yaml:"welcome" hcl:"welcome"`
	Error   string `yaml:"error" hcl:"error"`
	Success string `yaml:"success" hcl:"success"`
}

type ConstantsConfig struct {
	MaxBufferSize  int     `yaml:"max_buffer_size" hcl:"max_buffer_size"`
	DefaultTimeout int     `yaml:"default_timeout" hcl:"default_timeout"`
	Pi             float64 `yaml:"pi" hcl:"pi"`
	Debug          bool    `yaml:"debug" hcl:"debug,optional"`
}

// Feature is one named flag.
type Feature struct {
	Name    string `hcl:"name,label"`
	Enabled bool   `hcl:"enabled"`
}

// FeatureList keeps features in file order.
// In YAML it is written as a mapping of name to bool.
type FeatureList []Feature

// UnmarshalYAML decodes a mapping node pair by pair so the order survives.
func (l *FeatureList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: features must be a mapping of name to bool", value.Line)
	}
	out := make(FeatureList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]

		var enabled bool
		if err := valNode.Decode(&enabled); err != nil {
			return fmt.Errorf("line %d: feature %q: %w", valNode.Line, keyNode.Value, err)
		}
		out = append(out, Feature{Name: keyNode.Value, Enabled: enabled})
	}
	*l = out
	return nil
}

// hclFile is the HCL layout: project, messages and constants blocks plus one
// labelled feature block per flag, e.g. feature "logging" { enabled = true }.
type hclFile struct {
	Project   ProjectConfig   `hcl:"project,block"`
	Messages  MessagesConfig  `hcl:"messages,block"`
	Features  []Feature       `hcl:"feature,block"`
	Constants ConstantsConfig `hcl:"constants,block"`
}

// loadConfig decodes data according to the extension of path.
func loadConfig(path string, data []byte) (*Config, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".hcl":
		return decodeHCL(path, data)
	default:
		return nil, fmt.Errorf("unsupported config extension %q (want .yaml, .yml or .hcl)", ext)
	}
}

// decodeYAML is strict: unknown keys and extra documents are errors.
func decodeYAML(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config file is empty")
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("config file contains multiple documents or trailing content")
	}
	return &cfg, nil
}

func decodeHCL(path string, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	return &Config{
		Project:   parsed.Project,
		Messages:  parsed.Messages,
		Features:  FeatureList(parsed.Features),
		Constants: parsed.Constants,
	}, nil
}

// ValidationError lists every problem found in a config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

var featureNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// validateConfig checks the fields the templates rely on.
func validateConfig(cfg *Config) error {
	var problems []string

	requireNonEmpty := func(fieldName, value string) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, "missing "+fieldName)
		}
	}

	requireNonEmpty("project.name", cfg.Project.Name)
	requireNonEmpty("project.version", cfg.Project.Version)
	requireNonEmpty("messages.welcome", cfg.Messages.Welcome)
	requireNonEmpty("messages.error", cfg.Messages.Error)
	requireNonEmpty("messages.success", cfg.Messages.Success)

	if len(cfg.Features) == 0 {
		problems = append(problems, "features must have at least 1 entry")
	}
	seen := make(map[string]struct{}, len(cfg.Features))
	for _, f := range cfg.Features {
		if !featureNamePattern.MatchString(f.Name) {
			problems = append(problems, fmt.Sprintf("feature name %q must match %s", f.Name, featureNamePattern))
			continue
		}
		if _, ok := seen[f.Name]; ok {
			problems = append(problems, fmt.Sprintf("duplicate feature %q", f.Name))
			continue
		}
		seen[f.Name] = struct{}{}
	}

	if cfg.Constants.MaxBufferSize <= 0 {
		problems = append(problems, "constants.max_buffer_size must be > 0")
	}
	if cfg.Constants.DefaultTimeout <= 0 {
		problems = append(problems, "constants.default_timeout must be > 0")
	}
	if math.IsNaN(cfg.Constants.Pi) || math.IsInf(cfg.Constants.Pi, 0) {
		problems = append(problems, "constants.pi must be a finite number")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
