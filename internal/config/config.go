package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-nodeview/pkg/renderers/rules"
)

// Config represents the nodeview.yaml (or nodeview.toml) configuration.
type Config struct {
	Templates       TemplatesConfig   `yaml:"templates" toml:"templates"`
	DefaultContext  string            `yaml:"default_context" toml:"default_context"`
	Graph           []string          `yaml:"graph" toml:"graph"`
	Prefixes        map[string]string `yaml:"prefixes" toml:"prefixes"`
	Rules           []rules.Rule      `yaml:"rules" toml:"rules"`
	DisableBuiltins bool              `yaml:"disable_builtins" toml:"disable_builtins"`
	Theme           ThemeConfig       `yaml:"theme" toml:"theme"`
	LogLevel        string            `yaml:"log_level" toml:"log_level"`
	Serve           ServeConfig       `yaml:"serve" toml:"serve"`
}

// TemplatesConfig controls the template search path. Directories are searched
// in order, before the embedded built-in templates. Globals are visible to
// every template, e.g. {{ site.title }}.
type TemplatesConfig struct {
	Dirs      []string       `yaml:"dirs" toml:"dirs"`
	Extension string         `yaml:"extension" toml:"extension"`
	Globals   map[string]any `yaml:"globals" toml:"globals"`
}

// ThemeConfig names the theme exposed to templates.
type ThemeConfig struct {
	Name    string            `yaml:"name" toml:"name"`
	Variant string            `yaml:"variant" toml:"variant"`
	Tokens  map[string]string `yaml:"tokens" toml:"tokens"`
}

// ServeConfig configures the HTTP preview server.
type ServeConfig struct {
	Addr  string `yaml:"addr" toml:"addr"`
	Watch bool   `yaml:"watch" toml:"watch"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Templates: TemplatesConfig{
			Extension: ".tpl",
		},
		DefaultContext: "any",
		LogLevel:       "info",
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a configuration file from the given path.
// Missing fields are filled with defaults and relative template and graph
// paths are resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Ensure required defaults
	if strings.TrimSpace(cfg.Templates.Extension) == "" {
		cfg.Templates.Extension = ".tpl"
	}
	if !strings.HasPrefix(cfg.Templates.Extension, ".") {
		cfg.Templates.Extension = "." + cfg.Templates.Extension
	}
	if strings.TrimSpace(cfg.DefaultContext) == "" {
		cfg.DefaultContext = "any"
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8080"
	}

	base := filepath.Dir(path)
	cfg.Templates.Dirs = resolvePaths(base, cfg.Templates.Dirs)
	cfg.Graph = resolvePaths(base, cfg.Graph)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports configuration that cannot be used.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Rules))
	for idx, rule := range c.Rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return fmt.Errorf("rule %d has no name", idx)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("rule %q declared twice", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// HasTheme returns true when a theme name is configured.
func (c *Config) HasTheme() bool {
	return strings.TrimSpace(c.Theme.Name) != ""
}

// decode picks the format from the file extension; anything but .toml is
// read as YAML.
func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func resolvePaths(base string, paths []string) []string {
	if len(paths) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		out = append(out, p)
	}
	return out
}
