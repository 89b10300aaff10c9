package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFetchInterval is used when the config file does not set
// fetch_interval (seconds).
const DefaultFetchInterval = 5

// Profile is a named server connection. Immutable after load.
type Profile struct {
	Index int
	Name  string
	URL   string
	Token string
}

// Config is the startup configuration. Loaded once, read-only for the
// process lifetime. Profile order follows document order in the config
// file; Index is the position in that order.
type Config struct {
	Default       string
	FetchInterval int
	Profiles      []Profile
}

// UnmarshalYAML decodes the config by walking the mapping nodes
// directly so that the document order of the profiles mapping is
// preserved as the profile index assignment. A plain struct decode
// would hand us an unordered map.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.New("config: expected a mapping at the top level")
	}
	c.FetchInterval = DefaultFetchInterval
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "default":
			if err := val.Decode(&c.Default); err != nil {
				return fmt.Errorf("config: default: %w", err)
			}
		case "fetch_interval":
			if err := val.Decode(&c.FetchInterval); err != nil {
				return fmt.Errorf("config: fetch_interval: %w", err)
			}
		case "profiles":
			if val.Kind != yaml.MappingNode {
				return errors.New("config: profiles must be a mapping of name to {url, token}")
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				name, body := val.Content[j], val.Content[j+1]
				var p struct {
					URL   string `yaml:"url"`
					Token string `yaml:"token"`
				}
				if err := body.Decode(&p); err != nil {
					return fmt.Errorf("config: profile %q: %w", name.Value, err)
				}
				c.Profiles = append(c.Profiles, Profile{
					Index: len(c.Profiles),
					Name:  name.Value,
					URL:   strings.TrimRight(strings.TrimSpace(p.URL), "/"),
					Token: strings.TrimSpace(p.Token),
				})
			}
		}
	}
	return nil
}

// Profile returns the profile with the given name.
func (c Config) Profile(name string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

func (c Config) validate() error {
	if len(c.Profiles) == 0 {
		return errors.New("config: no profiles defined")
	}
	for _, p := range c.Profiles {
		if p.URL == "" {
			return fmt.Errorf("config: profile %q: missing url", p.Name)
		}
		if p.Token == "" {
			return fmt.Errorf("config: profile %q: missing token", p.Name)
		}
	}
	if strings.TrimSpace(c.Default) == "" {
		return errors.New("config: missing default profile name")
	}
	if _, ok := c.Profile(c.Default); !ok {
		return fmt.Errorf("config: default profile %q not found", c.Default)
	}
	if c.FetchInterval <= 0 {
		return fmt.Errorf("config: fetch_interval must be positive, got %d", c.FetchInterval)
	}
	return nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		h, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config dir")
		}
		dir = filepath.Join(h, ".config")
	}
	return filepath.Join(dir, "aleph-tui", "config.yml"), nil
}

// Load reads and validates the config file at path. Any failure here
// is fatal to startup; nothing later re-reads the file.
func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Config{}, errors.New("config: missing path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and validates raw config bytes. An absent
// fetch_interval defaults; an explicit zero or negative value is a
// validation error, never silently rewritten.
func Parse(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
