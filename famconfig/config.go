// Package famconfig loads and validates the ambient configuration for
// the family-tree engine: the layout defaults, NATS connection, and
// HTTP gateway settings. It is grounded on the teacher's config.Config
// + SafeConfig pattern — a single struct loaded from a file with env
// overrides, wrapped in a mutex for safe concurrent reads.
package famconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/chris-hammersley/family-chart/layout"
)

// Config is the complete application configuration.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	NATS   NATSConfig   `yaml:"nats"`
	HTTP   HTTPConfig   `yaml:"http"`
}

// LayoutConfig holds the Layout Engine defaults loaded at startup; the
// store's layout.Config is built from this by ToLayoutConfig.
type LayoutConfig struct {
	NodeSeparation         float64 `yaml:"node_separation"`
	LevelSeparation        float64 `yaml:"level_separation"`
	SingleParentEmptyCard  bool    `yaml:"single_parent_empty_card"`
	IsHorizontal           bool    `yaml:"is_horizontal"`
	ShowSiblingsOfMain     bool    `yaml:"show_siblings_of_main"`
	DuplicateBranchToggle  bool    `yaml:"duplicate_branch_toggle"`
	OnToggleOneCloseOthers bool    `yaml:"on_toggle_one_close_others"`
}

// NATSConfig configures the persistence.natskv adapter.
type NATSConfig struct {
	URLs      []string `yaml:"urls"`
	Bucket    string   `yaml:"bucket"`
	Username  string   `yaml:"username,omitempty"`
	Password  string   `yaml:"password,omitempty"`
}

// HTTPConfig configures the gateway/http server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the engine's out-of-the-box configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			NodeSeparation:  250,
			LevelSeparation: 150,
		},
		NATS: NATSConfig{
			URLs:   []string{"nats://127.0.0.1:4222"},
			Bucket: "famtree",
		},
		HTTP: HTTPConfig{
			Addr: ":8090",
		},
	}
}

// Validate checks that a loaded config is internally consistent.
func (c *Config) Validate() error {
	if c.Layout.NodeSeparation <= 0 {
		return errors.New("layout.node_separation must be positive")
	}
	if c.Layout.LevelSeparation <= 0 {
		return errors.New("layout.level_separation must be positive")
	}
	if c.NATS.Bucket == "" {
		return errors.New("nats.bucket is required")
	}
	if len(c.NATS.URLs) == 0 {
		return errors.New("nats.urls is required")
	}
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	return nil
}

// Load reads a YAML config file at path, applies FAMTREE_-prefixed
// environment overrides, validates the result, and returns it. An empty
// path returns Default() with env overrides still applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("famconfig: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("famconfig: parse %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("famconfig: invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("FAMTREE_NATS_URLS"); v != "" {
		c.NATS.URLs = strings.Split(v, ",")
	}
	if v := os.Getenv("FAMTREE_NATS_BUCKET"); v != "" {
		c.NATS.Bucket = v
	}
	if v := os.Getenv("FAMTREE_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("FAMTREE_LAYOUT_NODE_SEPARATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Layout.NodeSeparation = f
		}
	}
	if v := os.Getenv("FAMTREE_LAYOUT_HORIZONTAL"); v != "" {
		c.Layout.IsHorizontal = v == "true" || v == "1"
	}
}

// SafeConfig provides thread-safe access to a Config, grounded on the
// teacher's config.SafeConfig.
type SafeConfig struct {
	mu  sync.RWMutex
	cfg *Config
}

// NewSafeConfig wraps cfg for concurrent access. A nil cfg is replaced
// with Default().
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = Default()
	}
	return &SafeConfig{cfg: cfg}
}

// Get returns the current config. Callers must not mutate the returned
// pointer's fields; use Update instead.
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.cfg
}

// Update validates and swaps in a new config atomically.
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return errors.New("famconfig: cannot update to a nil config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cfg = cfg
	return nil
}

// ToLayoutConfig converts the loaded layout defaults into a
// layout.Config, starting from layout.DefaultConfig() so any recognized
// key this package doesn't expose in YAML still gets a sane value.
func (l LayoutConfig) ToLayoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.NodeSeparation = l.NodeSeparation
	cfg.LevelSeparation = l.LevelSeparation
	cfg.SingleParentEmptyCard = l.SingleParentEmptyCard
	cfg.IsHorizontal = l.IsHorizontal
	cfg.ShowSiblingsOfMain = l.ShowSiblingsOfMain
	cfg.DuplicateBranchToggle = l.DuplicateBranchToggle
	cfg.OnToggleOneCloseOthers = l.OnToggleOneCloseOthers
	return cfg
}
