package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dragcart/internal/model"
)

const (
	DefaultAvailableTitle = "Available Items"
	DefaultSelectedTitle  = "Shopping Cart"
)

type Config struct {
	// Seed lists. Together they form the item universe for a run.
	Available []string `json:"available,omitempty"`
	Selected  []string `json:"selected,omitempty"`

	Titles *Titles `json:"titles,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty"`
	Log *LogConfig `json:"log,omitempty"`

	// Journal is an optional path to a SQLite journal file. Empty keeps the
	// journal in memory.
	Journal string `json:"journal,omitempty"`
}

type Titles struct {
	Available string `json:"available,omitempty"`
	Selected  string `json:"selected,omitempty"`
}

type TUIConfig struct {
	// Theme is one of: auto|light|dark.
	Theme string `json:"theme,omitempty"`
	// Glyphs is one of: unicode|ascii.
	Glyphs string `json:"glyphs,omitempty"`
}

type LogConfig struct {
	// Level is one of: debug|info|warn|error.
	Level string `json:"level,omitempty"`
	// File, when set, receives JSON log records.
	File string `json:"file,omitempty"`
}

// Default returns the built-in seed: three fruits, empty cart.
func Default() *Config {
	return &Config{
		Available: []string{"Apple", "Banana", "Cherry"},
		Selected:  []string{},
		Titles: &Titles{
			Available: DefaultAvailableTitle,
			Selected:  DefaultSelectedTitle,
		},
	}
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.dragcart).
	if v := strings.TrimSpace(os.Getenv("DRAGCART_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dragcart"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file. A missing file yields Default().
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Available == nil && cfg.Selected == nil {
		cfg.Available = Default().Available
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep the previous file around; ignore errors so a bad backup never blocks a save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// Seeds converts the configured lists into items, trimming whitespace.
// Validation (duplicates, empty ids) is left to liststore.New.
func (c *Config) Seeds() (available, selected []model.Item) {
	conv := func(xs []string) []model.Item {
		out := make([]model.Item, 0, len(xs))
		for _, x := range xs {
			out = append(out, model.Item(strings.TrimSpace(x)))
		}
		return out
	}
	return conv(c.Available), conv(c.Selected)
}

// Title returns the display title for a collection.
func (c *Config) Title(id model.CollectionID) string {
	var t string
	if c.Titles != nil {
		switch id {
		case model.CollectionAvailable:
			t = c.Titles.Available
		case model.CollectionSelected:
			t = c.Titles.Selected
		}
	}
	if t = strings.TrimSpace(t); t != "" {
		return t
	}
	if id == model.CollectionSelected {
		return DefaultSelectedTitle
	}
	return DefaultAvailableTitle
}

// ThemePreference returns the configured theme, honoring DRAGCART_TUI_THEME.
func (c *Config) ThemePreference() string {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("DRAGCART_TUI_THEME"))); v != "" {
		return v
	}
	if c.TUI != nil {
		return strings.ToLower(strings.TrimSpace(c.TUI.Theme))
	}
	return ""
}

// GlyphPreference returns the configured glyph set, honoring DRAGCART_TUI_GLYPHS.
func (c *Config) GlyphPreference() string {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("DRAGCART_TUI_GLYPHS"))); v != "" {
		return v
	}
	if c.TUI != nil {
		return strings.ToLower(strings.TrimSpace(c.TUI.Glyphs))
	}
	return ""
}
