package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "todo.toml"

	BackendMemory = "memory"
	BackendSQLite = "sqlite"

	InterfaceConsole = "console"
	InterfaceTUI     = "tui"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Delete  string `toml:"delete"`
	Edit    string `toml:"edit"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

type Config struct {
	Backend   string `toml:"backend"`
	Interface string `toml:"interface"`
	LogLevel  string `toml:"log_level"`
	Keys      Keymap `toml:"keys"`
}

// Load reads path over the defaults. An empty path means no config file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Write saves cfg as TOML. It never replaces an existing file.
func Write(path string, cfg Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendMemory, BackendSQLite)
	}
	switch c.Interface {
	case InterfaceConsole, InterfaceTUI:
	default:
		return fmt.Errorf("unknown interface %q (want %s or %s)", c.Interface, InterfaceConsole, InterfaceTUI)
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.Interface == "" {
		c.Interface = def.Interface
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&c.Keys.Quit, def.Keys.Quit)
	fill(&c.Keys.Add, def.Keys.Add)
	fill(&c.Keys.Up, def.Keys.Up)
	fill(&c.Keys.Down, def.Keys.Down)
	fill(&c.Keys.Delete, def.Keys.Delete)
	fill(&c.Keys.Edit, def.Keys.Edit)
	fill(&c.Keys.Confirm, def.Keys.Confirm)
	fill(&c.Keys.Cancel, def.Keys.Cancel)
}

func Default() Config {
	return Config{
		Backend:   BackendMemory,
		Interface: InterfaceConsole,
		LogLevel:  "warn",
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Delete:  "d",
			Edit:    "e",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}
