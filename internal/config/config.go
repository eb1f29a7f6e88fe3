package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"shoplist/internal/model"
	"shoplist/internal/store"
)

// CheckedPrefix marks a seed entry as already checked: "x:milk".
const CheckedPrefix = "x:"

const (
	GlyphsUnicode = "unicode"
	GlyphsASCII   = "ascii"
)

// Config holds application configuration.
type Config struct {
	List   ListConfig   `toml:"list" json:"list" mapstructure:"list"`
	UI     UIConfig     `toml:"ui" json:"ui" mapstructure:"ui"`
	Web    ServerConfig `toml:"web" json:"web" mapstructure:"web"`
	WebTUI ServerConfig `toml:"webtui" json:"webtui" mapstructure:"webtui"`

	// Path is the config file that was read, if any.
	Path string `toml:"-" json:"-" mapstructure:"-"`
}

// ListConfig is the starting state of a session.
type ListConfig struct {
	Seed        []string `toml:"seed" json:"seed" mapstructure:"seed"`
	HideChecked bool     `toml:"hide_checked" json:"hide_checked" mapstructure:"hide_checked"`
	Match       string   `toml:"match" json:"match" mapstructure:"match"`
}

type UIConfig struct {
	Glyphs string `toml:"glyphs" json:"glyphs" mapstructure:"glyphs"`
}

type ServerConfig struct {
	Addr string `toml:"addr" json:"addr" mapstructure:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		List: ListConfig{
			Seed:  FormatSeed(store.DefaultItems()),
			Match: string(model.MatchSubstring),
		},
		UI:     UIConfig{Glyphs: GlyphsUnicode},
		Web:    ServerConfig{Addr: "127.0.0.1:8080"},
		WebTUI: ServerConfig{Addr: "127.0.0.1:8081"},
	}
}

// DefaultPath is $SHOPLIST_CONFIG, or ~/.config/shoplist/config.toml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("SHOPLIST_CONFIG")); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "shoplist", "config.toml"), nil
}

// Load reads configuration from defaults, the TOML file at path (or DefaultPath
// when path is empty) and SHOPLIST_* env overrides, in that order.
// A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("list.seed", def.List.Seed)
	v.SetDefault("list.hide_checked", def.List.HideChecked)
	v.SetDefault("list.match", def.List.Match)
	v.SetDefault("ui.glyphs", def.UI.Glyphs)
	v.SetDefault("web.addr", def.Web.Addr)
	v.SetDefault("webtui.addr", def.WebTUI.Addr)

	v.SetConfigType("toml")
	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("SHOPLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	// Env values arrive as one string; accept a comma separated list.
	c.List.Seed = splitSeed(v.Get("list.seed"))
	c.Path = v.ConfigFileUsed()
	if _, err := os.Stat(c.Path); err != nil {
		c.Path = ""
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func splitSeed(raw any) []string {
	var parts []string
	switch x := raw.(type) {
	case string:
		parts = strings.Split(x, ",")
	case []string:
		parts = x
	case []any:
		for _, p := range x {
			parts = append(parts, fmt.Sprint(p))
		}
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) Validate() error {
	if _, ok := model.ParseMatchMode(c.List.Match); !ok {
		return fmt.Errorf("list.match: unknown mode %q (want substring or fuzzy)", c.List.Match)
	}
	switch strings.ToLower(strings.TrimSpace(c.UI.Glyphs)) {
	case "", GlyphsUnicode, GlyphsASCII:
	default:
		return fmt.Errorf("ui.glyphs: unknown set %q (want unicode or ascii)", c.UI.Glyphs)
	}
	return nil
}

// Items parses the seed list. "x:" marks an item as checked.
func (c Config) Items() []model.Item {
	return ParseSeed(c.List.Seed)
}

func (c Config) View() model.ViewSettings {
	m, ok := model.ParseMatchMode(c.List.Match)
	if !ok {
		m = model.MatchSubstring
	}
	return model.ViewSettings{HideChecked: c.List.HideChecked, Match: m}
}

// NewStore returns a store seeded and configured from c.
func (c Config) NewStore() *store.Store {
	st := store.New(c.Items()...)
	v := c.View()
	st.SetHideChecked(v.HideChecked)
	st.SetMatch(v.Match)
	return st
}

func ParseSeed(seed []string) []model.Item {
	out := make([]model.Item, 0, len(seed))
	for _, s := range seed {
		s = strings.TrimSpace(s)
		it := model.Item{Name: s}
		if len(s) >= len(CheckedPrefix) && strings.EqualFold(s[:len(CheckedPrefix)], CheckedPrefix) {
			it = model.Item{Name: strings.TrimSpace(s[len(CheckedPrefix):]), Checked: true}
		}
		if it.Name == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

func FormatSeed(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Checked {
			out = append(out, CheckedPrefix+it.Name)
			continue
		}
		out = append(out, it.Name)
	}
	return out
}

// Encode renders c as TOML.
func Encode(c Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default configuration to path. An existing file is
// only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
		}
	}
	b, err := Encode(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
