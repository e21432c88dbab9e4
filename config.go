package guidebook

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eringen/guidebook/prefs"
)

// EnvPrefix prefixes environment overrides, e.g. GUIDEBOOK_ADDR.
const EnvPrefix = "GUIDEBOOK_"

// SiteConfig holds all configuration for a guidebook site.
type SiteConfig struct {
	Name        string `koanf:"name" yaml:"name"`               // Site name (default "Seed")
	URL         string `koanf:"url" yaml:"url"`                 // Canonical URL (default "http://localhost:3000")
	Description string `koanf:"description" yaml:"description"` // Shown in the intro and meta tags

	Addr       string `koanf:"addr" yaml:"addr"`               // Listen address (default ":3000")
	GuidesDir  string `koanf:"guides_dir" yaml:"guides_dir"`   // Catalog directory (default "guides")
	GuidesGlob string `koanf:"guides_glob" yaml:"guides_glob"` // Catalog pattern (default "**/*.md")
	PrefsDB    string `koanf:"prefs_db" yaml:"prefs_db"`       // SQLite path (default "data/prefs.db")

	SessionSecret string `koanf:"session_secret" yaml:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `koanf:"cookie_secure" yaml:"cookie_secure"`   // Set true for HTTPS

	TitleSuffix string `koanf:"title_suffix" yaml:"title_suffix"` // Document title suffix (default "Seed")
	Watch       bool   `koanf:"watch" yaml:"watch"`               // Reload the catalog on file changes

	LogLevel string `koanf:"log_level" yaml:"log_level"`
	Journal  bool   `koanf:"journal" yaml:"journal"`

	SearchRate  float64 `koanf:"search_rate" yaml:"search_rate"`   // Search requests per second per IP (default 5)
	SearchBurst int     `koanf:"search_burst" yaml:"search_burst"` // (default 10)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Seed"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.GuidesDir == "" {
		c.GuidesDir = "guides"
	}
	if c.GuidesGlob == "" {
		c.GuidesGlob = "**/*.md"
	}
	if c.PrefsDB == "" {
		c.PrefsDB = "data/prefs.db"
	}
	if c.TitleSuffix == "" {
		c.TitleSuffix = "Seed"
	}
	if c.SearchRate <= 0 {
		c.SearchRate = 5
	}
	if c.SearchBurst <= 0 {
		c.SearchBurst = 10
	}
}

// LoadConfig reads path (if it exists) and overlays GUIDEBOOK_* environment
// variables. Defaults are applied to whatever is left unset.
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")
	var cfg SiteConfig

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("guidebook: reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("guidebook: accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return cfg, fmt.Errorf("guidebook: loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("guidebook: unmarshalling config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithViews replaces the built-in views.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithPrefs stores visitor preferences in b instead of the SQLite
// database at PrefsDB. The caller keeps ownership of b.
func WithPrefs(b prefs.Backend) Option {
	return func(a *App) {
		a.Prefs = b
	}
}

// WithCatalog serves c instead of loading GuidesDir.
func WithCatalog(c *Catalog) Option {
	return func(a *App) {
		a.Catalog = c
	}
}
