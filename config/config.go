// Package config loads repolens settings.
//
// Values are layered with koanf. Precedence, highest first: explicit flags,
// REPOLENS_* environment variables, repolens.yaml, built-in defaults.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "REPOLENS_"

// Defaults.
const (
	DefaultLogLevel     = "info"
	DefaultSidebarWidth = 36
	DefaultExportDir    = "."
	DefaultProxyListen  = "127.0.0.1:3000"
	DefaultProxyBackend = "http://127.0.0.1:5000"
	DefaultProxyPrefix  = "/api"
)

// Sidebar width bounds, in terminal columns.
const (
	MinSidebarWidth = 20
	MaxSidebarWidth = 120
)

// configFileNames are searched in the working directory when no explicit
// config file is given.
var configFileNames = []string{"repolens.yaml", "repolens.yml"}

// ProxyConfig configures the development reverse proxy.
type ProxyConfig struct {
	Listen  string `koanf:"listen"`
	Backend string `koanf:"backend"`
	Prefix  string `koanf:"prefix"`
}

// Config holds all repolens settings.
type Config struct {
	Snapshot        string      `koanf:"snapshot"`
	Watch           bool        `koanf:"watch"`
	LogFile         string      `koanf:"log_file"`
	LogLevel        string      `koanf:"log_level"`
	SidebarWidth    int         `koanf:"sidebar_width"`
	HistoryPageSize int         `koanf:"history_page_size"`
	ExportDir       string      `koanf:"export_dir"`
	Proxy           ProxyConfig `koanf:"proxy"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

func defaults() map[string]any {
	return map[string]any{
		"snapshot":          "",
		"watch":             false,
		"log_file":          "",
		"log_level":         DefaultLogLevel,
		"sidebar_width":     DefaultSidebarWidth,
		"history_page_size": 0,
		"export_dir":        DefaultExportDir,
		"proxy.listen":      DefaultProxyListen,
		"proxy.backend":     DefaultProxyBackend,
		"proxy.prefix":      DefaultProxyPrefix,
	}
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		SidebarWidth: DefaultSidebarWidth,
		ExportDir:    DefaultExportDir,
		Proxy: ProxyConfig{
			Listen:  DefaultProxyListen,
			Backend: DefaultProxyBackend,
			Prefix:  DefaultProxyPrefix,
		},
	}
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey maps REPOLENS_PROXY_BACKEND to proxy.backend and
// REPOLENS_LOG_FILE to log_file.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "proxy_"); ok {
		return "proxy." + rest
	}
	return key
}

// flagKey maps --proxy-backend to proxy.backend and --log-file to log_file.
func flagKey(name string) string {
	if rest, ok := strings.CutPrefix(name, "proxy-"); ok {
		return "proxy." + strings.ReplaceAll(rest, "-", "_")
	}
	return strings.ReplaceAll(name, "-", "_")
}

// Load reads configuration from defaults, the config file, the environment
// and flags. flags may be nil. Only flags the user set explicitly override
// lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and the proxy settings.
func (c *Config) Validate() error {
	if c.SidebarWidth < MinSidebarWidth || c.SidebarWidth > MaxSidebarWidth {
		return fmt.Errorf("sidebar_width must be between %d and %d, got %d",
			MinSidebarWidth, MaxSidebarWidth, c.SidebarWidth)
	}
	if c.HistoryPageSize < 0 {
		return fmt.Errorf("history_page_size must not be negative, got %d", c.HistoryPageSize)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Proxy.Prefix != "" && !strings.HasPrefix(c.Proxy.Prefix, "/") {
		return fmt.Errorf("proxy.prefix must start with '/', got %q", c.Proxy.Prefix)
	}
	u, err := url.Parse(c.Proxy.Backend)
	if err != nil {
		return fmt.Errorf("invalid proxy.backend: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("proxy.backend must be an http(s) URL, got %q", c.Proxy.Backend)
	}
	if u.Host == "" {
		return fmt.Errorf("proxy.backend has no host: %q", c.Proxy.Backend)
	}
	return nil
}
