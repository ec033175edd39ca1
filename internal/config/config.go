package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in Options.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range Options() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(v *viper.Viper) error {
	// Configure Viper search paths. If SetConfigFile was provided upstream,
	// it takes precedence; these paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "guidechat"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "guidechat"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// Read config file if present (overrides defaults)
	_ = v.ReadInConfig()

	// Environment variables: GUIDECHAT_* (highest among these sources)
	v.SetEnvPrefix("guidechat")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return nil
}

// CheckConfigValidity reports every problem with the resolved config at
// once, rather than failing on the first.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string
	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		problems = append(problems, "data_dir is required")
	}
	if strings.TrimSpace(v.GetString("dozuki.base_url")) == "" {
		problems = append(problems, "dozuki.base_url is required")
	} else if u := v.GetString("dozuki.base_url"); !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		problems = append(problems, "dozuki.base_url must be an http(s) URL")
	}
	if v.GetInt("query.top_k") <= 0 {
		problems = append(problems, "query.top_k must be greater than 0")
	}
	if v.GetInt("ingest.batch_size") <= 0 {
		problems = append(problems, "ingest.batch_size must be greater than 0")
	}
	if v.GetInt("ingest.page_size") <= 0 {
		problems = append(problems, "ingest.page_size must be greater than 0")
	}
	if v.GetString("llm.url") != "" && v.GetInt("llm.max_tokens") <= 0 {
		problems = append(problems, "llm.max_tokens must be greater than 0")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/guidechat or
// ~/.local/share/guidechat.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "guidechat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "guidechat")
}

// DefaultDBPath builds the default sqlite DSN from data_dir rules.
func DefaultDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "guidechat.db")
}
