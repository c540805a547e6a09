package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// sections are env prefixes that map onto nested config structs, DB_HOST -> db.host.
var sections = []string{"db", "minio", "redis", "log", "notify"}

// flat are top-level keys read straight from the environment.
var flat = map[string]struct{}{
	"server_port":            {},
	"read_timeout":           {},
	"write_timeout":          {},
	"shutdown_timeout":       {},
	"jwt_secret_key":         {},
	"access_token_duration":  {},
	"refresh_token_duration": {},
	"max_upload_size":        {},
	"picks_feed_name":        {},
}

// envKey maps an environment variable name to a koanf path, or "" to skip it.
func envKey(name string) string {
	key := strings.ToLower(name)
	if _, ok := flat[key]; ok {
		return key
	}
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok && rest != "" {
			return section + "." + rest
		}
	}
	return ""
}

// Load builds a Config by layering defaults, an optional YAML file and env vars.
// A .env file in the working directory is loaded into the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}

	k := koanf.New(".")

	if path := os.Getenv("PHOTOFEED_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
