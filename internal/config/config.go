// Package config loads the bakingapp configuration.
//
// Values come from, in increasing priority: built-in defaults, a YAML file,
// and BAKINGAPP_* environment variables. Everything is merged as a loose map
// and decoded once, so durations and numbers may be written as strings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "bakingapp.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BAKINGAPP_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	API    API    `mapstructure:"api"`
	Store  Store  `mapstructure:"store"`
	Server Server `mapstructure:"server"`
	UI     UI     `mapstructure:"ui"`
	Log    Log    `mapstructure:"log"`
}

// API configures the remote recipe feed.
type API struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// Store configures navigation state persistence.
type Store struct {
	Backend    string     `mapstructure:"backend"`
	Path       string     `mapstructure:"path"`
	Redis      Redis      `mapstructure:"redis"`
	Encryption Encryption `mapstructure:"encryption"`
}

// Encryption seals saved sessions at rest. Keys are base64 encoded 32 byte values.
// An empty Key disables encryption.
type Encryption struct {
	Key          string   `mapstructure:"key"`
	FallbackKeys []string `mapstructure:"fallback_keys"`
}

// Redis configures the redis store backend.
type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
	Locking  bool          `mapstructure:"locking"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// UI configures the terminal presentation.
type UI struct {
	Locale  string `mapstructure:"locale"`
	Columns int    `mapstructure:"columns"`
	Style   string `mapstructure:"style"`
	Banner  bool   `mapstructure:"banner"`
}

// Log configures the application logger.
type Log struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() map[string]any {
	return map[string]any{
		"api": map[string]any{
			"url":        "https://d17h27t6h515a5.cloudfront.net/topher/2017/May/59121517_baking/baking.json",
			"timeout":    "15s",
			"user_agent": "bakingapp",
		},
		"store": map[string]any{
			"backend": BackendFile,
			"path":    filepath.Join(".bakingapp", "sessions"),
			"redis": map[string]any{
				"addr":    "localhost:6379",
				"db":      0,
				"prefix":  "bakingapp:session:",
				"ttl":     "0s",
				"locking": false,
			},
			"encryption": map[string]any{
				"key":           "",
				"fallback_keys": []string{},
			},
		},
		"server": map[string]any{
			"addr":             ":8080",
			"shutdown_timeout": "5s",
		},
		"ui": map[string]any{
			"locale":  "",
			"columns": 0,
			"style":   "auto",
			"banner":  true,
		},
		"log": map[string]any{
			"level": "info",
			"json":  false,
		},
	}
}

// Load reads path (YAML), applies environment overrides and validates the result.
// A missing file is not an error unless the path was given explicitly.
func Load(path string) (*Config, error) {
	return load(path, os.Environ())
}

func load(path string, environ []string) (*Config, error) {
	merged := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	fileValues, err := readFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			fileValues = nil
		} else {
			return nil, err
		}
	}
	merge(merged, fileValues)
	merge(merged, envValues(environ))
	return decode(merged)
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := decode(Defaults())
	if err != nil {
		panic(err)
	}
	return cfg
}

func decode(merged map[string]any) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			trimStringsHook,
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(merged); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return values, nil
}

// envValues turns BAKINGAPP_STORE_REDIS_ADDR=x into {"store": {"redis": {"addr": "x"}}}.
// Section names are matched against the known layout so keys containing
// underscores (user_agent, shutdown_timeout) survive.
func envValues(environ []string) map[string]any {
	out := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		path := splitEnvKey(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)))
		if len(path) < 2 {
			continue
		}
		node := out
		for _, part := range path[:len(path)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[part] = child
			}
			node = child
		}
		node[path[len(path)-1]] = value
	}
	return out
}

func splitEnvKey(key string) []string {
	var path []string
	section := Defaults()
	for key != "" {
		matched := false
		for name, v := range section {
			sub, isSection := v.(map[string]any)
			if !isSection {
				continue
			}
			if strings.HasPrefix(key, name+"_") {
				path = append(path, name)
				key = strings.TrimPrefix(key, name+"_")
				section = sub
				matched = true
				break
			}
		}
		if !matched {
			return append(path, key)
		}
	}
	return path
}

// merge overlays src onto dst, recursing into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			merge(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}

func trimStringsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.String {
		return strings.TrimSpace(data.(string)), nil
	}
	return data, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return errors.New("api.url is required")
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("store.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store.backend %q (want memory, file or redis)", c.Store.Backend)
	}
	if c.Store.Encryption.Key == "" && len(c.Store.Encryption.FallbackKeys) > 0 {
		return errors.New("store.encryption.fallback_keys requires store.encryption.key")
	}
	if c.UI.Columns < 0 {
		return errors.New("ui.columns cannot be negative")
	}
	return nil
}
