// Package config loads elementmerge settings from a TOML file.
//
// Settings are layered: built-in defaults, then the config file, then
// ELEMENTMERGE_* environment variables. Command-line flags are applied on top
// by the CLI.
//
// Example config.toml:
//
//	[store]
//	backend = "redis"
//
//	[store.redis]
//	addr = "cache.internal:6379"
//
//	[merge]
//	merge_properties = false
//	history_limit = 50
//
//	[server]
//	addr = ":9090"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/elementmerge/pkg/store"
)

// AppName names the config and data directories.
const AppName = "elementmerge"

// Config holds all settings.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Merge  MergeConfig  `toml:"merge"`
	Server ServerConfig `toml:"server"`
}

// StoreConfig selects where model documents are kept.
type StoreConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// MergeConfig holds merge defaults.
type MergeConfig struct {
	// Properties is the initial choice for merging documentation and
	// properties into the target.
	Properties bool `toml:"merge_properties"`

	// HistoryLimit bounds the undo history of a server workspace.
	HistoryLimit int `toml:"history_limit"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: store.BackendFile,
			Dir:     filepath.Join(dataHome(), AppName),
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   AppName,
				Collection: store.DefaultMongoCollection,
			},
		},
		Merge:  MergeConfig{Properties: true, HistoryLimit: 100},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/elementmerge/config.toml, falling back
// to ~/.config.
func DefaultPath() string {
	return filepath.Join(configHome(), AppName, "config.toml")
}

// Load reads the config file at path over the defaults and applies the
// environment. An empty path means [DefaultPath], which may be absent; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults. The environment is not applied.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides settings from ELEMENTMERGE_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ELEMENTMERGE_STORE_BACKEND":  &c.Store.Backend,
		"ELEMENTMERGE_STORE_DIR":      &c.Store.Dir,
		"ELEMENTMERGE_REDIS_ADDR":     &c.Store.Redis.Addr,
		"ELEMENTMERGE_REDIS_PASSWORD": &c.Store.Redis.Password,
		"ELEMENTMERGE_MONGO_URI":      &c.Store.Mongo.URI,
		"ELEMENTMERGE_MONGO_DATABASE": &c.Store.Mongo.Database,
		"ELEMENTMERGE_SERVER_ADDR":    &c.Server.Addr,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("ELEMENTMERGE_MERGE_PROPERTIES"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ELEMENTMERGE_MERGE_PROPERTIES: %w", err)
		}
		c.Merge.Properties = b
	}
	return nil
}

// StoreOptions converts the store section for [store.Open].
func (c *Config) StoreOptions() store.Config {
	return store.Config{
		Backend:         c.Store.Backend,
		Dir:             c.Store.Dir,
		RedisAddr:       c.Store.Redis.Addr,
		RedisPassword:   c.Store.Redis.Password,
		RedisDB:         c.Store.Redis.DB,
		MongoURI:        c.Store.Mongo.URI,
		MongoDatabase:   c.Store.Mongo.Database,
		MongoCollection: c.Store.Mongo.Collection,
	}
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return "."
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}
	return "."
}
