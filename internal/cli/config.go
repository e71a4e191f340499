package cli

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/diagvor/internal/server"
	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/pipeline"
)

// configFileName is the file looked up in configDir when --config is not set.
const configFileName = "config.toml"

// Backend names for the [cache] and [store] sections.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the optional TOML configuration file. Command-line flags take
// precedence over it, and it takes precedence over built-in defaults.
//
//	[render]
//	width = 1024
//	metric = "manhattan"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds render defaults. Zero values leave the built-in default.
type RenderConfig struct {
	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	Metric  string  `toml:"metric"`
	Mode    string  `toml:"mode"`
	Workers int     `toml:"workers"`
	Seed    uint64  `toml:"seed"`
	Markers bool    `toml:"markers"`
	Scale   float64 `toml:"scale"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	RedisURL string `toml:"redis_url"`
}

// StoreConfig selects where benchmark results are kept.
type StoreConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: backendFile},
		Store:  StoreConfig{Backend: backendFile},
		Server: ServerConfig{Addr: server.DefaultAddr},
	}
}

// LoadConfig reads the config file at path. An empty path looks in the
// default location, where a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			if !explicit {
				return DefaultConfig(), nil
			}
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = backendFile
	case backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis, or none)", c.Cache.Backend)
	}

	c.Store.Backend = strings.ToLower(c.Store.Backend)
	switch c.Store.Backend {
	case "":
		c.Store.Backend = backendFile
	case backendFile, backendNone:
	case backendMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store backend mongo requires mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want file, mongo, or none)", c.Store.Backend)
	}
	return nil
}

// applyTo copies config values into opts for every flag the user did not set.
func (r RenderConfig) applyTo(cmd *cobra.Command, opts *pipeline.Options) {
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && !f.Changed
	}
	if r.Width != 0 && unset("width") {
		opts.Width = r.Width
	}
	if r.Height != 0 && unset("height") {
		opts.Height = r.Height
	}
	if r.Metric != "" && unset("metric") {
		opts.Metric = r.Metric
	}
	if r.Mode != "" && unset("mode") {
		opts.Mode = r.Mode
	}
	if r.Workers != 0 && unset("workers") {
		opts.Workers = r.Workers
	}
	if r.Seed != 0 && unset("seed") {
		opts.Seed = r.Seed
	}
	if r.Markers && unset("markers") {
		opts.Markers = true
	}
	if r.Scale != 0 && unset("scale") {
		opts.Scale = r.Scale
	}
}
