package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagvor/internal/server"
	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
	if cfg.Server.Addr != server.DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, server.DefaultAddr)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	if err := os.MkdirAll(filepath.Join(home, appName), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, appName, configFileName), []byte("[render]\nwidth = 320\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Render.Width != 320 {
		t.Errorf("Render.Width = %d, want 320", cfg.Render.Width)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadConfig() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[render]
width = 1024
height = 768
metric = "manhattan"
mode = "sequential"
workers = 4
seed = 99
markers = true
scale = 0.5

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"

[store]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"
database = "bench"

[server]
addr = ":9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	want := Config{
		Render: RenderConfig{Width: 1024, Height: 768, Metric: "manhattan", Mode: "sequential", Workers: 4, Seed: 99, Markers: true, Scale: 0.5},
		Cache:  CacheConfig{Backend: backendRedis, RedisURL: "redis://localhost:6379/1"},
		Store:  StoreConfig{Backend: backendMongo, MongoURI: "mongodb://localhost:27017", Database: "bench"},
		Server: ServerConfig{Addr: ":9090"},
	}
	if cfg != want {
		t.Errorf("LoadConfig() = %+v\nwant %+v", cfg, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", "[render\nwidth = 1"},
		{"unknown key", "[render]\ncolour = \"red\""},
		{"unknown cache backend", "[cache]\nbackend = \"memcached\""},
		{"redis without url", "[cache]\nbackend = \"redis\""},
		{"unknown store backend", "[store]\nbackend = \"postgres\""},
		{"mongo without uri", "[store]\nbackend = \"mongo\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("LoadConfig() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoadConfigBackendCase(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[cache]\nbackend = \"NONE\"\n[store]\nbackend = \"\""))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != backendNone || cfg.Store.Backend != backendFile {
		t.Errorf("backends = %q/%q, want none/file", cfg.Cache.Backend, cfg.Store.Backend)
	}
}

func TestRenderConfigApplyTo(t *testing.T) {
	newCmd := func(opts *pipeline.Options) *cobra.Command {
		cmd := &cobra.Command{Use: "render"}
		cmd.Flags().IntVar(&opts.Width, "width", pipeline.DefaultWidth, "")
		cmd.Flags().IntVar(&opts.Height, "height", pipeline.DefaultHeight, "")
		cmd.Flags().StringVar(&opts.Metric, "metric", "", "")
		cmd.Flags().StringVar(&opts.Mode, "mode", pipeline.DefaultMode, "")
		cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "")
		return cmd
	}
	rc := RenderConfig{Width: 1024, Height: 768, Metric: "chebyshev", Mode: "parallel", Seed: 5, Workers: 3}

	var opts pipeline.Options
	cmd := newCmd(&opts)
	if err := cmd.ParseFlags([]string{"--width", "640", "--metric", "manhattan"}); err != nil {
		t.Fatal(err)
	}
	rc.applyTo(cmd, &opts)

	if opts.Width != 640 {
		t.Errorf("Width = %d, flag should win", opts.Width)
	}
	if opts.Metric != "manhattan" {
		t.Errorf("Metric = %q, flag should win", opts.Metric)
	}
	if opts.Height != 768 || opts.Mode != "parallel" || opts.Seed != 5 {
		t.Errorf("config not applied: %+v", opts)
	}
	if opts.Workers != 0 {
		t.Errorf("Workers = %d, command has no workers flag", opts.Workers)
	}
}
