package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/textmesh/pkg/textmesh"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Font.Name != "goregular" {
		t.Errorf("expected font goregular, got %s", cfg.Font.Name)
	}
	if cfg.Style.FontSize != "18" {
		t.Errorf("expected font size 18, got %s", cfg.Style.FontSize)
	}
	if cfg.Style.Quality != "medium" {
		t.Errorf("expected medium quality, got %s", cfg.Style.Quality)
	}
	if !cfg.Size.Wrap {
		t.Error("expected wrap to be true by default")
	}
	if cfg.Output.Path != "text.obj" {
		t.Errorf("expected output text.obj, got %s", cfg.Output.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestDefaultRequestMatchesNewRequest(t *testing.T) {
	req, err := Default().Request("hello")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	want := textmesh.NewRequest("hello")
	want.Style.Font = "goregular"
	if *req != *want {
		t.Errorf("default config request %+v, want %+v", *req, *want)
	}
}

func TestRequest(t *testing.T) {
	cfg := Default()
	cfg.Style.FontSize = "auto"
	cfg.Style.Casing = "upper"
	cfg.Style.Quality = "high"
	cfg.Size.Depth = "0.5"
	cfg.Size.Wrap = false

	req, err := cfg.Request("abc")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if !req.Style.FontSize.IsAuto() {
		t.Error("expected automatic font size")
	}
	if req.Style.Casing != textmesh.CasingUppercase {
		t.Errorf("expected uppercase, got %v", req.Style.Casing)
	}
	if req.Style.Quality != textmesh.QualityHigh {
		t.Errorf("expected high quality, got %v", req.Style.Quality)
	}
	if d, ok := req.Size.Depth.Resolve(); !ok || d != 0.5 {
		t.Errorf("expected size depth 0.5, got %v", d)
	}
	if req.Size.Wrapping {
		t.Error("expected wrapping disabled")
	}
}

func TestRequestInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"font size", func(c *Config) { c.Style.FontSize = "huge" }, textmesh.ErrInvalidSizeUnit},
		{"width", func(c *Config) { c.Size.Width = "wide" }, textmesh.ErrInvalidSizeUnit},
		{"casing", func(c *Config) { c.Style.Casing = "title" }, textmesh.ErrInvalidCasing},
		{"quality", func(c *Config) { c.Style.Quality = "ultra" }, textmesh.ErrInvalidQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if _, err := cfg.Request("x"); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	yamlContent := `
font:
  name: "DejaVuSans"
  search_paths:
    - "/usr/share/fonts"
    - "./fonts"

style:
  font_size: "24"
  casing: "lower"
  quality: "low"
  depth: "0.2"

size:
  width: "120"
  wrap: false

output:
  path: "out/hello.obj"
  object: "hello"

logging:
  level: "debug"
  log_file: "textmesh.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Font.Name != "DejaVuSans" {
		t.Errorf("expected font DejaVuSans, got %s", cfg.Font.Name)
	}
	if len(cfg.Font.SearchPaths) != 2 || cfg.Font.SearchPaths[1] != "./fonts" {
		t.Errorf("unexpected search paths %v", cfg.Font.SearchPaths)
	}
	if cfg.Style.FontSize != "24" || cfg.Style.Casing != "lower" || cfg.Style.Quality != "low" {
		t.Errorf("unexpected style %+v", cfg.Style)
	}
	if cfg.Size.Width != "120" || cfg.Size.Wrap {
		t.Errorf("unexpected size %+v", cfg.Size)
	}
	// Keys missing from the file keep their defaults
	if cfg.Size.Height != "180" {
		t.Errorf("expected default height 180, got %s", cfg.Size.Height)
	}
	if cfg.Output.Object != "hello" {
		t.Errorf("expected object hello, got %s", cfg.Output.Object)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "textmesh.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
style:
  font_size: [not, a, scalar
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/textmesh.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Style.FontSize = "auto"
	cfg.Size.Depth = "0.3"
	cfg.Font.SearchPaths = append(cfg.Font.SearchPaths, "/opt/fonts")

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := &Config{}
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Style.FontSize != "auto" || loaded.Size.Depth != "0.3" {
		t.Errorf("values lost in round trip: %+v %+v", loaded.Style, loaded.Size)
	}
	if loaded.Style.Depth != "0.08" || loaded.Size.Width != "72" {
		t.Errorf("numeric strings lost in round trip: %+v %+v", loaded.Style, loaded.Size)
	}
	if len(loaded.Font.SearchPaths) != 2 {
		t.Errorf("expected 2 search paths, got %v", loaded.Font.SearchPaths)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("style:\n  quality: high\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "font and output flags",
			setup: func() {
				*flagFont = "fonts/Custom.ttf"
				*flagOut = "custom.obj"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Font.Name != "fonts/Custom.ttf" {
					t.Errorf("expected custom font, got %s", cfg.Font.Name)
				}
				if cfg.Output.Path != "custom.obj" {
					t.Errorf("expected custom.obj, got %s", cfg.Output.Path)
				}
			},
			teardown: func() {
				*flagFont = ""
				*flagOut = ""
			},
		},
		{
			name: "depth flag clears size depth",
			setup: func() {
				*flagDepth = "0.4"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Style.Depth != "0.4" || cfg.Size.Depth != "" {
					t.Errorf("unexpected depths style=%q size=%q", cfg.Style.Depth, cfg.Size.Depth)
				}
			},
			teardown: func() { *flagDepth = "" },
		},
		{
			name: "style flags",
			setup: func() {
				*flagFontSize = "32"
				*flagQuality = "high"
				*flagCasing = "upper"
				*flagWidth = "auto"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Style.FontSize != "32" || cfg.Style.Quality != "high" || cfg.Style.Casing != "upper" {
					t.Errorf("unexpected style %+v", cfg.Style)
				}
				if cfg.Size.Width != "auto" {
					t.Errorf("expected auto width, got %s", cfg.Size.Width)
				}
			},
			teardown: func() {
				*flagFontSize = ""
				*flagQuality = ""
				*flagCasing = ""
				*flagWidth = ""
			},
		},
		{
			name:  "no-wrap flag",
			setup: func() { *flagNoWrap = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Size.Wrap {
					t.Error("expected wrap disabled")
				}
			},
			teardown: func() { *flagNoWrap = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			cfg.Size.Depth = "0.9"
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	yamlContent := `
style:
  font_size: "24"
  quality: "low"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagFontSize = "48"
	defer func() {
		*flagConfig = ""
		*flagFontSize = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Style.FontSize != "48" {
		t.Errorf("expected font size 48 from flag, got %s", cfg.Style.FontSize)
	}
	if cfg.Style.Quality != "low" {
		t.Errorf("expected quality low from file, got %s", cfg.Style.Quality)
	}
	if cfg.Style.Depth != "0.08" {
		t.Errorf("expected default depth, got %s", cfg.Style.Depth)
	}
}
