package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Documents.Names != "names/names.md" {
		t.Errorf("expected default names document names/names.md, got %s", cfg.Documents.Names)
	}
	if cfg.Documents.Objects != "objects/objects.md" {
		t.Errorf("expected default objects document objects/objects.md, got %s", cfg.Documents.Objects)
	}
	if cfg.Generation.MaxConsecutiveDuplicates != 10000 {
		t.Errorf("expected 10000 max consecutive duplicates, got %d", cfg.Generation.MaxConsecutiveDuplicates)
	}
	if cfg.Generation.ProgressInterval != 100000 {
		t.Errorf("expected progress interval 100000, got %d", cfg.Generation.ProgressInterval)
	}
	if cfg.Output.Path != "/output/all_commands.txt" {
		t.Errorf("expected output /output/all_commands.txt, got %s", cfg.Output.Path)
	}
	if cfg.Generation.Extended {
		t.Error("expected extended categories off by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing names document",
			modify:  func(c *Config) { c.Documents.Names = "" },
			wantErr: true,
		},
		{
			name:    "blank rooms document",
			modify:  func(c *Config) { c.Documents.Rooms = "   " },
			wantErr: true,
		},
		{
			name:    "zero duplicate threshold",
			modify:  func(c *Config) { c.Generation.MaxConsecutiveDuplicates = 0 },
			wantErr: true,
		},
		{
			name:    "missing output path",
			modify:  func(c *Config) { c.Output.Path = "" },
			wantErr: true,
		},
		{
			name:    "nats url without subject",
			modify:  func(c *Config) { c.Output.NATSURL = "nats://localhost:4222" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "progress disabled",
			modify:  func(c *Config) { c.Generation.ProgressInterval = -1 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
documents:
  base_dir: "/data/robocup"
  locations: "maps/*.md"
generation:
  max_consecutive_duplicates: 500
  seed: 42
  extended: true
output:
  path: "/tmp/commands.txt"
watch:
  debounce_delay: 1s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Documents.BaseDir != "/data/robocup" {
		t.Errorf("expected base dir /data/robocup, got %s", cfg.Documents.BaseDir)
	}
	if cfg.Documents.Locations != "maps/*.md" {
		t.Errorf("expected locations maps/*.md, got %s", cfg.Documents.Locations)
	}
	// Unset fields keep their defaults
	if cfg.Documents.Names != "names/names.md" {
		t.Errorf("expected names to remain default, got %s", cfg.Documents.Names)
	}
	if cfg.Generation.MaxConsecutiveDuplicates != 500 {
		t.Errorf("expected 500 max consecutive duplicates, got %d", cfg.Generation.MaxConsecutiveDuplicates)
	}
	if cfg.Generation.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Generation.Seed)
	}
	if !cfg.Generation.Extended {
		t.Error("expected extended categories on")
	}
	if cfg.Watch.GetDebounceDelay().String() != "1s" {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.GetDebounceDelay())
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Documents: DocumentsConfig{
			Rooms: "maps/rooms/*.md",
		},
		Generation: GenerationConfig{
			CategoryHint: "people",
		},
	}

	base.Merge(override)

	if base.Documents.Rooms != "maps/rooms/*.md" {
		t.Errorf("expected rooms maps/rooms/*.md, got %s", base.Documents.Rooms)
	}
	// Names should remain from base since override didn't set it
	if base.Documents.Names != "names/names.md" {
		t.Errorf("expected names to remain default, got %s", base.Documents.Names)
	}
	if base.Generation.CategoryHint != "people" {
		t.Errorf("expected category hint people, got %s", base.Generation.CategoryHint)
	}
	if base.Generation.MaxConsecutiveDuplicates != 10000 {
		t.Errorf("expected threshold to remain default, got %d", base.Generation.MaxConsecutiveDuplicates)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "gpsrgen.yaml")

	cfg := DefaultConfig()
	cfg.Output.Path = "corpus/commands.txt"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Output.Path != "corpus/commands.txt" {
		t.Errorf("expected output corpus/commands.txt, got %s", loaded.Output.Path)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GPSRGEN_OUTPUT", "/env/commands.txt")
	t.Setenv("GPSRGEN_MAX_DUPLICATES", "25")
	t.Setenv("GPSRGEN_WATCH_DEBOUNCE", "2s")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Output.Path != "/env/commands.txt" {
		t.Errorf("expected output from env, got %s", cfg.Output.Path)
	}
	if cfg.Generation.MaxConsecutiveDuplicates != 25 {
		t.Errorf("expected threshold 25 from env, got %d", cfg.Generation.MaxConsecutiveDuplicates)
	}
	if cfg.Watch.DebounceDelay != "2s" {
		t.Errorf("expected debounce 2s from env, got %s", cfg.Watch.DebounceDelay)
	}
	// Unset variables leave values alone
	if cfg.Documents.Objects != "objects/objects.md" {
		t.Errorf("expected objects to remain default, got %s", cfg.Documents.Objects)
	}
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	t.Setenv("GPSRGEN_SEED", "not-a-number")

	if err := DefaultConfig().ApplyEnv(); err == nil {
		t.Error("expected error for invalid seed")
	}
}

func TestLoaderLayering(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	work := filepath.Join(project, "sub", "dir")
	if err := os.MkdirAll(work, 0755); err != nil {
		t.Fatal(err)
	}

	user := DefaultConfig()
	user.Output.Path = "/user/commands.txt"
	user.Generation.Seed = 7
	if err := user.SaveToFile(filepath.Join(home, UserConfigDir, UserConfigFile)); err != nil {
		t.Fatal(err)
	}

	projectYAML := "output:\n  path: /project/commands.txt\n"
	if err := os.WriteFile(filepath.Join(project, ProjectConfigFile), []byte(projectYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader(nil).WithDirs(work, home).Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Path != "/project/commands.txt" {
		t.Errorf("expected project config to win, got %s", cfg.Output.Path)
	}
	if cfg.Generation.Seed != 7 {
		t.Errorf("expected seed from user config, got %d", cfg.Generation.Seed)
	}
	if cfg.Documents.BaseDir != project {
		t.Errorf("expected base dir %s, got %s", project, cfg.Documents.BaseDir)
	}
}

func TestLoaderKeepsLowerLayerValues(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()

	userPath := filepath.Join(home, UserConfigDir, UserConfigFile)
	if err := os.MkdirAll(filepath.Dir(userPath), 0755); err != nil {
		t.Fatal(err)
	}
	userYAML := "generation:\n  max_consecutive_duplicates: 500\noutput:\n  path: /user/out.txt\n"
	if err := os.WriteFile(userPath, []byte(userYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, ProjectConfigFile), []byte("generation:\n  seed: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader(nil).WithDirs(work, home).Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Generation.MaxConsecutiveDuplicates != 500 {
		t.Errorf("expected max duplicates 500 from user config, got %d", cfg.Generation.MaxConsecutiveDuplicates)
	}
	if cfg.Output.Path != "/user/out.txt" {
		t.Errorf("expected output path from user config, got %s", cfg.Output.Path)
	}
	if cfg.Generation.Seed != 3 {
		t.Errorf("expected seed 3 from project config, got %d", cfg.Generation.Seed)
	}
	if cfg.Documents.Names != "names/names.md" {
		t.Errorf("expected default names path, got %s", cfg.Documents.Names)
	}
}

func TestLoaderExplicitFile(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(explicit, []byte("generation:\n  category_hint: people\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(nil).WithDirs(t.TempDir(), t.TempDir())

	cfg, err := loader.Load(explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Generation.CategoryHint != "people" {
		t.Errorf("expected category hint people, got %s", cfg.Generation.CategoryHint)
	}
	if cfg.Documents.BaseDir != dir {
		t.Errorf("expected base dir %s, got %s", dir, cfg.Documents.BaseDir)
	}

	if _, err := loader.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestEnsureProjectConfig(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(nil)

	path, created, err := loader.EnsureProjectConfig(dir)
	if err != nil {
		t.Fatalf("EnsureProjectConfig() error = %v", err)
	}
	if !created {
		t.Error("expected config to be created")
	}
	if path != filepath.Join(dir, ProjectConfigFile) {
		t.Errorf("unexpected path %s", path)
	}

	_, created, err = loader.EnsureProjectConfig(dir)
	if err != nil {
		t.Fatalf("EnsureProjectConfig() error = %v", err)
	}
	if created {
		t.Error("expected existing config to be kept")
	}
}
