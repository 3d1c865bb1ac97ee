package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
}

func TestLoad(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Output.Dir != "build/sql" {
		t.Errorf("expected default output dir 'build/sql', got %s", cfg.Output.Dir)
	}
	if cfg.Output.CreateScript != "create.sql" {
		t.Errorf("expected default create script 'create.sql', got %s", cfg.Output.CreateScript)
	}
	if cfg.Seed != "" {
		t.Errorf("expected no default seed, got %s", cfg.Seed)
	}
	if cfg.Log.Verbose {
		t.Error("expected verbose logging to be off by default")
	}
	if got := cfg.DropScriptPath(); got != filepath.Join("build/sql", "drop.sql") {
		t.Errorf("unexpected drop script path %s", got)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	configContent := `
project_name: hr
seed: schema/hr.yaml
output:
  dir: out
  create_script: hr_create.sql
log:
  verbose: true
`
	if err := os.WriteFile("datadict.yaml", []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.ProjectName != "hr" {
		t.Errorf("expected project name 'hr', got %s", cfg.ProjectName)
	}
	if cfg.Seed != "schema/hr.yaml" {
		t.Errorf("expected seed 'schema/hr.yaml', got %s", cfg.Seed)
	}
	if cfg.CreateScriptPath() != filepath.Join("out", "hr_create.sql") {
		t.Errorf("unexpected create script path %s", cfg.CreateScriptPath())
	}
	if cfg.Output.StatementsScript != "statements.sql" {
		t.Errorf("expected default statements script, got %s", cfg.Output.StatementsScript)
	}
	if !cfg.Log.Verbose {
		t.Error("expected verbose logging from config file")
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATADICT_OUTPUT_DIR", "env/sql")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Dir != "env/sql" {
		t.Errorf("expected output dir from environment, got %s", cfg.Output.Dir)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("project_name: custom\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectName != "custom" {
		t.Errorf("expected project name 'custom', got %s", cfg.ProjectName)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		output  OutputConfig
		wantErr bool
	}{
		{"valid", OutputConfig{Dir: "out", CreateScript: "c.sql", DropScript: "d.sql", StatementsScript: "s.sql"}, false},
		{"empty dir", OutputConfig{CreateScript: "c.sql", DropScript: "d.sql", StatementsScript: "s.sql"}, true},
		{"path in name", OutputConfig{Dir: "out", CreateScript: "sub/c.sql", DropScript: "d.sql", StatementsScript: "s.sql"}, true},
		{"same file twice", OutputConfig{Dir: "out", CreateScript: "all.sql", DropScript: "all.sql", StatementsScript: "s.sql"}, true},
		{"empty name", OutputConfig{Dir: "out", CreateScript: "c.sql", StatementsScript: "s.sql"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&Config{Output: tt.output})
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestGetProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "datadict.yml"), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, nested)

	got, err := GetProjectRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := filepath.EvalSymlinks(root)
	got, _ = filepath.EvalSymlinks(got)
	if got != want {
		t.Errorf("expected root %s, got %s", want, got)
	}
}
