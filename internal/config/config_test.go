package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/tasktree/internal/config"
	"github.com/amonks/tasktree/internal/testsupport"
	"github.com/amonks/tasktree/task"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Display.TextLengthThreshold != task.DefaultTextLengthThreshold {
		t.Errorf("threshold = %d, expected %d", cfg.Display.TextLengthThreshold, task.DefaultTextLengthThreshold)
	}
	if cfg.Display.Color != "auto" {
		t.Errorf("color = %q, expected auto", cfg.Display.Color)
	}
	if cfg.Store.Path != filepath.Join(tmpDir, config.DefaultStorePath) {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
}

func TestLoad_Project(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.ProjectFile), `
[display]
text-length-threshold = 40
color = "Never"

[store]
path = "board/tasks.jsonl"
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.TextLengthThreshold != 40 {
		t.Errorf("threshold = %d, expected 40", cfg.Display.TextLengthThreshold)
	}
	if cfg.Display.Color != "never" {
		t.Errorf("color = %q, expected never", cfg.Display.Color)
	}
	if cfg.Store.Path != filepath.Join(tmpDir, "board", "tasks.jsonl") {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(home, ".config", "tasktree", "config.toml"), `
[display]
text-length-threshold = 80
color = "always"
`)
	writeFile(t, filepath.Join(tmpDir, config.ProjectFile), `
[display]
color = "never"
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.TextLengthThreshold != 80 {
		t.Errorf("threshold = %d, expected global 80", cfg.Display.TextLengthThreshold)
	}
	if cfg.Display.Color != "never" {
		t.Errorf("color = %q, expected project never", cfg.Display.Color)
	}
}

func TestLoad_InvalidColor(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.ProjectFile), `
[display]
color = "sometimes"
`)

	_, err := config.Load(tmpDir)
	if err == nil || !strings.Contains(err.Error(), "display.color") {
		t.Fatalf("expected display.color error, got %v", err)
	}
}

func TestLoad_NegativeThreshold(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.ProjectFile), `
[display]
text-length-threshold = -1
`)

	if _, err := config.Load(tmpDir); err == nil {
		t.Fatal("expected error for negative threshold")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.ProjectFile), "[display\n")

	_, err := config.Load(tmpDir)
	if err == nil || !strings.Contains(err.Error(), "parse config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
