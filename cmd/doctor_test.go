package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rnwolfe/dated/internal/config"
)

func TestCheckConfig_Missing(t *testing.T) {
	configTestEnv(t)

	r := checkConfig()
	if r.ok {
		t.Fatal("expected checkConfig to fail when no config exists")
	}
	if !strings.Contains(r.fixHint, "dated init") {
		t.Errorf("expected fix hint to mention 'dated init', got: %q", r.fixHint)
	}
}

func TestCheckConfig_Invalid(t *testing.T) {
	configTestEnv(t)
	cfg := &config.Config{Dirs: config.DirsConfig{TodoDir: "/does/not/exist"}}
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if r := checkConfig(); r.ok || r.fixHint == "" {
		t.Errorf("checkConfig = %+v", r)
	}
}

func TestCheckConfig_Present(t *testing.T) {
	tmp := configTestEnv(t)
	cfg := &config.Config{Dirs: config.DirsConfig{TodoDir: tmp}}
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	r := checkConfig()
	if !r.ok {
		t.Fatalf("expected checkConfig to pass, got detail: %q", r.detail)
	}
	if !strings.Contains(r.detail, "config.toml") {
		t.Errorf("expected detail to mention config.toml, got: %q", r.detail)
	}
}

func TestCheckTodoDir(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{Dirs: config.DirsConfig{TodoDir: root}}

	if r := checkTodoDir(cfg); r.ok {
		t.Error("expected failure with no task type directories")
	}

	os.Mkdir(filepath.Join(root, "recurring"), 0o755)
	r := checkTodoDir(cfg)
	if !r.ok {
		t.Fatalf("expected pass with one type present: %+v", r)
	}
	if !strings.Contains(r.detail, "1 of 4") || !strings.Contains(r.detail, "marked-day") {
		t.Errorf("detail = %q", r.detail)
	}
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Dirs: config.DirsConfig{TodoDir: dir}}
	if r := checkOutput(cfg); !r.ok {
		t.Errorf("writable dir failed: %+v", r)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("probe file left behind: %v", entries)
	}

	cfg.Dirs.OutputDir = filepath.Join(dir, "new")
	if r := checkOutput(cfg); !r.ok || !strings.Contains(r.detail, "will be created") {
		t.Errorf("missing dir: %+v", r)
	}
}

func TestCheckStore_Works(t *testing.T) {
	configTestEnv(t)

	if r := checkStore(); !r.ok {
		t.Fatalf("expected checkStore to pass, got: %q", r.detail)
	}
}
