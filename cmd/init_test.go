package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rnwolfe/dated/internal/config"
)

func TestScaffold(t *testing.T) {
	root := filepath.Join(t.TempDir(), "todo")
	cfg := &config.Config{Dirs: config.DirsConfig{TodoDir: root}}
	if err := os.MkdirAll(filepath.Join(root, "simple"), 0o755); err != nil {
		t.Fatal(err)
	}

	created, err := scaffold(cfg)
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if len(created) != 3 {
		t.Errorf("created = %v, want 3 new dirs", created)
	}
	for _, sub := range []string{"marked-day", "progressive", "recurring", "simple"} {
		if info, err := os.Stat(filepath.Join(root, sub)); err != nil || !info.IsDir() {
			t.Errorf("%s missing", sub)
		}
	}

	again, err := scaffold(cfg)
	if err != nil || len(again) != 0 {
		t.Errorf("second scaffold = %v, %v", again, err)
	}
}

func TestRunInit_NonInteractive(t *testing.T) {
	tmp := configTestEnv(t)
	initFlags.todoDir = filepath.Join(tmp, "tasks")
	initFlags.yes = true
	t.Cleanup(func() { initFlags.todoDir, initFlags.yes = "", false })

	captureStdout(t, func() {
		if err := runInit(nil, nil); err != nil {
			t.Errorf("runInit: %v", err)
		}
	})

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dirs.TodoDir != initFlags.todoDir {
		t.Errorf("todo_dir = %q", cfg.Dirs.TodoDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("saved config invalid: %v", err)
	}
}
