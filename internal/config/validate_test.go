package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filippo.io/age"
	"github.com/hay-kot/criterio"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := defaultConfig()
	cfg.Dirs.TodoDir = t.TempDir()
	return cfg
}

func fieldErrors(t *testing.T, err error) criterio.FieldErrors {
	t.Helper()
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected criterio.FieldErrors, got %T: %v", err, err)
	}
	return fieldErrs
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig(t)
	id, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Output.Recipients = []string{id.Recipient().String()}
	cfg.Loader.Ignore = []string{"**/*.bak", "recurring/old-*.json"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_TodoDirRequired(t *testing.T) {
	cfg := defaultConfig()
	errs := fieldErrors(t, cfg.Validate())
	if errs[0].Field != "paths.todo_dir" {
		t.Errorf("field = %q, want paths.todo_dir", errs[0].Field)
	}
}

func TestValidate_OutputDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Dirs.OutputDir = file
	errs := fieldErrors(t, cfg.Validate())
	if errs[0].Field != "paths.output_dir" {
		t.Errorf("field = %q, want paths.output_dir", errs[0].Field)
	}
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := validConfig(t)
	cfg.Output.FileName = "../escape.md"
	cfg.Log.Level = "chatty"
	cfg.Output.Recipients = []string{"not-a-key"}
	cfg.Loader.Ignore = []string{"[unclosed"}

	errs := fieldErrors(t, cfg.Validate())
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	joined := strings.Join(fields, " ")
	for _, want := range []string{"output.file_name", "log.level", "output.recipients[0]", "loader.ignore[0]"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing field error %q in %v", want, fields)
		}
	}
}

func TestValidateKey_IgnoresOtherKeys(t *testing.T) {
	cfg := defaultConfig() // todo_dir unset
	cfg.Log.Level = "debug"
	if err := cfg.ValidateKey("log.level"); err != nil {
		t.Fatalf("ValidateKey(log.level): %v", err)
	}
	if err := cfg.ValidateKey("paths.todo_dir"); err == nil {
		t.Fatal("ValidateKey(paths.todo_dir) should report the missing directory")
	}

	cfg.Output.Recipients = []string{"age1bogus"}
	fieldErrs := fieldErrors(t, cfg.ValidateKey("output.recipients"))
	if len(fieldErrs) != 1 || fieldErrs[0].Field != "output.recipients[0]" {
		t.Errorf("errors = %v", fieldErrs)
	}
}
