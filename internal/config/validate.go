package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"filippo.io/age"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

// Validate checks the configuration. Field errors are collected, so the
// returned error lists every problem at once.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("paths.todo_dir", c.TodoDir(), isExistingDirectory),
		criterio.Run("paths.output_dir", ExpandHome(c.Dirs.OutputDir), isDirectoryOrNotExist),
		criterio.Run("output.file_name", c.Output.FileName, isPlainFileName),
		criterio.Run("log.level", c.Log.Level, isLogLevel),
		c.validateRecipients(),
		c.validateIgnore(),
	)
}

// ValidateKey validates the configuration but reports only the problems
// with one key, so a single setting can be changed before the rest of the
// file is complete.
func (c *Config) ValidateKey(key string) error {
	err := c.Validate()
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var own criterio.FieldErrors
	for _, fe := range fieldErrs {
		if fe.Field == key || strings.HasPrefix(fe.Field, key+"[") {
			own = append(own, fe)
		}
	}
	if len(own) == 0 {
		return nil
	}
	return own
}

func isExistingDirectory(path string) error {
	if path == "" {
		return fmt.Errorf("is required (run `dated init`)")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isPlainFileName(name string) error {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%q must be a bare file name", name)
	}
	return nil
}

func isLogLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

func (c *Config) validateRecipients() error {
	var errs criterio.FieldErrorsBuilder
	for i, r := range c.Output.Recipients {
		if _, err := age.ParseX25519Recipient(r); err != nil {
			errs = errs.Append(fmt.Sprintf("output.recipients[%d]", i), err)
		}
	}
	return errs.ToError()
}

func (c *Config) validateIgnore() error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range c.Loader.Ignore {
		if !doublestar.ValidatePattern(p) {
			errs = errs.Append(fmt.Sprintf("loader.ignore[%d]", i), fmt.Errorf("invalid pattern %q", p))
		}
	}
	return errs.ToError()
}
