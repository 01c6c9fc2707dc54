package config

import (
	"sort"
	"strings"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	// KeyTypeList values are set as a comma-separated string.
	KeyTypeList KeyType = "list"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type.
	Type KeyType
	// Desc is a human-readable description shown in `dated config list`.
	Desc string
	// DefaultStr is the string representation of the default/zero value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set applies the value. Callers validate the whole config afterwards.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"paths.todo_dir": {
		Type:  KeyTypeString,
		Desc:  "Directory holding the task definition subdirectories",
		get:   func(cfg *Config) string { return cfg.Dirs.TodoDir },
		set:   func(cfg *Config, v string) error { cfg.Dirs.TodoDir = v; return nil },
		unset: func(cfg *Config) { cfg.Dirs.TodoDir = "" },
	},
	"paths.output_dir": {
		Type:  KeyTypeString,
		Desc:  "Directory the generated markdown is written to (defaults to todo_dir)",
		get:   func(cfg *Config) string { return cfg.Dirs.OutputDir },
		set:   func(cfg *Config, v string) error { cfg.Dirs.OutputDir = v; return nil },
		unset: func(cfg *Config) { cfg.Dirs.OutputDir = "" },
	},
	"output.file_name": {
		Type:       KeyTypeString,
		Desc:       "Name of the generated markdown file",
		DefaultStr: DefaultFileName,
		get:        func(cfg *Config) string { return cfg.Output.FileName },
		set:        func(cfg *Config, v string) error { cfg.Output.FileName = v; return nil },
		unset:      func(cfg *Config) { cfg.Output.FileName = DefaultFileName },
	},
	"output.recipients": {
		Type:  KeyTypeList,
		Desc:  "age public keys to encrypt the output for",
		get:   func(cfg *Config) string { return strings.Join(cfg.Output.Recipients, ",") },
		set:   func(cfg *Config, v string) error { cfg.Output.Recipients = SplitList(v); return nil },
		unset: func(cfg *Config) { cfg.Output.Recipients = nil },
	},
	"loader.ignore": {
		Type:  KeyTypeList,
		Desc:  "Glob patterns of task files to skip",
		get:   func(cfg *Config) string { return strings.Join(cfg.Loader.Ignore, ",") },
		set:   func(cfg *Config, v string) error { cfg.Loader.Ignore = SplitList(v); return nil },
		unset: func(cfg *Config) { cfg.Loader.Ignore = nil },
	},
	"log.level": {
		Type:       KeyTypeString,
		Desc:       "Log level (trace, debug, info, warn, error)",
		DefaultStr: "warn",
		get:        func(cfg *Config) string { return cfg.Log.Level },
		set:        func(cfg *Config, v string) error { cfg.Log.Level = strings.ToLower(v); return nil },
		unset:      func(cfg *Config) { cfg.Log.Level = "warn" },
	},
	"log.file": {
		Type:  KeyTypeString,
		Desc:  "Write JSON logs to this file instead of stderr",
		get:   func(cfg *Config) string { return cfg.Log.File },
		set:   func(cfg *Config, v string) error { cfg.Log.File = v; return nil },
		unset: func(cfg *Config) { cfg.Log.File = "" },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// SplitList splits a comma-separated value, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
