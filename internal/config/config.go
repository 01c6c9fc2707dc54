package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the markdown file written to the output directory.
const DefaultFileName = "dated.md"

// Config holds the top-level dated configuration.
type Config struct {
	Dirs   DirsConfig   `toml:"paths"`
	Output OutputConfig `toml:"output"`
	Loader LoaderConfig `toml:"loader"`
	Log    LogConfig    `toml:"log"`
}

// DirsConfig locates the task definitions and the generated output.
type DirsConfig struct {
	// TodoDir holds one subdirectory per task type (recurring, simple, ...).
	TodoDir string `toml:"todo_dir"`
	// OutputDir receives the generated markdown. Defaults to TodoDir.
	OutputDir string `toml:"output_dir"`
}

type OutputConfig struct {
	FileName string `toml:"file_name"`
	// Recipients are age X25519 public keys. When set the output is
	// encrypted and written with an .age suffix.
	Recipients []string `toml:"recipients,omitempty"`
}

type LoaderConfig struct {
	// Ignore holds doublestar patterns matched against paths relative to
	// the todo directory, e.g. "recurring/archive-*.json".
	Ignore []string `toml:"ignore,omitempty"`
}

type LogConfig struct {
	Level string `toml:"level"` // trace, debug, info, warn, error
	File  string `toml:"file,omitempty"`
}

// OutputPath returns the file the document is written to, before any
// encryption suffix.
func (c *Config) OutputPath() string {
	dir := c.Dirs.OutputDir
	if dir == "" {
		dir = c.Dirs.TodoDir
	}
	name := c.Output.FileName
	if name == "" {
		name = DefaultFileName
	}
	return filepath.Join(ExpandHome(dir), name)
}

// TodoDir returns the task directory with "~" expanded.
func (c *Config) TodoDir() string {
	return ExpandHome(c.Dirs.TodoDir)
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	datedConfig := filepath.Join(configDir, "dated")
	datedData := filepath.Join(dataDir, "dated")

	return Paths{
		ConfigDir:  datedConfig,
		DataDir:    datedData,
		StateDir:   filepath.Join(stateDir, "dated"),
		ConfigFile: filepath.Join(datedConfig, "config.toml"),
		DBFile:     filepath.Join(datedData, "dated.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if dated has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

func defaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			FileName: DefaultFileName,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" || len(p) > 1 && p[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
