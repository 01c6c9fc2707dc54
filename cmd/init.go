package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rnwolfe/dated/internal/config"
	"github.com/rnwolfe/dated/internal/loader"
	"github.com/rnwolfe/dated/internal/ui"
)

var initFlags struct {
	todoDir   string
	outputDir string
	yes       bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up dated for the first time",
	Long: `Choose the task directory and output directory, create one
subdirectory per task type, and save the configuration.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initFlags.todoDir, "todo-dir", "", "Task directory")
	initCmd.Flags().StringVar(&initFlags.outputDir, "output-dir", "", "Output directory (defaults to the task directory)")
	initCmd.Flags().BoolVarP(&initFlags.yes, "yes", "y", false, "Do not prompt; use flags and defaults")
}

func runInit(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if initFlags.todoDir != "" {
		cfg.Dirs.TodoDir = initFlags.todoDir
	}
	if initFlags.outputDir != "" {
		cfg.Dirs.OutputDir = initFlags.outputDir
	}

	if !initFlags.yes {
		fmt.Println(ui.Title.Render(ui.IconDated + "Welcome to dated!"))
		fmt.Println()
		if cfg, err = promptDirs(cfg); err != nil {
			return err
		}
	}
	if cfg.Dirs.TodoDir == "" {
		cfg.Dirs.TodoDir = defaultTodoDir()
	}

	created, err := scaffold(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok("Saved " + config.GetPaths().ConfigFile)
	for _, dir := range created {
		ui.Inf("created " + dir)
	}
	ui.Tip("add task files under " + cfg.TodoDir() + ", then run `dated`.")
	return nil
}

// scaffold creates the task directory with one subdirectory per task type
// and returns the directories it had to create.
func scaffold(cfg *config.Config) ([]string, error) {
	root := cfg.TodoDir()
	var created []string
	for _, l := range loader.Registry() {
		dir := filepath.Join(root, l.Dir())
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return created, fmt.Errorf("creating %s: %w", dir, err)
		}
		created = append(created, dir)
	}
	return created, nil
}

// promptDirs asks for the task and output directories.
func promptDirs(cfg *config.Config) (*config.Config, error) {
	todoDir := cfg.Dirs.TodoDir
	if todoDir == "" {
		todoDir = defaultTodoDir()
	}
	outputDir := cfg.Dirs.OutputDir

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task directory").
				Description("Holds the recurring, progressive, simple and marked-day folders").
				Validate(requireValue).
				Value(&todoDir),
			huh.NewInput().
				Title("Output directory").
				Description("Where " + config.DefaultFileName + " is written; empty uses the task directory").
				Value(&outputDir),
		),
	).Run()
	if err != nil {
		return nil, err
	}

	cfg.Dirs.TodoDir = strings.TrimSpace(todoDir)
	cfg.Dirs.OutputDir = strings.TrimSpace(outputDir)
	return cfg, nil
}

func requireValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a directory is required")
	}
	return nil
}

func defaultTodoDir() string {
	return filepath.Join("~", "todo")
}
