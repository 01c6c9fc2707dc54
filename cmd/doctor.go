package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/dated/internal/config"
	"github.com/rnwolfe/dated/internal/loader"
	"github.com/rnwolfe/dated/internal/store"
	"github.com/rnwolfe/dated/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check your dated setup for problems",
	RunE:  runDoctor,
}

type checkResult struct {
	name    string
	ok      bool
	detail  string
	fixHint string
}

func runDoctor(_ *cobra.Command, _ []string) error {
	results := []checkResult{checkConfig()}
	if cfg, err := config.Load(); err == nil {
		results = append(results, checkTodoDir(cfg), checkOutput(cfg))
	}
	results = append(results, checkStore())

	fmt.Println()
	failed := 0
	for _, r := range results {
		printCheck(r)
		if !r.ok {
			failed++
		}
	}
	fmt.Println()

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed, see suggestions above", failed)
	}
	return nil
}

func printCheck(r checkResult) {
	label := fmt.Sprintf("%-12s", r.name)
	if r.ok {
		fmt.Printf("  %s %s %s\n", ui.Success.Render(ui.IconOk), ui.KeyStyle.Render(label), ui.Muted.Render(r.detail))
		return
	}
	fmt.Printf("  %s %s %s\n", ui.Error.Render(ui.IconError), ui.KeyStyle.Render(label), r.detail)
	if r.fixHint != "" {
		fmt.Printf("  %16s %s\n", "", ui.Muted.Render(ui.IconArrow+" "+r.fixHint))
	}
}

func checkConfig() checkResult {
	paths := config.GetPaths()
	if !config.Initialized() {
		return checkResult{
			name:    "Config",
			detail:  "config file not found",
			fixHint: fmt.Sprintf("Run %s to create it", ui.Accent.Render("dated init")),
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return checkResult{
			name:    "Config",
			detail:  fmt.Sprintf("parse error: %v", err),
			fixHint: fmt.Sprintf("Check %s for syntax errors", paths.ConfigFile),
		}
	}
	if err := cfg.Validate(); err != nil {
		return checkResult{
			name:    "Config",
			detail:  err.Error(),
			fixHint: fmt.Sprintf("Fix with %s", ui.Accent.Render("dated config set <key> <value>")),
		}
	}
	return checkResult{name: "Config", ok: true, detail: paths.ConfigFile + " found and valid"}
}

// checkTodoDir reports missing task type subdirectories. They are not
// required, so this only fails when none exist.
func checkTodoDir(cfg *config.Config) checkResult {
	root := cfg.TodoDir()
	if root == "" {
		return checkResult{name: "Task dirs", detail: "no task directory set", fixHint: "Run `dated init`"}
	}
	var found, missing []string
	for _, l := range loader.Registry() {
		if info, err := os.Stat(filepath.Join(root, l.Dir())); err == nil && info.IsDir() {
			found = append(found, l.Dir())
		} else {
			missing = append(missing, l.Dir())
		}
	}
	if len(found) == 0 {
		return checkResult{
			name:    "Task dirs",
			detail:  "no task type directories in " + root,
			fixHint: "Run `dated init` to create them",
		}
	}
	detail := fmt.Sprintf("%d of %d task types present", len(found), len(found)+len(missing))
	if len(missing) > 0 {
		detail += fmt.Sprintf(" (missing: %v)", missing)
	}
	return checkResult{name: "Task dirs", ok: true, detail: detail}
}

func checkOutput(cfg *config.Config) checkResult {
	dir := filepath.Dir(cfg.OutputPath())
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return checkResult{name: "Output", ok: true, detail: dir + " will be created on the next run"}
	}
	f, err := os.CreateTemp(dir, ".dated-doctor-*")
	if err != nil {
		return checkResult{
			name:    "Output",
			detail:  fmt.Sprintf("cannot write to %s: %v", dir, err),
			fixHint: "Set a writable directory with `dated config set paths.output_dir <dir>`",
		}
	}
	f.Close()
	os.Remove(f.Name())
	return checkResult{name: "Output", ok: true, detail: cfg.OutputPath() + " is writable"}
}

func checkStore() checkResult {
	db, err := store.Open()
	if err != nil {
		return checkResult{
			name:    "History",
			detail:  fmt.Sprintf("cannot open database: %v", err),
			fixHint: "Check permissions and free space under " + config.GetPaths().DataDir,
		}
	}
	db.Close()
	return checkResult{name: "History", ok: true, detail: "SQLite database opens and responds"}
}
