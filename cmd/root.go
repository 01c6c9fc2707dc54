package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rnwolfe/dated/internal/config"
	"github.com/rnwolfe/dated/internal/logging"
	"github.com/rnwolfe/dated/internal/ui"
	"github.com/rnwolfe/dated/internal/version"
)

type rootFlags struct {
	dated   bool
	today   bool
	tui     bool
	raw     bool
	debug   bool
	noColor bool
	version bool
	date    string
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:   "dated",
	Short: "Repeating tasks, laid out on a calendar",
	Long: `dated reads recurring, progressive, one-off and yearly task files,
works out when each is next due, and writes a markdown agenda grouped into
overdue, today, the rest of the week, the weeks of the coming year, later
and inactive.`,
	RunE: runRoot,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		ui.SetColor(!flags.noColor)
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&flags.dated, "dated", false, "Print the whole agenda")
	f.BoolVar(&flags.today, "today", false, "Print today's tasks")
	f.BoolVar(&flags.tui, "tui", false, "Browse the agenda interactively")
	f.BoolVar(&flags.raw, "raw", false, "Print markdown without terminal styling")
	f.BoolVarP(&flags.version, "version", "v", false, "Print the version and exit")
	f.StringVar(&flags.date, "date", "", "Classify as if today were `YYYY-MM-DD`")

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "Log at debug level")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the run logger from config, raised to debug by --debug.
func newLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	opts := logging.Options{
		Level:   cfg.Log.Level,
		File:    config.ExpandHome(cfg.Log.File),
		NoColor: flags.noColor || !ui.ColorEnabled(),
	}
	if flags.debug {
		opts.Level = "debug"
	}
	return logging.New(opts)
}

// logFlags records every flag the user set.
func logFlags(log zerolog.Logger, fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		log.Debug().Str("flag", f.Name).Str("value", f.Value.String()).Msg("flag set")
	})
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if flags.version {
		fmt.Printf("dated %s\n", version.Short())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Dirs.TodoDir == "" && ui.IsStdoutTTY() {
		if cfg, err = promptDirs(cfg); err != nil {
			return err
		}
		if _, err := scaffold(cfg); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logFlags(log, cmd.Flags())

	res, err := generate(cmd.Context(), log, cfg, runOptions{date: flags.date})
	if err != nil {
		return err
	}

	switch {
	case flags.tui:
		return runTUI(res)
	case flags.dated:
		return printMarkdown(res.document)
	case flags.today:
		return printMarkdown(res.today)
	}
	printResult(res)
	return nil
}
