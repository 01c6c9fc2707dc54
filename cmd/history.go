package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/dated/internal/calendar"
	"github.com/rnwolfe/dated/internal/history"
	"github.com/rnwolfe/dated/internal/store"
	"github.com/rnwolfe/dated/internal/tui"
	"github.com/rnwolfe/dated/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history [n]",
	Short: "Show the latest runs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one run and the records it skipped",
	Long: `Show one run and the records it skipped. The id may be a unique
prefix. Without an id, pick a run from the recent history.`,
	Args: cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit := 10
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		limit = n
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	runs, err := history.NewStore(db.Conn()).List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		ui.Inf("No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		fmt.Println(historyLine(r))
	}
	return nil
}

func historyLine(r history.Run) string {
	line := fmt.Sprintf("%s  %s  %s  %d overdue · %d today · %d this week · %d total",
		ui.Muted.Render(r.ID[:8]),
		r.StartedAt.Local().Format("2006-01-02 15:04"),
		ui.KeyStyle.Render(r.Today.Format(calendar.DateLayout)),
		r.Summary.Overdue, r.Summary.Today, r.Summary.RestOfWeek, r.Summary.Total())
	if r.SkipCount > 0 {
		line += ui.Warning.Render(fmt.Sprintf("  %d skipped", r.SkipCount))
	}
	return line
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	hs := history.NewStore(db.Conn())
	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		if id, err = pickRunID(cmd, hs); err != nil || id == "" {
			return err
		}
	}

	r, err := hs.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	ui.Header("Run " + r.ID)
	fmt.Println()
	ui.Kv("Started", r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	ui.Kv("Today", calendar.FormatDay(r.Today))
	ui.Kv("Files", fmt.Sprint(r.Files))
	ui.Kv("Summary", r.Summary.String())
	ui.Kv("Output", r.OutputPath)
	if len(r.Skips) > 0 {
		fmt.Println()
		ui.Warn(fmt.Sprintf("%d record(s) skipped", len(r.Skips)))
		for _, s := range r.Skips {
			fmt.Println(ui.SkipLine(s.File, s.Reason))
		}
	}
	fmt.Println()
	return nil
}

func pickRunID(cmd *cobra.Command, hs *history.Store) (string, error) {
	if !tui.IsTTY() {
		return "", fmt.Errorf("run id required when not on a terminal")
	}
	runs, err := hs.List(cmd.Context(), 50)
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		ui.Inf("No runs recorded yet.")
		return "", nil
	}
	r, err := tui.PickRun(runs)
	if err != nil || r == nil {
		return "", err
	}
	return r.ID, nil
}
