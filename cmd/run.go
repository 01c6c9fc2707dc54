package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/rnwolfe/dated/internal/calendar"
	"github.com/rnwolfe/dated/internal/config"
	"github.com/rnwolfe/dated/internal/history"
	"github.com/rnwolfe/dated/internal/loader"
	"github.com/rnwolfe/dated/internal/logging"
	"github.com/rnwolfe/dated/internal/output"
	"github.com/rnwolfe/dated/internal/render"
	"github.com/rnwolfe/dated/internal/store"
	"github.com/rnwolfe/dated/internal/todo"
	"github.com/rnwolfe/dated/internal/tui"
	"github.com/rnwolfe/dated/internal/ui"
)

// historyKeep is how many runs are kept in the history database.
const historyKeep = 500

type runOptions struct {
	// date overrides today, as YYYY-MM-DD.
	date string
	// now defaults to time.Now.
	now func() time.Time
	// db records the run; nil opens the default database.
	db *store.DB
}

type runResult struct {
	run      history.Run
	data     *todo.Data
	report   *loader.Report
	document string
	today    string
	written  string
}

// generate loads every task file, writes the agenda and records the run.
func generate(ctx context.Context, log zerolog.Logger, cfg *config.Config, opts runOptions) (*runResult, error) {
	now := time.Now
	if opts.now != nil {
		now = opts.now
	}

	run := history.NewRun(now())
	if opts.date != "" {
		d, err := calendar.Parse(opts.date)
		if err != nil {
			return nil, fmt.Errorf("--date: %w", err)
		}
		run.Today = d
	}
	ctx = logging.WithRunID(ctx, run.ID)
	log.Debug().Ctx(ctx).Str("today", run.Today.Format(calendar.DateLayout)).Msg("starting run")

	data := todo.NewData(run.Today)
	report, err := loader.New(log, loader.WithIgnore(cfg.Loader.Ignore...)).Run(ctx, cfg.TodoDir(), data)
	if err != nil {
		return nil, err
	}

	res := &runResult{
		data:     data,
		report:   report,
		document: render.Document(data),
		today:    render.TodayList(data),
	}

	w, err := output.New(cfg.OutputPath(), cfg.Output.Recipients)
	if err != nil {
		return nil, err
	}
	if err := w.Write(res.document); err != nil {
		return nil, err
	}
	res.written = w.Path()
	log.Info().Ctx(ctx).Str("path", w.Path()).Bool("encrypted", w.Encrypted()).Msg("wrote agenda")

	run.Summary = data.Summary()
	run.Files = report.Files
	run.OutputPath = w.Path()
	for _, s := range report.Skipped {
		run.Skips = append(run.Skips, history.Skip{File: s.File, Reason: s.Err.Error()})
	}
	res.run = run

	if err := recordRun(ctx, log, opts.db, run); err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("could not record run history")
	}
	return res, nil
}

func recordRun(ctx context.Context, log zerolog.Logger, db *store.DB, run history.Run) error {
	if db == nil {
		var err error
		if db, err = store.Open(); err != nil {
			return err
		}
		defer db.Close()
	}

	hs := history.NewStore(db.Conn())
	if err := hs.Record(ctx, run); err != nil {
		return err
	}
	pruned, err := hs.Prune(ctx, historyKeep)
	if err != nil {
		return err
	}
	if pruned > 0 {
		log.Debug().Ctx(ctx).Int("pruned", pruned).Msg("pruned run history")
	}
	return nil
}

func printResult(res *runResult) {
	s := res.run.Summary
	fmt.Println(ui.Title.Render(ui.IconDated + "dated"))
	fmt.Println()
	ui.Kv("Today", calendar.FormatDayShort(res.run.Today))
	ui.Kv("Overdue", ui.Alarm(s.Overdue, ui.IconOverdue))
	ui.Kv("Due today", fmt.Sprint(s.Today))
	ui.Kv("This week", fmt.Sprint(s.RestOfWeek))
	ui.Kv("Dated", fmt.Sprint(s.Dated))
	ui.Kv("Later", fmt.Sprint(s.Later))
	ui.Kv("Inactive", fmt.Sprint(s.Inactive))
	fmt.Println()
	ui.Kv("Written", res.written)

	if n := len(res.report.Skipped); n > 0 {
		fmt.Println()
		ui.Warn(fmt.Sprintf("%d record(s) skipped", n))
		for _, sk := range res.report.Skipped {
			fmt.Println(ui.SkipLine(sk.File, sk.Err.Error()))
		}
		ui.Tip("`dated history show " + res.run.ID[:8] + "` lists them again later.")
	}
}

func printMarkdown(md string) error {
	w := ui.NewMarkdownWriter(os.Stdout, flags.raw || !ui.ColorEnabled())
	if _, err := fmt.Fprint(w, md); err != nil {
		return err
	}
	return w.Flush()
}

func runTUI(res *runResult) error {
	return tui.RunDated(res.data)
}
