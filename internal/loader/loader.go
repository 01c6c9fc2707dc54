// Package loader reads task definition files and feeds the resolved tasks
// into a todo.Data. Each task type lives in its own subdirectory of the
// todo directory and has its own Loader.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rnwolfe/dated/internal/calendar"
	"github.com/rnwolfe/dated/internal/logging"
	"github.com/rnwolfe/dated/internal/todo"
)

// ErrComplete is returned for a file with nothing left to do. It is logged
// at info level and not counted as a skip.
var ErrComplete = errors.New("nothing left to do")

// Loader turns the contents of one file into tasks.
type Loader interface {
	// Dir is the subdirectory this loader reads.
	Dir() string
	// Load decodes data and queues its tasks on b. Records that cannot be
	// used are returned in skips; a non-nil err means the whole file was
	// unusable.
	Load(file string, data []byte, b *todo.Batch) (skips []error, err error)
}

// Registry returns the loaders in the order they run.
func Registry() []Loader {
	return []Loader{
		MarkedDay{},
		Progressive{},
		Recurring{},
		Simple{},
	}
}

// Skip is a file or record that was left out, with why.
type Skip struct {
	File string
	Err  error
}

// Report summarizes a Run.
type Report struct {
	Files   int
	Tasks   int
	Ignored int
	Skipped []Skip
}

// Runner walks the todo directory with an ordered set of loaders.
type Runner struct {
	loaders []Loader
	ignore  []string
	log     zerolog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithIgnore skips files whose slash-separated path relative to the todo
// directory matches any of the doublestar patterns.
func WithIgnore(patterns ...string) Option {
	return func(r *Runner) { r.ignore = append(r.ignore, patterns...) }
}

// WithLoaders replaces the default registry.
func WithLoaders(loaders ...Loader) Option {
	return func(r *Runner) { r.loaders = loaders }
}

func New(log zerolog.Logger, opts ...Option) *Runner {
	r := &Runner{
		loaders: Registry(),
		log:     logging.Component(log, "loader"),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run loads every subdirectory of root into data, one subdirectory at a
// time. Bad files and records are logged and skipped. The returned error is
// non-nil only when root cannot be read, ctx is cancelled, or date
// arithmetic leaves the supported range.
func (r *Runner) Run(ctx context.Context, root string, data *todo.Data) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("todo dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("todo dir %s is not a directory", root)
	}

	report := &Report{}
	for _, l := range r.loaders {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := r.loadDir(ctx, root, l, data, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (r *Runner) loadDir(ctx context.Context, root string, l Loader, data *todo.Data, report *Report) error {
	dir := filepath.Join(root, l.Dir())
	log := r.log.With().Str("type", l.Dir()).Logger()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Ctx(ctx).Str("dir", dir).Msg("task directory missing")
		} else {
			log.Warn().Ctx(ctx).Err(err).Str("dir", dir).Msg("task directory unreadable")
		}
		return nil
	}

	batch := data.NewBatch()
	for _, e := range entries {
		rel := path.Join(l.Dir(), e.Name())
		if e.IsDir() {
			log.Warn().Ctx(ctx).Str("file", rel).Msg("directory inside task directory")
			continue
		}
		if !isTaskFile(e.Name()) {
			log.Debug().Ctx(ctx).Str("file", rel).Msg("not a task file")
			continue
		}
		if r.ignored(rel) {
			log.Debug().Ctx(ctx).Str("file", rel).Msg("ignored")
			report.Ignored++
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			r.skip(ctx, report, rel, err)
			continue
		}
		report.Files++

		skips, err := l.Load(e.Name(), raw, batch)
		for _, s := range skips {
			if errors.Is(s, calendar.ErrOutOfRange) {
				return fmt.Errorf("%s: %w", rel, s)
			}
			r.skip(ctx, report, rel, s)
		}
		switch {
		case err == nil:
		case errors.Is(err, ErrComplete):
			log.Info().Ctx(ctx).Str("file", rel).Msg("all steps done")
		case errors.Is(err, calendar.ErrOutOfRange):
			return fmt.Errorf("%s: %w", rel, err)
		default:
			r.skip(ctx, report, rel, err)
		}
	}

	queued := batch.Len()
	counts := data.Merge(batch)
	report.Tasks += queued
	log.Debug().Ctx(ctx).
		Int("tasks", queued).
		Int("hidden", counts[todo.BucketHidden]).
		Msg("merged")
	return nil
}

func (r *Runner) skip(ctx context.Context, report *Report, file string, err error) {
	r.log.Error().Ctx(ctx).Err(err).Str("file", file).Msg("skipped")
	report.Skipped = append(report.Skipped, Skip{File: file, Err: err})
}

func (r *Runner) ignored(rel string) bool {
	for _, p := range r.ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func isTaskFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// decode reads JSON or YAML depending on the file extension.
func decode(file string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing json: %w", err)
		}
	}
	return nil
}

// parseDate wraps calendar.Parse so callers can match todo.ErrInvalidDate.
func parseDate(field, s string) (time.Time, error) {
	d, err := calendar.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", todo.ErrInvalidDate, field, err)
	}
	return d, nil
}
