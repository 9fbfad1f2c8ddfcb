package format

import (
	"log/slog"

	"github.com/Urethramancer/fmt68/source"
)

// Formatter runs the classify, normalize, collapse and align stages over a file.
// It is immutable once built and may be shared between goroutines.
type Formatter struct {
	cfg    Config
	prefix rune
	log    *slog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLogger sets the logger used for diagnostics. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(f *Formatter) {
		if l != nil {
			f.log = l
		}
	}
}

// New creates a Formatter for the given configuration.
func New(cfg Config, opts ...Option) (*Formatter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Formatter{
		cfg:    cfg,
		prefix: rune(cfg.CommentPrefix[0]),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Config returns the configuration the formatter was built with.
func (f *Formatter) Config() Config {
	return f.cfg
}

// Lines formats the lines of one file and returns the output lines.
func (f *Formatter) Lines(raw []string) []string {
	lines := source.ClassifyAll(raw)
	for i, l := range lines {
		if u, ok := l.(*source.Unknown); ok {
			f.log.Debug("line not recognised, passing through", "line", i+1, "text", u.Text)
		}
		f.Normalize(l)
	}

	lines = f.Collapse(lines)

	ts := Measure(lines, f.cfg.TabWidth)
	f.log.Debug("tabstops",
		"instruction", ts.Instruction,
		"arg", ts.Arg,
		"comment", ts.Comment,
		"source_columns", ts.SourceColumns,
	)

	r := renderer{ts: ts, log: f.log}
	return r.render(lines)
}
