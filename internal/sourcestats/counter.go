package sourcestats

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"readmegen/internal/errors"
	"readmegen/internal/slogutil"
)

// LineCount is the result of counting one file.
type LineCount struct {
	Total int `json:"total"`
	Sloc  int `json:"sloc"`
}

// SourceCounter counts a whole file at once. It is consulted before the
// per-line classifier for the extensions it supports.
type SourceCounter interface {
	Supports(ext string) bool
	CountSource(ext string, src []byte) (LineCount, error)
}

// Skip records a path that was not counted.
type Skip struct {
	Path  string           `json:"path"`
	Error *errors.GenError `json:"error"`
}

// Counter owns a Table and fills it from files and streams.
// It is not safe for concurrent use.
type Counter struct {
	registry *Registry
	table    *Table
	source   SourceCounter
	logger   *slog.Logger
	skipped  []Skip
	seenDirs map[string]bool
}

// Option configures a Counter.
type Option func(*Counter)

// WithLogger sets the logger used for per-file debug output and skip warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Counter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSourceCounter routes supported extensions through sc instead of the
// line classifier.
func WithSourceCounter(sc SourceCounter) Option {
	return func(c *Counter) {
		c.source = sc
	}
}

// NewCounter creates a counter with a fresh table keyed by reg's extensions.
func NewCounter(reg *Registry, opts ...Option) *Counter {
	if reg == nil {
		reg = DefaultRegistry()
	}
	c := &Counter{
		registry: reg,
		table:    NewTable(reg.Extensions()...),
		logger:   slogutil.NewDiscardLogger(),
		seenDirs: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the table being filled.
func (c *Counter) Table() *Table {
	return c.table
}

// Skipped returns every path recorded as not counted so far.
func (c *Counter) Skipped() []Skip {
	return c.skipped
}

// CountLines reads r line by line and classifies each line with cls.
// Only newline-terminated lines can be significant; an unterminated final
// line adds to Total alone.
func CountLines(cls Classifier, r io.Reader) (LineCount, error) {
	var lc LineCount
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lc.Total++
			if body, ok := strings.CutSuffix(line, "\n"); ok && cls.Significant(body) {
				lc.Sloc++
			}
		}
		if err == io.EOF {
			return lc, nil
		}
		if err != nil {
			return lc, err
		}
	}
}

// CountReader counts r as a file with extension ext and adds the result to
// the table. Unrecognized extensions and extensions without a classifier
// are ignored. On a read error the table is left untouched.
func (c *Counter) CountReader(ext string, r io.Reader) (LineCount, error) {
	cls, ok := c.registry.Lookup(ext)
	if !ok || cls == nil {
		return LineCount{}, nil
	}

	var (
		lc  LineCount
		err error
	)
	if c.source != nil && c.source.Supports(ext) {
		var src []byte
		src, err = io.ReadAll(r)
		if err == nil {
			lc, err = c.source.CountSource(ext, src)
		}
	} else {
		lc, err = CountLines(cls, r)
	}
	if err != nil {
		return LineCount{}, err
	}

	c.table.add(ext, lc)
	return lc, nil
}

// CountFile counts a single file. A file that cannot be opened or read is
// recorded as skipped and the returned error describes why.
func (c *Counter) CountFile(path string) error {
	ext := filepath.Ext(path)
	if cls, ok := c.registry.Lookup(ext); !ok || cls == nil {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return c.skip(path, errors.UnreadableFile, "cannot open file", err)
	}
	defer func() { _ = f.Close() }()

	lc, err := c.CountReader(ext, f)
	if err != nil {
		return c.skip(path, errors.UnreadableFile, "cannot read file", err)
	}

	c.logger.Debug("Counted file", "path", path, "total", lc.Total, "sloc", lc.Sloc)
	return nil
}

func (c *Counter) skip(path string, code errors.ErrorCode, message string, cause error) error {
	ge := errors.NewGenError(code, message, cause, errors.GetSuggestedFixes(code))
	c.skipped = append(c.skipped, Skip{Path: path, Error: ge})
	c.logger.Warn("Skipped path", "path", path, "code", string(code), "error", ge.Error())
	return ge
}
