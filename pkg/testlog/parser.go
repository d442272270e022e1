package testlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Markers and column offsets of the runner's console format. The offsets
// count characters from the start of the line and must match the log
// format exactly.
const (
	ClassMarker   = "Starting:    "
	PassedMarker  = "Passed   "
	SkippedMarker = "Skipped  "
	FailedMarker  = "Failed   "

	ClassColumn = 81
	NameColumn  = 36
)

const maxLineBytes = 16 * 1024 * 1024

// ParseOptions controls how test names are recorded.
type ParseOptions struct {
	// LongNames prefixes each test name with the current class.
	LongNames bool
}

// Stats counts what the parser saw in one log.
type Stats struct {
	Lines        int
	ClassMarkers int
	Results      int
	// Truncated counts marker lines too short to reach their name column.
	Truncated int
}

// ParseError reports a log that could not be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("reading log: %v", e.Err)
	}
	return fmt.Sprintf("reading log %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse classifies lines and returns the resulting mapping.
func Parse(lines []string, opts ParseOptions) OutcomeMapping {
	p := newParser(opts)
	for _, line := range lines {
		p.processLine(line)
	}
	return p.mapping()
}

// ParseStream reads r line by line and parses it. Input is decoded as UTF-8
// unless it starts with a UTF-16 or UTF-8 byte order mark. Unmatched lines are
// skipped; only read failures and cancellation return an error.
func ParseStream(ctx context.Context, r io.Reader, opts ParseOptions) (OutcomeMapping, Stats, error) {
	p := newParser(opts)
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)
	// Build logs can carry very long lines (stack traces, serialized output).
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return OutcomeMapping{}, p.stats, err
		}
		p.processLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return OutcomeMapping{}, p.stats, &ParseError{Err: err}
	}
	return p.mapping(), p.stats, nil
}

// ParseFile opens path, parses it and closes it again.
func ParseFile(ctx context.Context, path string, opts ParseOptions) (OutcomeMapping, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return OutcomeMapping{}, Stats{}, &ParseError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	m, stats, err := ParseStream(ctx, f, opts)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return OutcomeMapping{}, stats, pe
		}
		return OutcomeMapping{}, stats, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, stats, nil
}

type parser struct {
	opts    ParseOptions
	class   string
	results map[Outcome][]string
	stats   Stats
}

func newParser(opts ParseOptions) *parser {
	return &parser{
		opts:    opts,
		results: make(map[Outcome][]string),
	}
}

func (p *parser) processLine(line string) {
	p.stats.Lines++

	if strings.Contains(line, ClassMarker) {
		p.stats.ClassMarkers++
		class, ok := fromColumn(line, ClassColumn)
		if !ok {
			p.stats.Truncated++
		}
		p.class = class
	}

	outcome, ok := classify(line)
	if !ok {
		return
	}
	p.stats.Results++
	name, ok := fromColumn(line, NameColumn)
	if !ok {
		p.stats.Truncated++
	}
	rec := TestRecord{Class: p.class, Name: name}
	if p.opts.LongNames {
		p.results[outcome] = append(p.results[outcome], rec.LongName())
	} else {
		p.results[outcome] = append(p.results[outcome], rec.ShortName())
	}
}

func (p *parser) mapping() OutcomeMapping {
	return NewOutcomeMapping(p.results)
}

// classify matches at most one result marker, checked in a fixed order.
func classify(line string) (Outcome, bool) {
	switch {
	case strings.Contains(line, PassedMarker):
		return Passed, true
	case strings.Contains(line, SkippedMarker):
		return Skipped, true
	case strings.Contains(line, FailedMarker):
		return Failed, true
	default:
		return 0, false
	}
}

// fromColumn returns line from the col-th character on. ok is false when the
// line ends before col; the result is then empty.
func fromColumn(line string, col int) (string, bool) {
	i := 0
	for pos := range line {
		if i == col {
			return line[pos:], true
		}
		i++
	}
	return "", i == col
}
