package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/dkoosis/parsetest/pkg/mapper"
	"github.com/dkoosis/parsetest/pkg/testlog"
)

// Output formats.
const (
	FormatAuto     = "auto"
	FormatText     = "text"
	FormatTerminal = "terminal"
	FormatJSON     = "json"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatAuto, FormatText, FormatTerminal, FormatJSON}

var themes = []string{"default", "orca", "mono"}

// CliFlags holds the values of command-line flags and whether each was set
// explicitly by the user.
type CliFlags struct {
	PrintPassed  bool
	PrintSkipped bool
	PrintFailed  bool
	LongNames    bool
	Format       string
	Theme        string
	NoColor      bool
	Pager        bool
	LogLevel     string

	PrintPassedSet  bool
	PrintSkippedSet bool
	PrintFailedSet  bool
	LongNamesSet    bool
	FormatSet       bool
	ThemeSet        bool
	NoColorSet      bool
	PagerSet        bool
	LogLevelSet     bool
}

// Options is the resolved, immutable configuration for one invocation.
type Options struct {
	PrintPassed  bool
	PrintSkipped bool
	PrintFailed  bool
	LongNames    bool
	Format       string
	Theme        string
	NoColor      bool
	Pager        bool
	LogLevel     logrus.Level

	// Source records where each non-default value came from, for debugging.
	Source map[string]string
}

// ParseOptions returns the parser settings.
func (o Options) ParseOptions() testlog.ParseOptions {
	return testlog.ParseOptions{LongNames: o.LongNames}
}

// Lists returns which name lists the report should include.
func (o Options) Lists() mapper.Lists {
	return mapper.Lists{Passed: o.PrintPassed, Skipped: o.PrintSkipped, Failed: o.PrintFailed}
}

// Resolve merges flags, environment and file into Options, highest priority
// first: CLI > env > file > defaults.
func Resolve(cli CliFlags, file *FileConfig) (Options, error) {
	if file == nil {
		file = &FileConfig{}
	}
	r := resolver{source: make(map[string]string)}

	opts := Options{
		PrintPassed:  r.boolean("print_passed", cli.PrintPassed, cli.PrintPassedSet, nil, file.PrintPassed),
		PrintSkipped: r.boolean("print_skipped", cli.PrintSkipped, cli.PrintSkippedSet, nil, file.PrintSkipped),
		PrintFailed:  r.boolean("print_failed", cli.PrintFailed, cli.PrintFailedSet, nil, file.PrintFailed),
		LongNames:    r.boolean("long_names", cli.LongNames, cli.LongNamesSet, getEnvBool("PARSETEST_LONG_NAMES"), file.LongNames),
		NoColor:      r.boolean("no_color", cli.NoColor, cli.NoColorSet, envNoColor(), file.NoColor),
		Pager:        r.boolean("pager", cli.Pager, cli.PagerSet, nil, file.Pager),
		Format:       r.str("format", cli.Format, cli.FormatSet, "PARSETEST_FORMAT", file.Format, DefaultFormat),
		Theme:        r.str("theme", cli.Theme, cli.ThemeSet, "PARSETEST_THEME", file.Theme, DefaultTheme),
	}
	level := r.str("log_level", cli.LogLevel, cli.LogLevelSet, "PARSETEST_LOG_LEVEL", file.LogLevel, DefaultLogLevel)
	opts.Source = r.source

	if !slices.Contains(Formats, opts.Format) {
		return Options{}, fmt.Errorf("%w: unknown format %q (from %s; expected auto, text, terminal, json)",
			ErrInvalid, opts.Format, r.source["format"])
	}
	if !slices.Contains(themes, opts.Theme) {
		return Options{}, fmt.Errorf("%w: unknown theme %q (from %s; expected default, orca, mono)",
			ErrInvalid, opts.Theme, r.source["theme"])
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return Options{}, fmt.Errorf("%w: log level %q (from %s): %v", ErrInvalid, level, r.source["log_level"], err)
	}
	opts.LogLevel = lvl

	// No color means the mono theme regardless of the requested one.
	if opts.NoColor {
		opts.Theme = "mono"
	}
	return opts, nil
}

type resolver struct {
	source map[string]string
}

func (r resolver) boolean(key string, cli, cliSet bool, env, file *bool) bool {
	switch {
	case cliSet:
		r.source[key] = "cli"
		return cli
	case env != nil:
		r.source[key] = "env"
		return *env
	case file != nil:
		r.source[key] = "file"
		return *file
	default:
		r.source[key] = "default"
		return false
	}
}

func (r resolver) str(key, cli string, cliSet bool, envKey, file, def string) string {
	if cliSet {
		r.source[key] = "cli"
		return cli
	}
	if v := os.Getenv(envKey); v != "" {
		r.source[key] = "env"
		return v
	}
	if file != "" {
		r.source[key] = "file"
		return file
	}
	r.source[key] = "default"
	return def
}

// envNoColor honors PARSETEST_NO_COLOR as a boolean and NO_COLOR as presence.
func envNoColor() *bool {
	if b := getEnvBool("PARSETEST_NO_COLOR"); b != nil {
		return b
	}
	if os.Getenv("NO_COLOR") != "" {
		t := true
		return &t
	}
	return nil
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}
