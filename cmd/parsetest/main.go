// parsetest summarizes test results in plain-text build logs and compares two runs.
//
// Usage:
//
//	parsetest [-p] [-s] [-f] [-l] <log>
//	parsetest [-p] [-s] [-f] [-l] <baseline-log> <current-log>
//
// With one log, the passed/skipped/failed counts are printed. With two logs,
// both sets of counts are printed followed by every test whose outcome
// changed between the runs:
//
//	PASSED   => FAILED   Suite.Regressed
//	NEW      => PASSED   Suite.Added
//	FAILED   => DELETED  Suite.Removed
//
// Output modes:
//
//	text      plain, stable layout (default when piped)
//	terminal  styled via lipgloss (default when TTY)
//	json      structured JSON for automation
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/parsetest/internal/config"
	"github.com/dkoosis/parsetest/internal/detect"
	"github.com/dkoosis/parsetest/internal/pager"
	"github.com/dkoosis/parsetest/internal/version"
	"github.com/dkoosis/parsetest/pkg/mapper"
	"github.com/dkoosis/parsetest/pkg/pattern"
	"github.com/dkoosis/parsetest/pkg/render"
	"github.com/dkoosis/parsetest/pkg/testdiff"
	"github.com/dkoosis/parsetest/pkg/testlog"
)

// Exit codes.
const (
	exitOK    = 0
	exitFile  = 1 // a log could not be read
	exitUsage = 2 // bad flags, arguments or configuration
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	a := &app{stdin: stdin, stdout: stdout, log: log}
	cmd := a.command()
	cmd.SetArgs(args)

	if len(args) == 0 {
		printHelp(stdout, cmd)
		return exitOK
	}

	err := cmd.ExecuteContext(ctx)
	return a.report(err, cmd)
}

// app carries the streams and logger shared by the command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	log    *logrus.Logger

	flags       config.CliFlags
	cfgPath     string
	printSchema bool
}

// usageError is a problem with how parsetest was invoked.
type usageError struct {
	msg      string
	showHelp bool
}

func (e *usageError) Error() string { return e.msg }

// openError names the logs that could not be read.
type openError struct {
	paths []string
	err   error
}

func (e *openError) Error() string { return e.err.Error() }
func (e *openError) Unwrap() error { return e.err }

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "parsetest [-p] [-s] [-f] [-l] <logA> [<logB>]",
		Short:         "Summarize and diff test results in build logs",
		Version:       version.String(),
		Args:          a.checkArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, args)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stdout)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) { printHelp(c.OutOrStdout(), c) })
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	f := cmd.Flags()
	f.SortFlags = false
	f.BoolVarP(&a.flags.PrintPassed, "passed", "p", false, "print the names of the passing tests")
	f.BoolVarP(&a.flags.PrintSkipped, "skipped", "s", false, "print the names of the skipped tests")
	f.BoolVarP(&a.flags.PrintFailed, "failed", "f", false, "print the names of the failed tests")
	f.BoolVarP(&a.flags.LongNames, "long", "l", false, "print the namespace of the tests")
	f.StringVar(&a.flags.Format, "format", config.FormatAuto, "output format: "+strings.Join(config.Formats, ", "))
	f.StringVar(&a.flags.Theme, "theme", config.DefaultTheme, "terminal theme: "+strings.Join(render.ThemeNames(), ", "))
	f.BoolVar(&a.flags.NoColor, "no-color", false, "disable colors")
	f.BoolVar(&a.flags.Pager, "pager", false, "scroll the report in an interactive view (TTY only)")
	f.StringVar(&a.flags.LogLevel, "log-level", config.DefaultLogLevel, "log level ("+strings.Join(logLevels(), ", ")+")")
	f.StringVar(&a.cfgPath, "config", "", "config file path")
	f.BoolVar(&a.printSchema, "json-schema", false, "print the JSON Schema of --format json output and exit")
	return cmd
}

func (a *app) checkArgs(_ *cobra.Command, args []string) error {
	if a.printSchema {
		return nil
	}
	if len(args) == 0 || len(args) > 2 {
		return &usageError{msg: "Invalid number of arguments.", showHelp: true}
	}
	return nil
}

func (a *app) execute(cmd *cobra.Command, args []string) error {
	if a.printSchema {
		_, err := a.stdout.Write(render.ReportSchema)
		return err
	}

	opts, err := a.options(cmd)
	if err != nil {
		return err
	}
	a.log.SetLevel(opts.LogLevel)
	a.log.WithFields(logrus.Fields{
		"format": opts.Format + " (" + opts.Source["format"] + ")",
		"theme":  opts.Theme,
		"long":   opts.LongNames,
	}).Debug("resolved options")

	ctx := cmd.Context()
	var patterns []pattern.Pattern
	title := args[0]

	switch len(args) {
	case 1:
		results, stats, err := testlog.ParseFile(ctx, args[0], opts.ParseOptions())
		if err != nil {
			return &openError{paths: args, err: err}
		}
		a.logStats(args[0], stats)
		patterns = mapper.FromResults(args[0], results, opts.Lists())
	default:
		cmp, err := testdiff.DiffFiles(ctx, args[0], args[1], opts.ParseOptions())
		if err != nil {
			return &openError{paths: args, err: err}
		}
		a.logStats(args[0], cmp.Baseline.Stats)
		a.logStats(args[1], cmp.Current.Stats)
		a.log.WithFields(logrus.Fields{
			"changed":     cmp.Diff.Changed(),
			"tests":       cmp.Diff.Len(),
			"transitions": len(cmp.Diff.Transitions()),
		}).Debug("diffed logs")
		patterns = mapper.FromComparison(cmp, opts.Lists())
		title = args[0] + " → " + args[1]
	}

	format := resolveFormat(opts.Format, a.stdout)
	output := selectRenderer(format, opts.Theme, a.stdout).Render(patterns)
	if format == config.FormatJSON && a.log.IsLevelEnabled(logrus.DebugLevel) {
		if err := render.ValidateJSON([]byte(output)); err != nil {
			a.log.WithError(err).Warn("JSON report does not match its schema")
		}
	}

	if opts.Pager && format != config.FormatJSON && isTTYWriter(a.stdout) {
		return pager.Run(ctx, title, output, a.stdin, a.stdout)
	}
	_, err = fmt.Fprint(a.stdout, output)
	return err
}

func (a *app) options(cmd *cobra.Command) (config.Options, error) {
	flags := cmd.Flags()
	cli := a.flags
	cli.PrintPassedSet = flags.Changed("passed")
	cli.PrintSkippedSet = flags.Changed("skipped")
	cli.PrintFailedSet = flags.Changed("failed")
	cli.LongNamesSet = flags.Changed("long")
	cli.FormatSet = flags.Changed("format")
	cli.ThemeSet = flags.Changed("theme")
	cli.NoColorSet = flags.Changed("no-color")
	cli.PagerSet = flags.Changed("pager")
	cli.LogLevelSet = flags.Changed("log-level")

	file, path, err := config.Load(a.cfgPath)
	if err != nil {
		return config.Options{}, &usageError{msg: err.Error()}
	}
	if path != "" {
		a.log.WithField("path", path).Debug("loaded config file")
	}

	opts, err := config.Resolve(cli, file)
	if err != nil {
		return config.Options{}, &usageError{msg: err.Error()}
	}
	return opts, nil
}

func (a *app) logStats(path string, s testlog.Stats) {
	entry := a.log.WithFields(logrus.Fields{
		"path":          path,
		"lines":         s.Lines,
		"class_markers": s.ClassMarkers,
		"results":       s.Results,
		"truncated":     s.Truncated,
	})
	entry.Debug("parsed log")
	if s.Truncated > 0 {
		entry.Warn("result lines too short to hold a test name")
	}
	if s.Results > 0 || s.Lines == 0 {
		return
	}
	// A log without results may be a different kind of test output.
	if format, err := detect.SniffFile(path); err == nil && format != detect.ConsoleLog && format != detect.Unknown {
		entry.WithField("detected", format.String()).Warn("no test results found; input is not a console log")
	}
}

// report prints err for the user and maps it to an exit code.
func (a *app) report(err error, cmd *cobra.Command) int {
	if err == nil {
		return exitOK
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		if uerr.showHelp {
			fmt.Fprintln(a.stdout, uerr.msg)
			printHelp(a.stdout, cmd)
		} else {
			fmt.Fprintf(a.stdout, "parsetest: %s\n", uerr.msg)
			fmt.Fprintln(a.stdout, "Try `parsetest --help` for more information.")
		}
		return exitUsage
	}

	var oerr *openError
	if errors.As(err, &oerr) {
		if len(oerr.paths) == 1 {
			fmt.Fprintf(a.stdout, "Error opening file: %s\n", oerr.paths[0])
		} else {
			fmt.Fprintf(a.stdout, "Error opening files: %s\n", strings.Join(oerr.paths, ", "))
		}
		fmt.Fprintln(a.stdout, oerr.err)
		a.log.WithError(oerr.err).Debug("failed to read logs")
		return exitFile
	}

	if errors.Is(err, context.Canceled) {
		return exitFile
	}
	fmt.Fprintf(a.stdout, "parsetest: %v\n", err)
	return exitFile
}

func printHelp(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintln(w, "Usage: parsetest [-h|--help] [-p] [-s] [-f] [-l] <logA> [<logB>]")
	fmt.Fprintln(w, "Parses build logs and prints the test counts.")
	fmt.Fprintln(w, "If one log is specified, the counts of passed, skipped, and failed tests are printed.")
	fmt.Fprintln(w, "If two logs are specified, the test differences are also printed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, cmd.Flags().FlagUsages())
}

func logLevels() []string {
	levels := make([]string, 0, len(logrus.AllLevels))
	for _, level := range logrus.AllLevels {
		levels = append(levels, level.String())
	}
	return levels
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}

func resolveFormat(format string, w io.Writer) string {
	if format != config.FormatAuto {
		return format
	}
	// Auto-detect: TTY = terminal, piped = text
	if isTTYWriter(w) {
		return config.FormatTerminal
	}
	return config.FormatText
}

func selectRenderer(format, themeName string, w io.Writer) render.Renderer {
	switch format {
	case config.FormatJSON:
		return render.NewJSON()
	case config.FormatTerminal:
		return render.NewTerminal(render.ThemeByName(themeName), termWidth(w))
	default:
		return render.NewText()
	}
}
