package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/grimdork/climate/arg"

	"github.com/Urethramancer/fmt68/driver"
	"github.com/Urethramancer/fmt68/format"
)

const (
	optWrite   = "write"
	optList    = "list"
	optTab     = "tabwidth"
	optPrefix  = "prefix"
	optColon   = "colon"
	optNoColon = "no-colon"
	optConfig  = "config"
	optJobs    = "jobs"
	optColor   = "color"
	optVerbose = "verbose"
	optVersion = "version"
	posFiles   = "FILE"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opt := arg.New("fmt68")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "w", optWrite, "Write the result back to the source files.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "l", optList, "List files whose formatting differs and exit with status 1.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "t", optTab, "Tab width the columns snap to.", 0, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "p", optPrefix, "Rewrite every comment prefix to this character (; or *).", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "c", optColon, "Put a colon after standalone labels.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "", optNoColon, "Remove the colon after standalone labels.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "C", optConfig, "Configuration file. Defaults to the nearest "+driver.ConfigName+".", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "j", optJobs, "Number of files formatted at once.", 0, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "", optColor, "Colorize output (auto, on or off).", "auto", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "v", optVerbose, "Log diagnostics to standard error.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "V", optVersion, "Show version and exit.", false, false, arg.VarBool, nil)
	opt.SetPositional(posFiles, "Source files or directories. Standard input is used when none are given.", []string{}, false, arg.VarStringSlice)

	err := opt.Parse(args)
	if err != nil && !errors.Is(err, arg.ErrNoArgs) {
		fmt.Fprintf(os.Stderr, "fmt68: %v\n", err)
		return 2
	}
	if opt.GetBool("help") {
		opt.PrintHelp()
		return 0
	}
	if opt.GetBool(optVersion) {
		fmt.Println(versionString())
		return 0
	}

	if err := setupColor(opt.GetString(optColor)); err != nil {
		printError("", err)
		return 2
	}

	level := slog.LevelWarn
	if opt.GetBool(optVerbose) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	files := opt.GetPosStringSlice(posFiles)
	cfg, err := loadConfig(opt.GetString(optConfig), files, logger)
	if err != nil {
		printError("", err)
		return 2
	}
	cfg, err = applyFlags(cfg, opt)
	if err != nil {
		printError("", err)
		return 2
	}

	f, err := format.New(cfg, format.WithLogger(logger))
	if err != nil {
		printError("", err)
		return 2
	}

	if len(files) == 0 {
		return formatStdin(f, opt.GetBool(optList))
	}

	if opt.GetBool(optWrite) && opt.GetBool(optList) {
		printError("", errors.New("--write cannot be used with --list"))
		return 2
	}

	results, err := driver.FormatPaths(context.Background(), files, driver.Options{
		Formatter: f,
		Check:     opt.GetBool(optList),
		Stdout:    !opt.GetBool(optWrite) && !opt.GetBool(optList),
		Jobs:      opt.GetInt(optJobs),
	})
	if err != nil {
		printError("", err)
		return 1
	}
	return report(results, opt.GetBool(optList), opt.GetBool(optWrite))
}

// loadConfig reads the explicit configuration file, or looks for one next to
// the first input (or the working directory when reading standard input).
func loadConfig(path string, files []string, logger *slog.Logger) (format.Config, error) {
	if path != "" {
		return driver.LoadConfig(path)
	}

	start := "."
	if len(files) > 0 {
		start = files[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	cfg, found, err := driver.DiscoverConfig(start)
	if err != nil {
		return format.Config{}, err
	}
	if found != "" {
		logger.Debug("using configuration", "path", found)
	}
	return cfg, nil
}

// applyFlags lets command-line options override the configuration file.
func applyFlags(cfg format.Config, opt *arg.Options) (format.Config, error) {
	if tw := opt.GetInt(optTab); tw != 0 {
		cfg.TabWidth = tw
	}
	if p := opt.GetString(optPrefix); p != "" {
		cfg.RewriteCommentPrefix = true
		cfg.CommentPrefix = p
	}

	colon, noColon := opt.GetBool(optColon), opt.GetBool(optNoColon)
	switch {
	case colon && noColon:
		return cfg, errors.New("--colon cannot be used with --no-colon")
	case colon:
		cfg.LabelColon = true
	case noColon:
		cfg.LabelColon = false
	}

	return cfg, cfg.Validate()
}

func formatStdin(f *format.Formatter, list bool) int {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		printError("<stdin>", err)
		return 1
	}
	formatted, changed, err := driver.FormatSource(f, src)
	if err != nil {
		printError("<stdin>", err)
		return 1
	}
	if list {
		if changed {
			fmt.Println("<stdin>")
			return 1
		}
		return 0
	}
	if _, err := os.Stdout.Write(formatted); err != nil {
		printError("<stdin>", err)
		return 1
	}
	return 0
}
