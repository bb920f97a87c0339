package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/tei2conllu/config"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// env is the state shared by the commands, set up before any of them runs.
type env struct {
	ui     UI
	cfg    config.Config
	logger *slog.Logger

	// verbosity counts the -v flags
	verbosity int
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	prefix := color.New(color.FgRed).Sprint("tei2conllu:")
	_, _ = fmt.Fprintf(w, "%s %v\n", prefix, err)
}

func newApp(ui UI) *cli.App {
	e := &env{ui: ui}

	app := &cli.App{
		Name:                   "tei2conllu",
		Usage:                  "convert TEI-XML corpora to CoNLL-U",
		UsageText:              "tei2conllu [global options] [command] XML...",
		Version:                BuildTag,
		Writer:                 ui.Out,
		ErrWriter:              ui.Err,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		HideVersion:            true,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "TOML configuration file (default: user config dir/tei2conllu/config.toml)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbosity level; multiple times increases the level, the maximum is 2",
				Count:   &e.verbosity,
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "logging format: text or json",
			},
		}, convertFlags()...),
		Before: e.setup,
		Action: e.convertAction,
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "convert TEI-XML files to CoNLL-U (the default command)",
				ArgsUsage: "XML...",
				Flags:     convertFlags(),
				Action:    e.convertAction,
			},
			{
				Name:      "stat",
				Usage:     "print statistics of TEI-XML or CoNLL-U files",
				ArgsUsage: "FILE...",
				Flags:     []cli.Flag{namespaceFlag(), nfcFlag()},
				Action:    e.statAction,
			},
			{
				Name:      "inspect",
				Usage:     "browse the sentences of a TEI-XML or CoNLL-U file interactively",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{namespaceFlag(), nfcFlag(), dbFlag()},
				Action:    e.inspectAction,
			},
			{
				Name:      "import",
				Usage:     "store TEI-XML or CoNLL-U files in the SQLite sentence index",
				ArgsUsage: "FILE...",
				Flags:     []cli.Flag{namespaceFlag(), nfcFlag(), dbFlag(), progressFlag()},
				Action:    e.importAction,
			},
			{
				Name:   "bash",
				Usage:  "print the bash completion script",
				Action: e.bashAction,
			},
			{
				Name:   "version",
				Usage:  "print the version",
				Action: e.versionAction,
			},
		},
	}

	return app
}

// setup loads the configuration file and applies the global flags on top.
func (e *env) setup(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			path = ""
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	if c.IsSet("verbose") {
		cfg.Verbose = min(e.verbosity, 2)
	}

	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	e.cfg = cfg
	// stdout may carry CoNLL-U, so logs never go there
	e.logger = newLogger(e.ui.Err, cfg.Verbose, cfg.LogFormat)
	return nil
}

func newLogger(w io.Writer, verbose int, format string) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose == 1:
		level = slog.LevelInfo
	case verbose >= 2:
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

var errNoInput = errors.New("no input files given")
