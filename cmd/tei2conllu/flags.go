package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/tei2conllu/config"
)

func namespaceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "namespace",
		Usage: "XML namespace of the w and pc elements; empty for none (default: the TEI namespace)",
	}
}

func nfcFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "nfc",
		Usage: "normalize forms, lemmas and MISC values to Unicode NFC",
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "SQLite sentence index file",
	}
}

func progressFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "progress",
		Usage: "show a progress bar for several files (default: true)",
	}
}

func convertFlags() []cli.Flag {
	return []cli.Flag{
		namespaceFlag(),
		nfcFlag(),
		dbFlag(),
		progressFlag(),
		&cli.StringFlag{
			Name:  "ext",
			Usage: "extension of the output files (default: .conllu)",
		},
		&cli.BoolFlag{
			Name:  "stdout",
			Usage: "write CoNLL-U to standard output instead of files",
		},
	}
}

// lookup returns the nearest context of the lineage where the flag name was
// set. The convert flags exist both globally and on the convert command; a
// command flag wins over the global one.
func lookup(c *cli.Context, name string) (*cli.Context, bool) {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx, true
		}
	}
	return nil, false
}

func stringFlag(c *cli.Context, name string) (string, bool) {
	ctx, ok := lookup(c, name)
	if !ok {
		return "", false
	}
	return ctx.String(name), true
}

func boolFlag(c *cli.Context, name string) (bool, bool) {
	ctx, ok := lookup(c, name)
	if !ok {
		return false, false
	}
	return ctx.Bool(name), true
}

// stdout reports whether CoNLL-U goes to standard output.
func stdout(c *cli.Context) bool {
	v, _ := boolFlag(c, "stdout")
	return v
}

// merge applies the command line flags over the configuration.
func merge(c *cli.Context, cfg config.Config) config.Config {
	if ns, ok := stringFlag(c, "namespace"); ok {
		cfg.Namespace = &ns
	}

	if nfc, ok := boolFlag(c, "nfc"); ok {
		cfg.NFC = nfc
	}

	if db, ok := stringFlag(c, "db"); ok {
		cfg.DB = db
	}

	if progress, ok := boolFlag(c, "progress"); ok {
		cfg.Progress = &progress
	}

	if ext, ok := stringFlag(c, "ext"); ok {
		cfg.Extension = ext
	}

	return cfg
}
