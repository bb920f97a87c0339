package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Set with -ldflags "-X main.BuildTag=... -X main.BuildCommit=..."
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func (e *env) versionAction(c *cli.Context) error {
	_, err := fmt.Fprintf(e.ui.Out, "tei2conllu version %s (commit: %s)\n", BuildTag, BuildCommit)
	return err
}
