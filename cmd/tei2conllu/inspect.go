package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/tei2conllu/query"
	"github.com/revelaction/tei2conllu/render"
)

func (e *env) inspectAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("inspect takes exactly one file")
	}

	doc, err := e.loadDoc(c, c.Args().First())
	if err != nil {
		return err
	}

	r := render.NewRenderer()
	r.W = e.ui.Out

	h := query.NewHandler(doc, r)

	cfg := merge(c, e.cfg)
	if cfg.DB != "" {
		db, closeDB, err := openIndex(cfg.DB)
		if err != nil {
			return err
		}
		defer closeDB()

		h.Finder = db
	}

	return h.Run()
}
