package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/tei2conllu/file"
	"github.com/revelaction/tei2conllu/render"
	"github.com/revelaction/tei2conllu/stat"
)

func (e *env) statAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errNoInput
	}

	inputs, err := file.Inputs(c.Args().Slice(), readExts(merge(c, e.cfg))...)
	if err != nil {
		return err
	}

	r := render.NewRenderer()
	r.W = e.ui.Out

	total := stat.NewHandler()
	for _, path := range inputs {
		doc, err := e.loadDoc(c, path)
		if err != nil {
			return err
		}

		hdl := stat.NewHandler()
		hdl.Aggregate(doc)
		total.Aggregate(doc)

		r.Stats(path, hdl.Get())
	}

	if len(inputs) > 1 {
		r.Stats("total", total.Get())
	}

	return nil
}
