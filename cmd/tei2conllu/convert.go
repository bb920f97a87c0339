package main

import (
	"fmt"
	"path/filepath"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/tei2conllu/config"
	"github.com/revelaction/tei2conllu/convert"
	"github.com/revelaction/tei2conllu/file"
	"github.com/revelaction/tei2conllu/storage"
	"github.com/revelaction/tei2conllu/storage/filesystem"
)

func (e *env) converter(cfg config.Config) *convert.Converter {
	return convert.New(
		convert.WithNamespace(cfg.NamespaceURI()),
		convert.WithNormalize(cfg.NFC),
		convert.WithLogger(e.logger),
	)
}

func (e *env) convertAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errNoInput
	}

	cfg := merge(c, e.cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputs, err := file.Inputs(c.Args().Slice())
	if err != nil {
		return err
	}

	toStdout := stdout(c)

	var w storage.DocWriter = filesystem.NewDocStore(cfg.Extension)
	if toStdout {
		w = filesystem.NewStreamStore(e.ui.Out)
	}

	if cfg.DB != "" {
		db, closeDB, err := openIndex(cfg.DB)
		if err != nil {
			return err
		}
		defer closeDB()
		w = storage.MultiWriter(w, db)
	}

	var bar *uiprogress.Bar
	showProgress := cfg.ShowProgress() && cfg.Verbose == 0 && !toStdout && len(inputs) > 1
	if showProgress {
		uiprogress.Start() // start rendering
		defer uiprogress.Stop()

		bar = uiprogress.AddBar(len(inputs))
		bar.AppendCompleted()
		bar.PrependElapsed()
		// Append the file name to the progress bar
		bar.AppendFunc(func(b *uiprogress.Bar) string {
			if b.Current() == 0 {
				return ""
			}
			return filepath.Base(inputs[b.Current()-1])
		})
	}

	failed := 0
	err = e.converter(cfg).Batch(inputs, w, func(r convert.Result) {
		if bar != nil {
			bar.Incr()
		}

		if r.Err != nil {
			failed++
			fprintErr(e.ui.Err, r.Err)
		}
	})

	if err != nil {
		return fmt.Errorf("%d of %d files failed", failed, len(inputs))
	}

	return nil
}
