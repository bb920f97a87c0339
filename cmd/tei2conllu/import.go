package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/tei2conllu/config"
	"github.com/revelaction/tei2conllu/file"
	sent "github.com/revelaction/tei2conllu/sentence"
	"github.com/revelaction/tei2conllu/storage"
	"github.com/revelaction/tei2conllu/storage/filesystem"
	"github.com/revelaction/tei2conllu/storage/sqlite/zombiezen"
)

var errNoDB = errors.New("no SQLite index given: use --db or the db configuration key")

// openIndex opens the sentence index at path, creating its tables if needed.
func openIndex(path string) (*zombiezen.DocStore, func() error, error) {
	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, nil, err
	}

	if err := zombiezen.CreateDocTables(pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to create docs table: %w", err)
	}

	return zombiezen.NewDocStore(pool), pool.Close, nil
}

// readExts are the extensions of the files read by stat, inspect and import
// when a directory is given.
func readExts(cfg config.Config) []string {
	return []string{file.InputExt, file.OutputExt, cfg.Extension}
}

// loadDoc reads a CoNLL-U file, or converts any other file in memory.
func (e *env) loadDoc(c *cli.Context, path string) (sent.Doc, error) {
	cfg := merge(c, e.cfg)

	ext := filepath.Ext(path)
	if strings.EqualFold(ext, file.OutputExt) || strings.EqualFold(ext, cfg.Extension) {
		return filesystem.ReadDoc(path)
	}

	return e.converter(cfg).ConvertFile(path, nil)
}

// importAction stores every input in the index. A failing file is reported
// and skipped.
func (e *env) importAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errNoInput
	}

	cfg := merge(c, e.cfg)
	if cfg.DB == "" {
		return errNoDB
	}

	inputs, err := file.Inputs(c.Args().Slice(), readExts(cfg)...)
	if err != nil {
		return err
	}

	db, closeDB, err := openIndex(cfg.DB)
	if err != nil {
		return err
	}
	defer closeDB()

	var bar *uiprogress.Bar
	if cfg.ShowProgress() && cfg.Verbose == 0 {
		uiprogress.Start() // start rendering
		defer uiprogress.Stop()

		bar = uiprogress.AddBar(len(inputs))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	failed := 0
	for _, path := range inputs {
		if err := e.importDoc(c, db, path); err != nil {
			failed++
			fprintErr(e.ui.Err, err)
		}

		if bar != nil {
			bar.Incr()
		}
	}

	fmt.Fprintf(e.ui.Out, "Successfully imported %d docs to %s\n", len(inputs)-failed, cfg.DB)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(inputs))
	}

	return nil
}

func (e *env) importDoc(c *cli.Context, db storage.DocWriter, path string) error {
	doc, err := e.loadDoc(c, path)
	if err != nil {
		return fmt.Errorf("failed to read doc %s: %w", path, err)
	}

	doc.Title = path
	if err := db.Write(doc); err != nil {
		return fmt.Errorf("failed to write doc %s: %w", path, err)
	}

	return nil
}
