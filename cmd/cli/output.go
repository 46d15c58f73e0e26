package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/innermond/bellong"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// writeFiles writes the outputs one at a time, every file is closed before
// the next one is created.
func writeFiles(outs []bellong.PatternReader) (errs []error) {
	for _, out := range outs {
		for nm, r := range out {
			if err := writeFile(nm, r); err != nil {
				errs = append(errs, err)
				continue
			}
			log.Infof("wrote %s", nm)
		}
	}
	return
}

func writeFile(nm string, r io.Reader) error {
	if dir := filepath.Dir(nm); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}

	w, err := os.Create(nm)
	if err != nil {
		return errors.Wrapf(err, "creating %s", nm)
	}
	_, err = io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "writing %s", nm)
}
