//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package crp

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/e-gun/CourseNLPServer/internal/str"
	"github.com/e-gun/CourseNLPServer/internal/vv"
	"github.com/goccy/go-json"
)

//
// CORPUS STORE: one JSON array of {id, description}; written whole or not at all
//

// WriteCorpus - encode to a temp file next to 'fn', sync it, then rename it over 'fn'
func WriteCorpus(fn string, entries []str.CorpusEntry) error {
	const (
		FAIL1  = "WriteCorpus() could not create a temporary file in '%s': %w"
		FAIL2  = "WriteCorpus() could not encode the corpus: %w"
		FAIL3  = "WriteCorpus() could not flush '%s': %w"
		FAIL4  = "WriteCorpus() could not replace '%s': %w"
		TMPPAT = ".corpus-*.json.tmp"
	)

	if entries == nil {
		entries = []str.CorpusEntry{}
	}

	dir := filepath.Dir(fn)
	tmp, err := os.CreateTemp(dir, TMPPAT)
	if err != nil {
		return fmt.Errorf(FAIL1, dir, err)
	}

	// anything but a completed rename leaves the old corpus alone and the temp file gone
	done := false
	defer func() {
		if !done {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", vv.JSONINDENT)
	enc.SetEscapeHTML(false)

	if err = enc.Encode(entries); err != nil {
		return fmt.Errorf(FAIL2, err)
	}

	if err = bw.Flush(); err != nil {
		return fmt.Errorf(FAIL3, tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf(FAIL3, tmp.Name(), err)
	}
	if err = tmp.Chmod(vv.WRITEPERMS); err != nil {
		return fmt.Errorf(FAIL3, tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf(FAIL3, tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), fn); err != nil {
		_ = os.Remove(tmp.Name())
		done = true
		return fmt.Errorf(FAIL4, fn, err)
	}

	done = true
	return nil
}

// ReadCorpus - the whole corpus, in file order
func ReadCorpus(fn string) ([]str.CorpusEntry, error) {
	const (
		FAIL1 = "ReadCorpus() could not open '%s': %w"
		FAIL2 = "ReadCorpus() could not decode '%s': %w"
	)

	f, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, fn, err)
	}
	defer f.Close()

	var entries []str.CorpusEntry
	if err = json.NewDecoder(bufio.NewReader(f)).Decode(&entries); err != nil {
		return nil, fmt.Errorf(FAIL2, fn, err)
	}
	return entries, nil
}

// Descriptions - the description column of a corpus
func Descriptions(entries []str.CorpusEntry) []string {
	dd := make([]string, len(entries))
	for i, e := range entries {
		dd[i] = e.Description
	}
	return dd
}
