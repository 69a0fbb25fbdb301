//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"time"

	"github.com/e-gun/CourseNLPServer/internal/crp"
	"github.com/e-gun/CourseNLPServer/internal/str"
	"github.com/e-gun/CourseNLPServer/internal/vec"
)

// corpusspace - read the corpus file and vectorize it; every request gets a fresh space
func corpusspace(fn string) ([]str.CorpusEntry, *vec.Space, error) {
	const (
		FAIL = "could not build the vector space for %s: %w"
		MSG  = "corpusspace(): %d documents, %d terms"
	)

	start := time.Now()

	entries, err := crp.ReadCorpus(fn)
	if err != nil {
		return nil, nil, fmt.Errorf(FAIL, fn, err)
	}

	sp, err := vec.Vectorize(crp.Descriptions(entries))
	if err != nil {
		return nil, nil, fmt.Errorf(FAIL, fn, err)
	}
	observefit("tfidf", start)

	d, t := sp.Dims()
	Msg.TMI(fmt.Sprintf(MSG, d, t))
	return entries, sp, nil
}
