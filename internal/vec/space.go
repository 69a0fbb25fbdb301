//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/e-gun/CourseNLPServer/internal/gen"
	"github.com/e-gun/CourseNLPServer/internal/lnch"
	"github.com/e-gun/CourseNLPServer/internal/vv"
	"github.com/e-gun/nlp"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var Msg = lnch.NewMessageMakerWithDefaults()

var ErrEmptyVocabulary = errors.New("empty vocabulary; perhaps the documents only contain stop words")

//
// VECTOR SPACE: TF-IDF over the corpus descriptions; built per request, never cached
//

// Space - the TF-IDF document matrix (docs × terms, each row of unit length) and the pipeline that made it
type Space struct {
	Docs  *mat.Dense
	Vocab []string
	pipe  *nlp.Pipeline
}

// Vectorize - count vectors → smoothed tf-idf → unit rows
func Vectorize(docs []string) (*Space, error) {
	const (
		FAIL = "Vectorize() failed: %w"
	)

	ft := featuretexts(docs)
	if !hasfeatures(ft) {
		return nil, fmt.Errorf(FAIL, ErrEmptyVocabulary)
	}

	vectoriser := nlp.NewCountVectoriser()
	tfidf := NewSmoothIdf()
	pipeline := nlp.NewPipeline(vectoriser, tfidf)

	termsOverDocs, err := pipeline.FitTransform(ft...)
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	if len(vectoriser.Vocabulary) == 0 {
		return nil, fmt.Errorf(FAIL, ErrEmptyVocabulary)
	}

	dd := mat.DenseCopyOf(termsOverDocs.T())
	unitrows(dd)

	sp := &Space{
		Docs:  dd,
		Vocab: gen.InvertIndex(vectoriser.Vocabulary),
		pipe:  pipeline,
	}
	return sp, nil
}

// Query - project a new text into the fitted space; unknown terms are ignored
func (s *Space) Query(text string) (*mat.VecDense, error) {
	const (
		FAIL = "Space.Query() failed: %w"
	)

	termsOverDocs, err := s.pipe.Transform(featuretexts([]string{text})...)
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	r, _ := termsOverDocs.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, termsOverDocs.At(i, 0))
	}
	unitvec(v.RawVector().Data)
	return v, nil
}

// Dims - documents, terms
func (s *Space) Dims() (int, int) {
	return s.Docs.Dims()
}

// featuretexts - one-letter tokens are not features
func featuretexts(docs []string) []string {
	ft := make([]string, len(docs))
	for i, d := range docs {
		words := strings.Fields(d)
		kept := words[:0]
		for _, w := range words {
			if utf8.RuneCountInString(w) >= vv.MINTOKENLENGTH {
				kept = append(kept, w)
			}
		}
		ft[i] = strings.Join(kept, " ")
	}
	return ft
}

func hasfeatures(ft []string) bool {
	for _, f := range ft {
		if f != "" {
			return true
		}
	}
	return false
}

func unitrows(m *mat.Dense) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		unitvec(m.RawRowView(i))
	}
}

// unitvec - scale in place to length 1; the zero vector stays zero
func unitvec(v []float64) {
	n := floats.Norm(v, 2)
	if n > 0 {
		floats.Scale(1/n, v)
	}
}
