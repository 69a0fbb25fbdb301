//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"math"

	"github.com/e-gun/nlp"
	"gonum.org/v1/gonum/mat"
)

// SmoothIdf - an nlp.Transformer weighting each count by ln((1+n)/(1+df)) + 1; unlike
// nlp.TfidfTransformer a term found in every document keeps a non-zero weight
type SmoothIdf struct {
	Weights []float64
}

func NewSmoothIdf() *SmoothIdf {
	return &SmoothIdf{}
}

// Fit - 'm' is terms × documents
func (t *SmoothIdf) Fit(m mat.Matrix) nlp.Transformer {
	terms, docs := m.Dims()

	df := make([]int, terms)
	eachnonzero(m, func(i int, j int, v float64) {
		df[i]++
	})

	t.Weights = make([]float64, terms)
	for i := range df {
		t.Weights[i] = math.Log(float64(1+docs)/float64(1+df[i])) + 1
	}
	return t
}

// Transform - a dense terms × documents matrix of weighted counts
func (t *SmoothIdf) Transform(m mat.Matrix) (mat.Matrix, error) {
	const (
		FAIL = "SmoothIdf.Transform(): fitted on %d terms; got %d"
	)

	terms, docs := m.Dims()
	if terms != len(t.Weights) {
		return nil, fmt.Errorf(FAIL, len(t.Weights), terms)
	}

	out := mat.NewDense(terms, docs, nil)
	eachnonzero(m, func(i int, j int, v float64) {
		out.Set(i, j, v*t.Weights[i])
	})
	return out, nil
}

func (t *SmoothIdf) FitTransform(m mat.Matrix) (mat.Matrix, error) {
	return t.Fit(m).Transform(m)
}

// eachnonzero - the sparse matrices from nlp know how to skip their zeros; anything else is scanned
func eachnonzero(m mat.Matrix, fn func(i int, j int, v float64)) {
	if nz, ok := m.(mat.NonZeroDoer); ok {
		nz.DoNonZero(func(i int, j int, v float64) {
			if v != 0 {
				fn(i, j, v)
			}
		})
		return
	}

	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 {
				fn(i, j, v)
			}
		}
	}
}
