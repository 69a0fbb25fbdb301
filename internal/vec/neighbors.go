//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"sort"

	"github.com/e-gun/nlp"
	"github.com/e-gun/nlp/measures/pairwise"
	"gonum.org/v1/gonum/mat"
)

//
// NEAREST NEIGHBOURS
//

// Neighbor - a row of the document matrix and its distance from the query
type Neighbor struct {
	Row  int
	Dist float64
}

// cosinedistance - pairwise.CosineDistance, except that a zero vector is at distance 1 from everything
func cosinedistance(a mat.Vector, b mat.Vector) float64 {
	if mat.Norm(a, 2) == 0 || mat.Norm(b, 2) == 0 {
		return 1
	}
	d := pairwise.CosineDistance(a, b)
	if d < 0 {
		// rounding
		d = 0
	}
	return d
}

// Neighbors - the 'k' rows of 'docs' closest to 'q' by cosine distance, closest first; ties keep row order
func Neighbors(docs *mat.Dense, q mat.Vector, k int) ([]Neighbor, error) {
	const (
		FAIL1 = "Neighbors(): expected a positive number of neighbors; got %d"
		FAIL2 = "Neighbors(): %d neighbors requested from %d documents"
		FAIL3 = "Neighbors(): query has %d dimensions; documents have %d"
	)

	r, c := docs.Dims()
	switch {
	case k < 1:
		return nil, fmt.Errorf(FAIL1, k)
	case k > r:
		return nil, fmt.Errorf(FAIL2, k, r)
	case q.Len() != c:
		return nil, fmt.Errorf(FAIL3, q.Len(), c)
	}

	index := nlp.NewLinearScanIndex(cosinedistance)
	for i := 0; i < r; i++ {
		index.Index(docs.RowView(i), i)
	}

	// rank everything and cut afterwards so that ties are settled by row order, not by the index
	matches := index.Search(q, r)

	nn := make([]Neighbor, len(matches))
	for i, m := range matches {
		nn[i] = Neighbor{Row: m.ID.(int), Dist: m.Distance}
	}

	sort.SliceStable(nn, func(i, j int) bool {
		if nn[i].Dist != nn[j].Dist {
			return nn[i].Dist < nn[j].Dist
		}
		return nn[i].Row < nn[j].Row
	})
	if k > len(nn) {
		k = len(nn)
	}
	return nn[:k], nil
}
