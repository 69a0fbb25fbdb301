//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"math"
	"sort"

	"github.com/e-gun/CourseNLPServer/internal/vv"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

//
// TOPICS VIA NON-NEGATIVE MATRIX FACTORIZATION
//

type NMFOptions struct {
	MaxIter   int
	Tolerance float64
	Seed      uint64
}

var DefaultNMFOptions = NMFOptions{
	MaxIter:   vv.NMFMAXITER,
	Tolerance: vv.NMFTOLERANCE,
	Seed:      vv.NMFSEED,
}

// NMFModel - X ≈ W·H; W is docs × topics, H is topics × terms
type NMFModel struct {
	W     *mat.Dense
	H     *mat.Dense
	Iters int
}

// NMF - multiplicative updates minimizing the Frobenius norm, from a scaled random start
func NMF(x mat.Matrix, k int, o NMFOptions) (*NMFModel, error) {
	const (
		FAIL1 = "NMF(): the number of topics must be at least 1; got %d"
		FAIL2 = "NMF(): cannot find %d topics in a vocabulary of %d terms"
		FAIL3 = "NMF(): negative values in the data matrix"
		EPS   = 1e-10
		CHECK = 10
	)

	n, m := x.Dims()
	if k < 1 {
		return nil, fmt.Errorf(FAIL1, k)
	}
	if k > m {
		return nil, fmt.Errorf(FAIL2, k, m)
	}
	if mat.Min(x) < 0 {
		return nil, fmt.Errorf(FAIL3)
	}

	// [a] random start scaled to the data: sqrt(mean(X) / k) · |N(0,1)|

	rng := rand.New(rand.NewSource(o.Seed))
	avg := math.Sqrt(mat.Sum(x) / float64(n*m) / float64(k))

	h := mat.NewDense(k, m, nil)
	w := mat.NewDense(n, k, nil)
	fill := func(d *mat.Dense) {
		raw := d.RawMatrix().Data
		for i := range raw {
			raw[i] = avg * math.Abs(rng.NormFloat64())
		}
	}
	fill(h)
	fill(w)

	// [b] update H, then W, until the relative drop in error stalls

	var (
		wtx, wtw, wtwh mat.Dense
		xht, hht, whht mat.Dense
	)

	initerr := froberr(x, w, h)
	preverr := initerr
	iters := 0

	for iters < o.MaxIter {
		iters++

		wtx.Mul(w.T(), x)
		wtw.Mul(w.T(), w)
		wtwh.Mul(&wtw, h)
		h.Apply(func(i, j int, v float64) float64 {
			return v * wtx.At(i, j) / (wtwh.At(i, j) + EPS)
		}, h)

		xht.Mul(x, h.T())
		hht.Mul(h, h.T())
		whht.Mul(w, &hht)
		w.Apply(func(i, j int, v float64) float64 {
			return v * xht.At(i, j) / (whht.At(i, j) + EPS)
		}, w)

		if o.Tolerance > 0 && iters%CHECK == 0 {
			e := froberr(x, w, h)
			if initerr == 0 || (preverr-e)/initerr < o.Tolerance {
				break
			}
			preverr = e
		}
	}

	return &NMFModel{W: w, H: h, Iters: iters}, nil
}

// froberr - ‖X − W·H‖
func froberr(x mat.Matrix, w *mat.Dense, h *mat.Dense) float64 {
	var d mat.Dense
	d.Mul(w, h)
	d.Sub(x, &d)
	return mat.Norm(&d, 2)
}

type topicsorter struct {
	W string
	V float64
}

// TopWords - for each topic (row of H) the 'n' terms with the highest weight, highest first
func TopWords(h mat.Matrix, vocab []string, n int) [][]string {
	tr, tc := h.Dims()

	if n < 0 {
		n = 0
	}
	if n > tc {
		n = tc
	}

	tops := make([][]string, tr)
	for topic := 0; topic < tr; topic++ {
		tss := make([]topicsorter, tc)
		for word := 0; word < tc; word++ {
			tss[word] = topicsorter{
				W: vocab[word],
				V: h.At(topic, word),
			}
		}
		sort.SliceStable(tss, func(i, j int) bool {
			return tss[i].V > tss[j].V
		})

		ww := make([]string, n)
		for i := 0; i < n; i++ {
			ww[i] = tss[i].W
		}
		tops[topic] = ww
	}
	return tops
}
