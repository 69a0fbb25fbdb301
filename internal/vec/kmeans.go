//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"math"

	"github.com/e-gun/CourseNLPServer/internal/vv"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//
// K-MEANS: k-means++ seeding, Lloyd iterations, best of NInit runs
//

type KMeansOptions struct {
	NInit   int
	MaxIter int
	Tol     float64
}

var DefaultKMeansOptions = KMeansOptions{
	NInit:   vv.KMEANSNINIT,
	MaxIter: vv.KMEANSMAXITER,
	Tol:     vv.KMEANSTOL,
}

type KMeansModel struct {
	Labels  []int
	Centers *mat.Dense
	Inertia float64
	Iters   int
}

// KMeans - partition the rows of 'x' into 'k' clusters; all randomness comes from 'rng'
func KMeans(x *mat.Dense, k int, o KMeansOptions, rng *rand.Rand) (*KMeansModel, error) {
	const (
		FAIL1 = "KMeans(): the number of clusters must be at least 1; got %d"
		FAIL2 = "KMeans(): n_samples=%d should be >= n_clusters=%d"
	)

	n, _ := x.Dims()
	if k < 1 {
		return nil, fmt.Errorf(FAIL1, k)
	}
	if n < k {
		return nil, fmt.Errorf(FAIL2, n, k)
	}

	ninit := o.NInit
	if ninit < 1 {
		ninit = 1
	}

	tol := scaledtol(x, o.Tol)

	var best *KMeansModel
	for run := 0; run < ninit; run++ {
		centers := kmeansplusplus(x, k, rng)
		km := lloyd(x, centers, o.MaxIter, tol)
		if best == nil || km.Inertia < best.Inertia {
			best = km
		}
	}
	return best, nil
}

// scaledtol - the tolerance is relative to the mean variance of the features
func scaledtol(x *mat.Dense, tol float64) float64 {
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return 0
	}
	col := make([]float64, n)
	var sum float64
	for j := 0; j < d; j++ {
		mat.Col(col, j, x)
		mean := floats.Sum(col) / float64(n)
		var v float64
		for _, c := range col {
			v += (c - mean) * (c - mean)
		}
		sum += v / float64(n)
	}
	return sum / float64(d) * tol
}

// sqdist - squared euclidean distance
func sqdist(a []float64, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

// kmeansplusplus - greedy k-means++: each new center is the best of 2+ln(k) candidates drawn ∝ D²
func kmeansplusplus(x *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, d := x.Dims()
	centers := mat.NewDense(k, d, nil)
	trials := 2 + int(math.Log(float64(k)))

	first := rng.Intn(n)
	centers.SetRow(0, x.RawRowView(first))

	closest := make([]float64, n)
	for i := 0; i < n; i++ {
		closest[i] = sqdist(x.RawRowView(i), centers.RawRowView(0))
	}
	pot := floats.Sum(closest)

	for c := 1; c < k; c++ {
		bestcand := -1
		bestpot := math.Inf(1)
		var bestclosest []float64

		for t := 0; t < trials; t++ {
			cand := sampled2(closest, pot, rng)
			cc := make([]float64, n)
			for i := 0; i < n; i++ {
				cc[i] = math.Min(closest[i], sqdist(x.RawRowView(i), x.RawRowView(cand)))
			}
			if p := floats.Sum(cc); p < bestpot {
				bestcand, bestpot, bestclosest = cand, p, cc
			}
		}

		centers.SetRow(c, x.RawRowView(bestcand))
		closest, pot = bestclosest, bestpot
	}
	return centers
}

// sampled2 - an index drawn with probability proportional to its weight; uniform if all weights are zero
func sampled2(weights []float64, total float64, rng *rand.Rand) int {
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

// lloyd - assign, recenter, repeat until the labels stop changing or the centers stop moving
func lloyd(x *mat.Dense, centers *mat.Dense, maxiter int, tol float64) *KMeansModel {
	n, _ := x.Dims()
	k, _ := centers.Dims()

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	iters := 0
	for iters < maxiter {
		iters++

		changed := assign(x, centers, labels)

		next := recenter(x, labels, k)
		var shift float64
		for c := 0; c < k; c++ {
			shift += sqdist(centers.RawRowView(c), next.RawRowView(c))
		}
		centers = next

		if !changed || shift <= tol {
			break
		}
	}

	// the labels have to describe the final centers
	assign(x, centers, labels)

	var inertia float64
	for i := 0; i < n; i++ {
		inertia += sqdist(x.RawRowView(i), centers.RawRowView(labels[i]))
	}

	return &KMeansModel{Labels: labels, Centers: centers, Inertia: inertia, Iters: iters}
}

// assign - nearest center for every row; reports whether any label changed
func assign(x *mat.Dense, centers *mat.Dense, labels []int) bool {
	n, _ := x.Dims()
	k, _ := centers.Dims()
	changed := false
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		bl := 0
		bd := math.Inf(1)
		for c := 0; c < k; c++ {
			if dd := sqdist(row, centers.RawRowView(c)); dd < bd {
				bl, bd = c, dd
			}
		}
		if labels[i] != bl {
			labels[i] = bl
			changed = true
		}
	}
	return changed
}

// recenter - cluster means; an empty cluster takes over the point farthest from its own center
func recenter(x *mat.Dense, labels []int, k int) *mat.Dense {
	n, d := x.Dims()
	centers := mat.NewDense(k, d, nil)
	counts := make([]int, k)

	for i := 0; i < n; i++ {
		floats.Add(centers.RawRowView(labels[i]), x.RawRowView(i))
		counts[labels[i]]++
	}
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			floats.Scale(1/float64(counts[c]), centers.RawRowView(c))
		}
	}

	taken := make(map[int]bool)
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			continue
		}
		far := -1
		fd := -1.0
		for i := 0; i < n; i++ {
			if taken[i] || counts[labels[i]] < 2 {
				continue
			}
			if dd := sqdist(x.RawRowView(i), centers.RawRowView(labels[i])); dd > fd {
				far, fd = i, dd
			}
		}
		if far < 0 {
			continue
		}
		taken[far] = true
		centers.SetRow(c, x.RawRowView(far))
	}
	return centers
}
