//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/e-gun/CourseNLPServer/internal/gen"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//
// SILHOUETTE
//

// Silhouette - mean silhouette coefficient over all rows, euclidean distance
func Silhouette(x *mat.Dense, labels []int) (float64, error) {
	const (
		FAIL1 = "Silhouette(): %d labels for %d samples"
		FAIL2 = "Silhouette(): number of labels is %d. Valid values are 2 to n_samples - 1 (inclusive)"
	)

	n, _ := x.Dims()
	if len(labels) != n {
		return 0, fmt.Errorf(FAIL1, len(labels), n)
	}

	sizes := make(map[int]int)
	for _, l := range labels {
		sizes[l]++
	}
	if len(sizes) < 2 || len(sizes) > n-1 {
		return 0, fmt.Errorf(FAIL2, len(sizes))
	}

	// [a] pairwise distances, once

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := floats.Distance(x.RawRowView(i), x.RawRowView(j), 2)
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	// [b] a(i): mean distance within the own cluster; b(i): smallest mean distance to another cluster

	var total float64
	for i := 0; i < n; i++ {
		if sizes[labels[i]] == 1 {
			// a singleton scores 0
			continue
		}

		sums := make(map[int]float64, len(sizes))
		for j := 0; j < n; j++ {
			if j != i {
				sums[labels[j]] += dist[i][j]
			}
		}

		a := sums[labels[i]] / float64(sizes[labels[i]]-1)
		b := math.Inf(1)
		for l, s := range sums {
			if l == labels[i] {
				continue
			}
			b = math.Min(b, s/float64(sizes[l]))
		}

		if mx := math.Max(a, b); mx > 0 {
			total += (b - a) / mx
		}
	}

	return total / float64(n), nil
}

// SilhouetteScores - one k-means fit per requested k, each scored; the fits run concurrently and are not seeded
func SilhouetteScores(ctx context.Context, x *mat.Dense, ks []int, workers int, o KMeansOptions) (map[int]float64, error) {
	const (
		FAIL = "SilhouetteScores() k=%d: %w"
		MSG  = "SilhouetteScores(): k=%d scored %.4f"
	)

	if workers < 1 {
		workers = 1
	}

	scores := make(map[int]float64, len(ks))
	var mtx sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for _, k := range gen.Unique(ks) {
		k := k
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano()) + uint64(k)))
			km, err := KMeans(x, k, o, rng)
			if err != nil {
				return fmt.Errorf(FAIL, k, err)
			}

			s, err := Silhouette(x, km.Labels)
			if err != nil {
				return fmt.Errorf(FAIL, k, err)
			}
			Msg.TMI(fmt.Sprintf(MSG, k, s))

			mtx.Lock()
			scores[k] = s
			mtx.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
