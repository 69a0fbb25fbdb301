//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCA2D - each row of 'x' projected onto the first two principal components (zeros where fewer exist)
func PCA2D(x *mat.Dense) (*mat.Dense, error) {
	const (
		DIMS = 2
	)

	n, d := x.Dims()

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, errors.New("PCA2D(): the decomposition failed")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	_, avail := vecs.Dims()

	// center
	centered := mat.DenseCopyOf(x)
	for j := 0; j < d; j++ {
		var mean float64
		for i := 0; i < n; i++ {
			mean += x.At(i, j)
		}
		mean /= float64(n)
		for i := 0; i < n; i++ {
			centered.Set(i, j, x.At(i, j)-mean)
		}
	}

	proj := mat.NewDense(n, DIMS, nil)
	for c := 0; c < DIMS && c < avail; c++ {
		dir := mat.VecDenseCopyOf(vecs.ColView(c))
		flipsign(dir)

		var col mat.VecDense
		col.MulVec(centered, dir)
		proj.SetCol(c, col.RawVector().Data)
	}
	return proj, nil
}

// flipsign - a component's sign is arbitrary: make its largest loading positive so that plots are stable
func flipsign(v *mat.VecDense) {
	var big float64
	for i := 0; i < v.Len(); i++ {
		if math.Abs(v.AtVec(i)) > math.Abs(big) {
			big = v.AtVec(i)
		}
	}
	if big < 0 {
		v.ScaleVec(-1, v)
	}
}
