//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var testdocs = []string{
	"python программирование разработка код python",
	"python код функция программирование",
	"код разработка python функция",
	"дизайн графика рисунок цвет",
	"рисунок цвет дизайн иллюстрация",
	"графика иллюстрация цвет дизайн",
}

func testspace(t *testing.T) *Space {
	t.Helper()
	sp, err := Vectorize(testdocs)
	require.NoError(t, err)
	return sp
}

func TestVectorize(t *testing.T) {
	sp := testspace(t)
	r, c := sp.Dims()
	assert.Equal(t, len(testdocs), r)
	assert.Equal(t, len(sp.Vocab), c)
	assert.Contains(t, sp.Vocab, "python")

	for i := 0; i < r; i++ {
		assert.InDelta(t, 1.0, floats.Norm(sp.Docs.RawRowView(i), 2), 1e-9)
	}
	assert.GreaterOrEqual(t, mat.Min(sp.Docs), 0.0)
}

func TestVectorizeDropsSingleLetters(t *testing.T) {
	sp, err := Vectorize([]string{"a b курс", "c python"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"курс", "python"}, sp.Vocab)
}

func TestVectorizeEmpty(t *testing.T) {
	_, err := Vectorize(nil)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
	_, err = Vectorize([]string{"", "a", " "})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestQuery(t *testing.T) {
	sp := testspace(t)
	q, err := sp.Query(testdocs[3])
	require.NoError(t, err)
	assert.InDelta(t, 0.0, cosinedistance(q, sp.Docs.RowView(3)), 1e-9)

	// nothing in the vocabulary
	z, err := sp.Query("неизвестное слово")
	require.NoError(t, err)
	assert.Equal(t, 0.0, mat.Norm(z, 2))
}

func TestNMFTopics(t *testing.T) {
	sp := testspace(t)
	m, err := NMF(sp.Docs, 2, DefaultNMFOptions)
	require.NoError(t, err)

	r, c := m.H.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, len(sp.Vocab), c)
	assert.GreaterOrEqual(t, mat.Min(m.W), 0.0)
	assert.GreaterOrEqual(t, mat.Min(m.H), 0.0)

	tops := TopWords(m.H, sp.Vocab, 3)
	require.Len(t, tops, 2)
	for _, tp := range tops {
		assert.Len(t, tp, 3)
		for _, w := range tp {
			assert.NotEmpty(t, w)
		}
	}
}

func TestNMFDeterministic(t *testing.T) {
	sp := testspace(t)
	a, err := NMF(sp.Docs, 2, DefaultNMFOptions)
	require.NoError(t, err)
	b, err := NMF(sp.Docs, 2, DefaultNMFOptions)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a.H, b.H))
}

func TestNMFErrors(t *testing.T) {
	sp := testspace(t)
	_, c := sp.Dims()
	_, err := NMF(sp.Docs, 0, DefaultNMFOptions)
	assert.Error(t, err)
	_, err = NMF(sp.Docs, c+1, DefaultNMFOptions)
	assert.Error(t, err)
}

func TestTopWords(t *testing.T) {
	h := mat.NewDense(2, 4, []float64{
		0.1, 0.9, 0.5, 0.0,
		0.7, 0.0, 0.2, 0.3,
	})
	vocab := []string{"a", "b", "c", "d"}
	assert.Equal(t, [][]string{{"b", "c"}, {"a", "d"}}, TopWords(h, vocab, 2))
	assert.Equal(t, [][]string{{}, {}}, TopWords(h, vocab, 0))
	assert.Len(t, TopWords(h, vocab, 10)[0], 4)
}

func TestNeighbors(t *testing.T) {
	sp := testspace(t)
	q, err := sp.Query(testdocs[4])
	require.NoError(t, err)

	nn, err := Neighbors(sp.Docs, q, 3)
	require.NoError(t, err)
	require.Len(t, nn, 3)
	assert.Equal(t, 4, nn[0].Row)
	assert.InDelta(t, 0.0, nn[0].Dist, 1e-9)
	for i := 1; i < len(nn); i++ {
		assert.LessOrEqual(t, nn[i-1].Dist, nn[i].Dist)
	}
	// the other design documents come before any programming document
	assert.ElementsMatch(t, []int{3, 5}, []int{nn[1].Row, nn[2].Row})
}

func TestNeighborsTermInEveryDocument(t *testing.T) {
	sp, err := Vectorize([]string{"курс python", "курс дизайн", "курс"})
	require.NoError(t, err)
	assert.Greater(t, floats.Norm(sp.Docs.RawRowView(2), 2), 0.0)

	q, err := sp.Query("курс")
	require.NoError(t, err)
	nn, err := Neighbors(sp.Docs, q, 1)
	require.NoError(t, err)
	require.Len(t, nn, 1)
	assert.Equal(t, 2, nn[0].Row)
	assert.InDelta(t, 0.0, nn[0].Dist, 1e-9)
}

func TestSmoothIdf(t *testing.T) {
	// terms × documents; term 0 is everywhere, term 1 in one document
	counts := mat.NewDense(2, 3, []float64{
		1, 2, 1,
		0, 3, 0,
	})
	w, err := NewSmoothIdf().FitTransform(counts)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, w.At(0, 0), 1e-9)
	assert.InDelta(t, 2.0, w.At(0, 1), 1e-9)
	assert.InDelta(t, 3*(math.Log(4.0/2.0)+1), w.At(1, 1), 1e-9)
	assert.Equal(t, 0.0, w.At(1, 0))

	_, err = NewSmoothIdf().Fit(counts).Transform(mat.NewDense(3, 1, nil))
	assert.Error(t, err)
}

func TestNeighborsZeroQuery(t *testing.T) {
	sp := testspace(t)
	_, c := sp.Dims()
	nn, err := Neighbors(sp.Docs, mat.NewVecDense(c, nil), 2)
	require.NoError(t, err)
	assert.Equal(t, []Neighbor{{Row: 0, Dist: 1}, {Row: 1, Dist: 1}}, nn)
}

func TestNeighborsErrors(t *testing.T) {
	sp := testspace(t)
	r, c := sp.Dims()
	q := mat.NewVecDense(c, nil)
	_, err := Neighbors(sp.Docs, q, 0)
	assert.Error(t, err)
	_, err = Neighbors(sp.Docs, q, r+1)
	assert.Error(t, err)
	_, err = Neighbors(sp.Docs, mat.NewVecDense(c+1, nil), 1)
	assert.Error(t, err)
}

func TestKMeansSeparates(t *testing.T) {
	sp := testspace(t)
	km, err := KMeans(sp.Docs, 2, DefaultKMeansOptions, rand.New(rand.NewSource(0)))
	require.NoError(t, err)
	require.Len(t, km.Labels, 6)

	assert.Equal(t, km.Labels[0], km.Labels[1])
	assert.Equal(t, km.Labels[1], km.Labels[2])
	assert.Equal(t, km.Labels[3], km.Labels[4])
	assert.Equal(t, km.Labels[4], km.Labels[5])
	assert.NotEqual(t, km.Labels[0], km.Labels[3])
}

func TestKMeansSeeded(t *testing.T) {
	sp := testspace(t)
	a, err := KMeans(sp.Docs, 3, DefaultKMeansOptions, rand.New(rand.NewSource(0)))
	require.NoError(t, err)
	b, err := KMeans(sp.Docs, 3, DefaultKMeansOptions, rand.New(rand.NewSource(0)))
	require.NoError(t, err)
	assert.Equal(t, a.Labels, b.Labels)
	for _, l := range a.Labels {
		assert.True(t, l >= 0 && l < 3)
	}
}

func TestKMeansErrors(t *testing.T) {
	sp := testspace(t)
	rng := rand.New(rand.NewSource(0))
	_, err := KMeans(sp.Docs, 0, DefaultKMeansOptions, rng)
	assert.Error(t, err)
	_, err = KMeans(sp.Docs, 7, DefaultKMeansOptions, rng)
	assert.Error(t, err)
}

func TestKMeansLine(t *testing.T) {
	x := mat.NewDense(6, 1, []float64{0, 0.1, 0.2, 10, 10.1, 10.2})
	km, err := KMeans(x, 2, DefaultKMeansOptions, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.InDelta(t, 0.04, km.Inertia, 1e-9)
}

func TestSilhouette(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{0, 1, 10, 11})
	s, err := Silhouette(x, []int{0, 0, 1, 1})
	require.NoError(t, err)

	// by hand: a = 1 everywhere; b = 10.5, 9.5, 9.5, 10.5 (mean distances to the other pair)
	want := ((10.5-1)/10.5 + (9.5-1)/9.5 + (9.5-1)/9.5 + (10.5-1)/10.5) / 4
	assert.InDelta(t, want, s, 1e-12)
}

func TestSilhouetteSingleton(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{0, 1, 5})
	s, err := Silhouette(x, []int{0, 0, 1})
	require.NoError(t, err)
	// the singleton contributes 0; the pair: a = 1, b = 5 and 4
	want := ((5.0-1)/5 + (4.0-1)/4 + 0) / 3
	assert.InDelta(t, want, s, 1e-12)
}

func TestSilhouetteErrors(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{0, 1, 5})
	_, err := Silhouette(x, []int{0, 0, 0})
	assert.Error(t, err)
	_, err = Silhouette(x, []int{0, 1, 2})
	assert.Error(t, err)
	_, err = Silhouette(x, []int{0, 1})
	assert.Error(t, err)
}

func TestSilhouetteScores(t *testing.T) {
	sp := testspace(t)
	sc, err := SilhouetteScores(context.Background(), sp.Docs, []int{2, 3, 2}, 2, DefaultKMeansOptions)
	require.NoError(t, err)
	require.Len(t, sc, 2)
	for _, k := range []int{2, 3} {
		v, ok := sc[k]
		require.True(t, ok)
		assert.True(t, v >= -1 && v <= 1)
		assert.False(t, math.IsNaN(v))
	}
}

func TestSilhouetteScoresError(t *testing.T) {
	sp := testspace(t)
	_, err := SilhouetteScores(context.Background(), sp.Docs, []int{2, 1}, 4, DefaultKMeansOptions)
	assert.Error(t, err)
}

func TestPCA2D(t *testing.T) {
	// points on a line along (1, 1, 0) plus a small wobble along z
	x := mat.NewDense(4, 3, []float64{
		-3, -3, 0.1,
		-1, -1, -0.1,
		1, 1, -0.1,
		3, 3, 0.1,
	})
	p, err := PCA2D(x)
	require.NoError(t, err)

	r, c := p.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 2, c)

	// the first coordinate carries the spread along the line
	want := []float64{-3 * math.Sqrt2, -math.Sqrt2, math.Sqrt2, 3 * math.Sqrt2}
	for i := 0; i < r; i++ {
		assert.InDelta(t, want[i], p.At(i, 0), 1e-9)
		assert.InDelta(t, 0.1, math.Abs(p.At(i, 1)), 1e-9)
	}
}

func TestPCA2DOneColumn(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 3})
	p, err := PCA2D(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, mat.Col(nil, 1, p))
	assert.InDelta(t, 0.0, floats.Sum(mat.Col(nil, 0, p)), 1e-12)
}
