//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/e-gun/CourseNLPServer/internal/gen"
	"github.com/e-gun/CourseNLPServer/internal/lnch"
	"github.com/e-gun/CourseNLPServer/internal/str"
	"github.com/e-gun/CourseNLPServer/internal/vec"
	"github.com/e-gun/CourseNLPServer/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/labstack/echo/v4"
	"golang.org/x/exp/rand"
)

// RtClusters - k-means labels for every course plus a 2D PCA position for plotting
//
//	@Summary	Clusters
//	@Description	Fit k-means with clusters_num clusters and pair each label with PCA coordinates and the live course
//	@Tags		nlp
//	@Produce	json
//	@Param		clusters_num	path	int	true	"number of clusters"
//	@Success	200	{array}		str.ClusterPointJSON
//	@Failure	400	{object}	echo.HTTPError
//	@Router		/api/clusters/{clusters_num} [get]
func RtClusters(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtClusters()") })

	var k uint
	if err := echo.PathParamsBinder(c).MustUint("clusters_num", &k).BindError(); err != nil {
		return pathparamerror(err)
	}

	pts, err := clusterpoints(c.Request().Context(), int(k))
	if err != nil {
		return err
	}
	return gen.JSONresponse(c, pts)
}

// RtClustersChart - the RtClusters data as an echarts scatter plot, one series per cluster
func RtClustersChart(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtClustersChart()") })

	var k uint
	if err := echo.PathParamsBinder(c).MustUint("clusters_num", &k).BindError(); err != nil {
		return pathparamerror(err)
	}

	pts, err := clusterpoints(c.Request().Context(), int(k))
	if err != nil {
		return err
	}

	htm, err := scatterchart(pts, int(k))
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, htm)
}

// clusterpoints - labels, coordinates and live courses are paired by position and cut to the shortest
func clusterpoints(ctx context.Context, k int) ([]str.ClusterPointJSON, error) {
	const (
		MSG  = "clusterpoints(): %d labels, %d coordinates, %d courses"
		WARN = "clusterpoints(): the corpus file and the course table have drifted apart (%d vs %d rows)"
	)

	if Store == nil {
		return nil, errors.New("clusterpoints(): no course store configured")
	}

	start := time.Now()
	previous := time.Now()

	_, sp, err := corpusspace(lnch.Config.CorpusFile)
	if err != nil {
		return nil, err
	}
	Msg.Timer("A", "clusterpoints(): vectorized", start, previous)
	previous = time.Now()

	rng := rand.New(rand.NewSource(vv.KMEANSSEED))
	km, err := vec.KMeans(sp.Docs, k, vec.DefaultKMeansOptions, rng)
	if err != nil {
		return nil, err
	}
	observefit("kmeans", previous)
	Msg.Timer("B", fmt.Sprintf("clusterpoints(): fitted k-means for k=%d", k), start, previous)
	previous = time.Now()

	xy, err := vec.PCA2D(sp.Docs)
	if err != nil {
		return nil, err
	}
	xy.Scale(vv.SCALEPLOTBY, xy)
	Msg.Timer("C", "clusterpoints(): projected", start, previous)

	courses, err := Store.FetchCourses(ctx)
	if err != nil {
		return nil, err
	}

	n, _ := xy.Dims()
	Msg.TMI(fmt.Sprintf(MSG, len(km.Labels), n, len(courses)))
	if len(courses) != n {
		Msg.WARN(fmt.Sprintf(WARN, n, len(courses)))
	}

	m := min(len(km.Labels), n, len(courses))
	pts := make([]str.ClusterPointJSON, m)
	for i := 0; i < m; i++ {
		pts[i] = str.ClusterPointJSON{
			X:       xy.At(i, 0),
			Y:       xy.At(i, 1),
			Cluster: km.Labels[i],
			Data:    str.ClusterDataJSON{Title: courses[i].Title, URL: courses[i].URL},
		}
	}
	return pts, nil
}

// scatterchart - a self-contained html page
func scatterchart(pts []str.ClusterPointJSON, k int) (string, error) {
	const (
		TITLE      = "Course clusters (k=%d)"
		SUBTITLE   = "k-means over TF-IDF; first two principal components"
		SERIES     = "cluster %d"
		CHRTWIDTH  = "1200px"
		CHRTHEIGHT = "800px"
		SYMSIZE    = 10
	)

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: vv.APITITLE, Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf(TITLE, k), Subtitle: SUBTITLE}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{b}"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: "5%"}),
	)

	series := make([][]opts.ScatterData, k)
	for _, p := range pts {
		if p.Cluster < 0 || p.Cluster >= k {
			continue
		}
		series[p.Cluster] = append(series[p.Cluster], opts.ScatterData{
			Name:       p.Data.Title,
			Value:      []interface{}{p.X, p.Y},
			SymbolSize: SYMSIZE,
		})
	}

	for i, s := range series {
		sc.AddSeries(fmt.Sprintf(SERIES, i), s)
	}

	var buf bytes.Buffer
	if err := sc.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
