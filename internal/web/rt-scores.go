//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"strconv"
	"time"

	"github.com/e-gun/CourseNLPServer/internal/gen"
	"github.com/e-gun/CourseNLPServer/internal/lnch"
	"github.com/e-gun/CourseNLPServer/internal/str"
	"github.com/e-gun/CourseNLPServer/internal/vec"
	"github.com/labstack/echo/v4"
)

// RtClustersScores - silhouette score of a fresh k-means fit for each requested k
//
//	@Summary	Cluster scores
//	@Description	Fit k-means for every k in numbers and report the mean silhouette of each fit
//	@Tags		nlp
//	@Accept		json
//	@Produce	json
//	@Param		body	body	str.ScoresRequest	true	"cluster counts"
//	@Success	200	{object}	map[string]number
//	@Failure	400	{object}	echo.HTTPError
//	@Router		/api/clusters/scores [post]
func RtClustersScores(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtClustersScores()") })

	var req str.ScoresRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	start := time.Now()

	_, sp, err := corpusspace(lnch.Config.CorpusFile)
	if err != nil {
		return err
	}

	previous := time.Now()
	scores, err := vec.SilhouetteScores(c.Request().Context(), sp.Docs, req.Numbers, lnch.Config.WorkerCount, vec.DefaultKMeansOptions)
	if err != nil {
		return err
	}
	observefit("silhouette", previous)
	Msg.Timer("A", "RtClustersScores(): scored every k", start, previous)

	// JSON object keys are strings
	out := make(map[string]float64, len(scores))
	for k, s := range scores {
		out[strconv.Itoa(k)] = s
	}

	return gen.JSONresponse(c, out)
}
