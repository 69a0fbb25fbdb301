//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"

	"github.com/e-gun/CourseNLPServer/internal/gen"
	"github.com/e-gun/CourseNLPServer/internal/lnch"
	"github.com/e-gun/CourseNLPServer/internal/prep"
	"github.com/e-gun/CourseNLPServer/internal/str"
	"github.com/e-gun/CourseNLPServer/internal/vec"
	"github.com/labstack/echo/v4"
)

// RtNeighbors - the courses whose descriptions lie closest to the submitted text
//
//	@Summary	Neighbors
//	@Description	Normalize the text, project it into the TF-IDF space and return the nearest course ids
//	@Tags		nlp
//	@Accept		json
//	@Produce	json
//	@Param		neighbors_num	path	int						true	"number of neighbors"
//	@Param		body			body	str.NeighborsRequest	true	"query text"
//	@Success	200	{array}		str.NeighborJSON
//	@Failure	400	{object}	echo.HTTPError
//	@Router		/api/neighbors/{neighbors_num} [post]
func RtNeighbors(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtNeighbors()") })

	const (
		MSG = "RtNeighbors(): '%s' normalized to '%s'"
	)

	var nn uint
	if err := echo.PathParamsBinder(c).MustUint("neighbors_num", &nn).BindError(); err != nil {
		return pathparamerror(err)
	}

	var req str.NeighborsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	norm := Norm
	if norm == nil {
		norm = prep.Default()
	}

	entries, sp, err := corpusspace(lnch.Config.CorpusFile)
	if err != nil {
		return err
	}

	text := norm.Line(*req.Text)
	Msg.TMI(fmt.Sprintf(MSG, *req.Text, text))

	q, err := sp.Query(text)
	if err != nil {
		return err
	}

	found, err := vec.Neighbors(sp.Docs, q, int(nn))
	if err != nil {
		return err
	}

	out := make([]str.NeighborJSON, len(found))
	for i, f := range found {
		out[i] = str.NeighborJSON{ID: entries[f.Row].ID, Dist: f.Dist}
	}

	return gen.JSONresponse(c, out)
}
