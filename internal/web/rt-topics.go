//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"time"

	"github.com/e-gun/CourseNLPServer/internal/gen"
	"github.com/e-gun/CourseNLPServer/internal/lnch"
	"github.com/e-gun/CourseNLPServer/internal/vec"
	"github.com/labstack/echo/v4"
)

// RtTopics - NMF topics over the corpus, each as its top words
//
//	@Summary	Topics
//	@Description	Fit NMF with topics_num components and list the top_words_num heaviest terms of each
//	@Tags		nlp
//	@Produce	json
//	@Param		topics_num		path	int	true	"number of topics"
//	@Param		top_words_num	path	int	true	"words per topic"
//	@Success	200	{array}	[]string
//	@Failure	400	{object}	echo.HTTPError
//	@Router		/api/topics/{topics_num}/{top_words_num} [get]
func RtTopics(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtTopics()") })

	const (
		MSG = "RtTopics(): %d topics of %d words after %d iterations"
	)

	var tn, tw uint
	err := echo.PathParamsBinder(c).
		MustUint("topics_num", &tn).
		MustUint("top_words_num", &tw).
		BindError()
	if err != nil {
		return pathparamerror(err)
	}

	start := time.Now()
	previous := time.Now()

	_, sp, err := corpusspace(lnch.Config.CorpusFile)
	if err != nil {
		return err
	}
	Msg.Timer("A", "RtTopics(): vectorized", start, previous)
	previous = time.Now()

	model, err := vec.NMF(sp.Docs, int(tn), vec.DefaultNMFOptions)
	if err != nil {
		return err
	}
	observefit("nmf", previous)
	Msg.Timer("B", "RtTopics(): fitted NMF", start, previous)

	topics := vec.TopWords(model.H, sp.Vocab, int(tw))
	Msg.PEEK(fmt.Sprintf(MSG, len(topics), tw, model.Iters))

	return gen.JSONresponse(c, topics)
}
