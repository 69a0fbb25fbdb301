//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"strings"

	_ "github.com/e-gun/CourseNLPServer/docs"
	"github.com/e-gun/CourseNLPServer/internal/db"
	"github.com/e-gun/CourseNLPServer/internal/lnch"
	"github.com/e-gun/CourseNLPServer/internal/prep"
	"github.com/e-gun/CourseNLPServer/internal/vv"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"
)

var (
	Msg   = lnch.NewMessageMakerWithDefaults()
	Store db.Store
	Norm  *prep.Normalizer
)

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer(store db.Store, norm *prep.Normalizer) {
	Store = store
	Norm = norm

	e := NewEchoServer()

	Msg.NOTE(fmt.Sprintf("serving on %s:%d", lnch.Config.HostIP, lnch.Config.HostPort))
	e.Logger.Fatal(e.Start(fmt.Sprintf("%s:%d", lnch.Config.HostIP, lnch.Config.HostPort)))
}

// NewEchoServer - the configured *echo.Echo with every route registered
func NewEchoServer() *echo.Echo {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		if len(ua) == 0 {
			return 0, nil
		}
		return buf.WriteString(ua[len(ua)-1])
	}

	//
	// SETUP
	//

	e := echo.New()
	e.Server.ReadTimeout = vv.TIMEOUTRD
	e.Server.WriteTimeout = vv.TIMEOUTWR
	e.JSONSerializer = GoccyJSONSerializer{}
	e.Validator = NewCustomValidator()

	switch lnch.Config.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))

	if lnch.Config.MaxReqPerSec > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(lnch.Config.MaxReqPerSec))))
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: lnch.Config.CORSOrigins}))
	e.Use(CountRequests)

	if lnch.Config.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// NLP ROUTES
	//

	// [a] topics ("rt-topics.go")

	e.GET("/api/topics/:topics_num/:top_words_num", RtTopics) // "u: /api/topics/20/15"

	// [b] neighbors ("rt-neighbors.go")

	e.POST("/api/neighbors/:neighbors_num", RtNeighbors) // "u: /api/neighbors/5" + {"text": "курсы python"}

	// [c] clusters ("rt-clusters.go")

	e.GET("/api/clusters/:clusters_num", RtClusters)            // "u: /api/clusters/4"
	e.GET("/api/clusters/:clusters_num/chart", RtClustersChart) // "u: /api/clusters/4/chart"

	// [d] scores ("rt-scores.go")

	e.POST("/api/clusters/scores", RtClustersScores) // "u: /api/clusters/scores" + {"numbers": [2, 3, 4]}

	//
	// SUPPORT ROUTES
	//

	e.GET("/swagger/*", echo.WrapHandler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.HideBanner = true
	e.HidePort = false
	e.Debug = false
	e.DisableHTTP2 = true

	return e
}
