//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal - labels: route (the registered path, not the uri), code
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cns_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	// ModelFitSeconds - labels: model ("nmf", "kmeans", "silhouette", "tfidf")
	ModelFitSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cns_model_fit_seconds",
			Help:    "Time spent fitting a model per request",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)
)

// CountRequests - middleware that feeds RequestsTotal
func CountRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		code := c.Response().Status
		if err != nil {
			// the error handler has not run yet, so the response status is not final
			var he *echo.HTTPError
			var be *echo.BindingError
			switch {
			case errors.As(err, &be):
				code = be.Code
			case errors.As(err, &he):
				code = he.Code
			default:
				code = http.StatusInternalServerError
			}
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
		return err
	}
}

func observefit(model string, start time.Time) {
	ModelFitSeconds.WithLabelValues(model).Observe(time.Since(start).Seconds())
}
