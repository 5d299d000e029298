package metrics

import (
	"errors"
	"strconv"
	"time"

	"union-backend/internal/apperr"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Requests handled, by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Request handling latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Middleware records a counter and latency sample per request. The route
// pattern is used as the label, not the raw path, to keep cardinality
// bounded.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// On error the response is not rendered yet, so the status must
		// come from the error itself, not from c.Response().
		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			var ae *apperr.Error
			var fe *fiber.Error
			switch {
			case errors.As(err, &ae):
				status = ae.Status
			case errors.As(err, &fe):
				status = fe.Code
			default:
				status = fiber.StatusInternalServerError
			}
		}

		requestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the default prometheus registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
