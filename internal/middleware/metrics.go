package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goodquestions_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AnswerSubmissions counts answer submissions by kind and outcome.
	AnswerSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goodquestions_answer_submissions_total",
		Help: "Total answer submissions by kind (weekly/daily) and outcome",
	}, []string{"kind", "outcome"})

	// AIRequests counts outbound AI calls by operation and outcome.
	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goodquestions_ai_requests_total",
		Help: "Total outbound AI service calls by operation and outcome",
	}, []string{"operation", "outcome"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
