package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retail_inventory_http_requests_total",
		Help: "Total de peticiones HTTP",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "retail_inventory_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	authorizationDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retail_inventory_authorization_denials_total",
		Help: "Operaciones rechazadas por el control de acceso",
	}, []string{"operation", "reason"})

	identifierRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retail_inventory_identifier_collisions_total",
		Help: "Colisiones al generar identificadores aleatorios",
	}, []string{"kind"})
)

// ObserveHTTPRequest registra una petición HTTP.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDenial cuenta un rechazo de autorización ("no_session" o "role").
func ObserveDenial(operation, reason string) {
	authorizationDenials.WithLabelValues(operation, reason).Inc()
}

// ObserveCollision cuenta un identificador generado que ya existía.
func ObserveCollision(kind string) {
	identifierRetries.WithLabelValues(kind).Inc()
}
