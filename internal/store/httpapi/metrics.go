package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики исходящих запросов к хранилищу. Лейбл code — HTTP-статус ответа
// либо transport_error, если запрос не дошёл.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comment_store_client_requests_total",
		Help: "Outgoing comment store requests by operation and result code.",
	}, []string{"op", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "comment_store_client_request_duration_seconds",
		Help:    "Outgoing comment store request duration by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)
