package eckey

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("eckey")

var providerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "eckey_provider_calls",
	Help: "Crypto provider invocations",
}, []string{"op", "status"})

var providerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "eckey_provider_duration",
	Help:    "Time spent in crypto provider invocations",
	Buckets: prometheus.ExponentialBucketsRange(0.0001, 10, 20),
}, []string{"op", "status"})

var canonicalizeResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "eckey_canonicalize_results",
	Help: "Canonicalization outcomes by key kind",
}, []string{"kind", "status"})

const (
	statusOK    = "ok"
	statusError = "error"
)

const (
	kindPrivate = "private"
	kindPublic  = "public"
	// input rejected before its key kind was known
	kindUnknown = "unknown"
)

func recordResult(kind string, err error) {
	canonicalizeResults.WithLabelValues(kind, statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}
