package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hitechhomes", Name: "chat_messages_total", Help: "Chatbot messages by result state."},
		[]string{"state"}, // EXACT_MATCH|ALTERNATIVES|NO_RESULTS
	)
	ChatLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hitechhomes", Name: "chat_message_duration_seconds",
			Help:    "Chatbot message handling duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	CompletionRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hitechhomes", Name: "completion_requests_total", Help: "Outbound completion-service requests."},
		[]string{"status"}, // HTTP status, or "error"
	)
	FallbackReplies = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hitechhomes", Name: "fallback_replies_total", Help: "Deterministic template replies by reason."},
		[]string{"reason"}, // disabled|service_error
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hitechhomes", Name: "cache_events_total", Help: "Cache hits/misses/sets."},
		[]string{"cache", "event"}, // event: hit|miss|set
	)
)

// InitRegistry registers all collectors on a fresh registry
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(ChatMessages, ChatLatency, CompletionRequests, FallbackReplies, CacheEvents)
	return reg
}

// MetricsHandler exposes the registry over HTTP
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ObserveChat records one handled chatbot message
func ObserveChat(state string, dur time.Duration) {
	ChatMessages.WithLabelValues(state).Inc()
	ChatLatency.Observe(dur.Seconds())
}

// ObserveCompletion records an outbound completion-service request
func ObserveCompletion(status int, err error) {
	if err != nil {
		CompletionRequests.WithLabelValues("error").Inc()
		return
	}
	CompletionRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// ObserveFallback records a deterministic template reply
func ObserveFallback(reason string) {
	FallbackReplies.WithLabelValues(reason).Inc()
}

// ObserveCache records a cache event (hit|miss|set)
func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}
