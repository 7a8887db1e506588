package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront holds the counters exported on /metrics. A nil *Storefront is
// valid and records nothing.
type Storefront struct {
	cartMutations   *prometheus.CounterVec
	ordersPlaced    *prometheus.CounterVec
	storageFailures *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return nil
	}
	m := &Storefront{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by operation.",
		}, []string{"op"}),
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Orders placed by payment method.",
		}, []string{"payment_method"}),
		storageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_storage_failures_total",
			Help: "Swallowed key-value store failures by operation.",
		}, []string{"op"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.cartMutations, m.ordersPlaced, m.storageFailures, m.httpDuration)
	return m
}

func (m *Storefront) CartMutation(op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *Storefront) OrderPlaced(paymentMethod string) {
	if m == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

func (m *Storefront) StorageFailure(op string) {
	if m == nil {
		return
	}
	m.storageFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveRequest records one served request. route is the chi pattern, not
// the raw path, to keep label cardinality bounded.
func (m *Storefront) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(normalizeMethod(method), normalizeLabel(route), strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

// normalizeMethod folds anything outside the standard verbs into "other".
func normalizeMethod(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return method
	default:
		return "other"
	}
}
