// README: Prometheus collectors for gateway calls, status transitions, and checkouts.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	gatewayCalls    *prometheus.CounterVec
	gatewayLatency  prometheus.Histogram
	transitions     *prometheus.CounterVec
	checkoutOutcome *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keepify_gateway_calls_total",
			Help: "Backend API calls by method, path, and status code.",
		}, []string{"method", "path", "status"}),
		gatewayLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "keepify_gateway_latency_seconds",
			Help:    "Backend API call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keepify_order_transitions_total",
			Help: "Order status transitions by target status.",
		}, []string{"to"}),
		checkoutOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keepify_checkout_total",
			Help: "Checkout submissions by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(c.gatewayCalls, c.gatewayLatency, c.transitions, c.checkoutOutcome)
	return c
}

// RecordGatewayCall implements backend.Recorder; status 0 means a transport
// failure before any response.
func (c *Collector) RecordGatewayCall(method, path string, status int, d time.Duration) {
	c.gatewayCalls.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.gatewayLatency.Observe(d.Seconds())
}

func (c *Collector) RecordTransition(to string) {
	c.transitions.WithLabelValues(to).Inc()
}

func (c *Collector) RecordCheckout(ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	c.checkoutOutcome.WithLabelValues(outcome).Inc()
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
