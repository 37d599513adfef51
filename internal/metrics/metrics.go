package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "code"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	// Booking
	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders committed.",
		},
	)
	ticketsAllocated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_allocated_total",
			Help: "Total number of tickets written by the allocator.",
		},
	)
	allocationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_allocation_failures_total",
			Help: "Ticket allocations rejected, by reason.",
		},
		[]string{"reason"},
	)

	// Cache
	flightsCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flights_cache_requests_total",
			Help: "Flight list cache lookups by result.",
		},
		[]string{"result"},
	)
)

// Registry holds every collector of this service. A private registry keeps
// repeated registration in tests from panicking on the global one.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		ordersCreated,
		ticketsAllocated,
		allocationFailures,
		flightsCacheRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveHTTPRequest(method, route string, code int, d time.Duration) {
	c := strconv.Itoa(code)
	httpRequests.WithLabelValues(method, route, c).Inc()
	httpDuration.WithLabelValues(method, route, c).Observe(d.Seconds())
}

func IncOrdersCreated() { ordersCreated.Inc() }

func IncTicketsAllocated() { ticketsAllocated.Inc() }

// Allocation failure reasons.
const (
	ReasonSeatOutOfRange = "seat_out_of_range"
	ReasonSeatTaken      = "seat_taken"
	ReasonUnknownFlight  = "unknown_flight"
	ReasonError          = "error"
)

func IncAllocationFailure(reason string) {
	allocationFailures.WithLabelValues(reason).Inc()
}

func IncFlightsCache(hit bool) {
	if hit {
		flightsCacheRequests.WithLabelValues("hit").Inc()
		return
	}
	flightsCacheRequests.WithLabelValues("miss").Inc()
}
