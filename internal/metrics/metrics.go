// Package metrics defines the Prometheus instruments for the host locator.
// Counters are registered once via promauto at package init; the /metrics
// endpoint is mounted in main.go with promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method and status class.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostlocator_http_requests_total",
		Help: "Total number of HTTP requests handled.",
	}, []string{"method", "status"})

	// LocatorSearchesTotal counts volunteer locator searches.
	LocatorSearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostlocator_locator_searches_total",
		Help: "Total number of locator host searches served.",
	})

	// CalendarEventsTotal counts generated ICS downloads.
	CalendarEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostlocator_calendar_events_total",
		Help: "Total number of calendar events generated.",
	})

	// GeocodeErrorsTotal counts failed address geocoding attempts.
	GeocodeErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostlocator_geocode_errors_total",
		Help: "Total number of geocoding failures during locator searches.",
	})
)
