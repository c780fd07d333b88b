package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var namespace = "alpaca"
var subsystem = "bizcal"

var (
	// CalendarBuildsTotal stores the number of calendar builds partitioned by
	// calendar name and result ("ok" or "error")
	CalendarBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "calendar_builds_total",
		Help:      "Number of calendar builds partitioned by calendar and result",
	}, []string{"calendar", "result"})

	// CalendarBuildDuration stores the time taken to evaluate the holiday rules
	CalendarBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "calendar_build_duration_seconds",
		Help:      "Time taken to evaluate the holiday rules of a calendar",
	}, []string{"calendar"})

	// CalendarHolidays stores the number of holidays of the last built calendar
	CalendarHolidays = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "calendar_holidays",
		Help:      "Number of holidays in the most recently built calendar",
	}, []string{"calendar"})

	// StoreOperationsTotal stores the number of record store operations
	// partitioned by entity, operation and result
	StoreOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "store_operations_total",
		Help:      "Number of record store operations partitioned by entity, operation and result",
	}, []string{"entity", "op", "result"})
)

// Result returns the label value for the outcome of an operation.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
