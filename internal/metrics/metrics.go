// Package metrics holds the Prometheus collectors of the booking service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
)

const namespace = "afterschool"

type Metrics struct {
	ordersPlaced     prometheus.Counter
	lessonsBooked    prometheus.Counter
	ordersRejected   *prometheus.CounterVec
	bookingConflicts prometheus.Counter
	lessonSpaces     *prometheus.GaugeVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers every collector with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		ordersPlaced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders accepted by the booking workflow.",
		}),
		lessonsBooked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lesson_seats_booked_total",
			Help:      "Seats taken by accepted orders.",
		}),
		ordersRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "Orders rejected by the booking workflow, by reason.",
		}, []string{"reason"}),
		bookingConflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Booking transactions aborted by a storage write conflict.",
		}),
		lessonSpaces: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lesson_spaces",
			Help:      "Seats left per lesson at the last refresh.",
		}, []string{"lesson_id", "subject", "location"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) OrderPlaced(lessons int) {
	m.ordersPlaced.Inc()
	m.lessonsBooked.Add(float64(lessons))
}

func (m *Metrics) OrderRejected(reason string) {
	m.ordersRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) BookingConflict() {
	m.bookingConflicts.Inc()
}

// SetLessonSpaces replaces the per-lesson gauges with the given snapshot.
func (m *Metrics) SetLessonSpaces(lessons []model.Lesson) {
	m.lessonSpaces.Reset()
	for _, l := range lessons {
		m.lessonSpaces.WithLabelValues(l.ID, l.Subject, l.Location).Set(float64(l.Spaces))
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
