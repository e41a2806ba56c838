package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
)

func TestBookingCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.OrderPlaced(3)
	m.OrderPlaced(1)
	m.OrderRejected("capacity_exceeded")
	m.BookingConflict()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersPlaced))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.lessonsBooked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersRejected.WithLabelValues("capacity_exceeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts))
}

func TestSetLessonSpacesDropsStaleSeries(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SetLessonSpaces([]model.Lesson{
		{ID: "a", Subject: "Art", Location: "Golders Green", Spaces: 5},
		{ID: "b", Subject: "Music", Location: "Hendon", Spaces: 2},
	})
	assert.Equal(t, 2, testutil.CollectAndCount(m.lessonSpaces))

	m.SetLessonSpaces([]model.Lesson{
		{ID: "a", Subject: "Art", Location: "Golders Green", Spaces: 4},
	})
	assert.Equal(t, 1, testutil.CollectAndCount(m.lessonSpaces))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.lessonSpaces.WithLabelValues("a", "Art", "Golders Green")))
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("GET", "/api/lessons", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "/api/lessons", 200, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/lessons", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpDuration))
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
