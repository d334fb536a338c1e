package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecorded(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := MustNew(reg)

	m.ReminderSent()
	m.ReminderSent()
	m.DeliveryFailed()
	m.Reset()
	m.Command("done", "first_completion")
	m.TaskRun("reading_reminder", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.remindersSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deliveryFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resets))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("done", "first_completion")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.taskRuns.WithLabelValues("reading_reminder", "ok")))

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ReminderSent()
		m.DeliveryFailed()
		m.Reset()
		m.Command("status", "pending")
		m.TaskRun("monthly_reset", "skipped")
	})
}
