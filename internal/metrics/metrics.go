// Package metrics exposes Prometheus collectors for reminder activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "meterbot"

// Metrics holds the bot's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	remindersSent    prometheus.Counter
	deliveryFailures prometheus.Counter
	resets           prometheus.Counter
	commands         *prometheus.CounterVec
	taskRuns         *prometheus.CounterVec
}

// MustNew constructs Metrics and registers them with reg. Registration
// errors panic, mirroring promauto.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Reminders delivered to the subscribed chat.",
		}),
		deliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_delivery_failures_total",
			Help:      "Reminders the transport failed to deliver.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "monthly_resets_total",
			Help:      "Monthly state resets applied.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands handled, by action and outcome.",
		}, []string{"action", "outcome"}),
		taskRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_task_runs_total",
			Help:      "Scheduled task runs, by task and result.",
		}, []string{"task", "result"}),
	}
	reg.MustRegister(m.remindersSent, m.deliveryFailures, m.resets, m.commands, m.taskRuns)
	return m
}

// ReminderSent counts a delivered reminder.
func (m *Metrics) ReminderSent() {
	if m == nil {
		return
	}
	m.remindersSent.Inc()
}

// DeliveryFailed counts a failed reminder delivery.
func (m *Metrics) DeliveryFailed() {
	if m == nil {
		return
	}
	m.deliveryFailures.Inc()
}

// Reset counts a monthly reset.
func (m *Metrics) Reset() {
	if m == nil {
		return
	}
	m.resets.Inc()
}

// Command counts a handled command.
func (m *Metrics) Command(action, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(action, outcome).Inc()
}

// TaskRun counts a scheduled task run. result is "ok", "error" or "skipped".
func (m *Metrics) TaskRun(task, result string) {
	if m == nil {
		return
	}
	m.taskRuns.WithLabelValues(task, result).Inc()
}
