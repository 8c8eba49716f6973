// Package metrics collects and exposes Prometheus metrics for watch mode.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the surface the reminder and sync layers record through.
type Recorder interface {
	RecordRemindersFired(count int)
	RecordCheckFailure()
	RecordSyncSuccess()
	RecordSyncFailure()
	RecordUpdatesApplied(count int)
	RecordEmailFailure()
}

// Collector implements Recorder on Prometheus counters.
type Collector struct {
	remindersFired prometheus.Counter
	checkFailures  prometheus.Counter
	syncSuccess    prometheus.Counter
	syncFailure    prometheus.Counter
	updatesApplied prometheus.Counter
	emailFailures  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		remindersFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subtrack_reminders_fired_total",
			Help: "Total reminders fired across all checks",
		}),
		checkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subtrack_reminder_check_failures_total",
			Help: "Total reminder checks that failed before delivery",
		}),
		syncSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subtrack_sync_success_total",
			Help: "Total successful sync exchanges",
		}),
		syncFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subtrack_sync_failure_total",
			Help: "Total failed sync exchanges",
		}),
		updatesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subtrack_sync_updates_applied_total",
			Help: "Total remote updates applied to the local store",
		}),
		emailFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subtrack_email_send_failures_total",
			Help: "Total reminder emails that failed to send",
		}),
	}

	reg.MustRegister(
		c.remindersFired,
		c.checkFailures,
		c.syncSuccess,
		c.syncFailure,
		c.updatesApplied,
		c.emailFailures,
	)

	return c
}

// RecordRemindersFired records reminders fired by one check.
func (c *Collector) RecordRemindersFired(count int) {
	c.remindersFired.Add(float64(count))
}

// RecordCheckFailure records one failed reminder check.
func (c *Collector) RecordCheckFailure() {
	c.checkFailures.Inc()
}

// RecordSyncSuccess records one successful sync exchange.
func (c *Collector) RecordSyncSuccess() {
	c.syncSuccess.Inc()
}

// RecordSyncFailure records one failed sync exchange.
func (c *Collector) RecordSyncFailure() {
	c.syncFailure.Inc()
}

// RecordUpdatesApplied records remote updates applied to the store.
func (c *Collector) RecordUpdatesApplied(count int) {
	c.updatesApplied.Add(float64(count))
}

// RecordEmailFailure records one reminder email that failed to send.
func (c *Collector) RecordEmailFailure() {
	c.emailFailures.Inc()
}

// Handler returns the Prometheus scrape handler for the gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute returns a mux serving the /metrics endpoint.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
