package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daily_report_events_received_total",
		Help: "Inbound Slack interaction payloads by type",
	}, []string{"type"})

	reportsPosted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daily_report_posted_total",
		Help: "Reports posted to the channel by flow",
	}, []string{"flow"})

	lookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daily_report_issue_lookup_failures_total",
		Help: "Issue lookups that degraded to an empty list",
	}, []string{"workspace"})
)
