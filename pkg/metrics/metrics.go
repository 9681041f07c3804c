// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package metrics exposes prometheus collectors describing the traffic a
// job client sends to the scheduler.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cook_client"

// Metrics holds every collector of a job client. The zero value is not
// usable, use New. A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transportErrors *prometheus.CounterVec
	waitPolls       prometheus.Counter
	waitPollErrors  prometheus.Counter
	jobsSubmitted   prometheus.Counter
}

// New creates the collectors and registers them on reg. If reg is nil the
// collectors are not registered anywhere, which is what tests want.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests sent to the scheduler, by method, endpoint and status code",
		}, []string{"method", "endpoint", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of requests sent to the scheduler",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		transportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_errors_total",
			Help:      "Requests that did not get any response (connection errors, timeouts)",
		}, []string{"method", "endpoint"}),
		waitPolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wait_polls_total",
			Help:      "Polling passes performed while waiting for jobs",
		}),
		waitPollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wait_poll_errors_total",
			Help:      "Polling passes that failed and were retried",
		}),
		jobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_submitted_total",
			Help:      "Jobs acknowledged by the scheduler",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.requests, m.requestDuration, m.transportErrors, m.waitPolls, m.waitPollErrors, m.jobsSubmitted} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// ObserveRequest records a request that got a response.
func (m *Metrics) ObserveRequest(method, endpoint string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// ObserveTransportError records a request that got no response.
func (m *Metrics) ObserveTransportError(method, endpoint string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.transportErrors.WithLabelValues(method, endpoint).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// WaitPoll records one polling pass; failed tells whether it errored.
func (m *Metrics) WaitPoll(failed bool) {
	if m == nil {
		return
	}
	m.waitPolls.Inc()
	if failed {
		m.waitPollErrors.Inc()
	}
}

// JobsSubmitted records jobs accepted by the scheduler.
func (m *Metrics) JobsSubmitted(n int) {
	if m == nil {
		return
	}
	m.jobsSubmitted.Add(float64(n))
}
