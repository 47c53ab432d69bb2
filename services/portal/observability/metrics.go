// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the portal.
// Exposed on /metrics for Prometheus scraping.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "hackathontwin"

// Metrics holds all Prometheus instruments for the portal. Initialize once
// at startup via InitMetrics.
type Metrics struct {
	// ChatRequestsTotal counts chat turns by endpoint and status.
	// Labels: endpoint (chat, chat_new, summary, rag_chat), status (success, error)
	ChatRequestsTotal *prometheus.CounterVec

	// EmailsTotal counts delivery attempts by outcome.
	// Labels: outcome (sent, failed)
	EmailsTotal *prometheus.CounterVec

	// CampaignsTotal counts campaign runs by status.
	// Labels: status (success, error)
	CampaignsTotal *prometheus.CounterVec

	// ActiveSessions tracks live chat sessions.
	ActiveSessions prometheus.Gauge

	// LLMDurationSeconds measures LLM round-trip latency by operation.
	// Labels: operation (chat, compose, rag)
	LLMDurationSeconds *prometheus.HistogramVec
}

// DefaultMetrics is the singleton instance, set by InitMetrics.
var DefaultMetrics *Metrics

// InitMetrics registers all instruments with the default registry. Call once
// at application startup.
func InitMetrics() *Metrics {
	m := &Metrics{
		ChatRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "chat_requests_total",
			Help:      "Chat turns processed, by endpoint and status.",
		}, []string{"endpoint", "status"}),
		EmailsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "emails_total",
			Help:      "Outreach email delivery attempts, by outcome.",
		}, []string{"outcome"}),
		CampaignsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "campaigns_total",
			Help:      "Outreach campaign runs, by status.",
		}, []string{"status"}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_chat_sessions",
			Help:      "Currently stored chat sessions.",
		}),
		LLMDurationSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "llm_duration_seconds",
			Help:      "LLM round-trip latency, by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"operation"}),
	}
	DefaultMetrics = m
	return m
}

// RecordChat increments the chat counter; a nil DefaultMetrics is a no-op so
// handlers stay testable without registry setup.
func RecordChat(endpoint string, err error) {
	if DefaultMetrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	DefaultMetrics.ChatRequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordEmail increments the delivery counter.
func RecordEmail(sent bool) {
	if DefaultMetrics == nil {
		return
	}
	outcome := "failed"
	if sent {
		outcome = "sent"
	}
	DefaultMetrics.EmailsTotal.WithLabelValues(outcome).Inc()
}

// SetActiveSessions updates the live-session gauge.
func SetActiveSessions(n int) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.ActiveSessions.Set(float64(n))
}

// RecordCampaign increments the campaign counter.
func RecordCampaign(err error) {
	if DefaultMetrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	DefaultMetrics.CampaignsTotal.WithLabelValues(status).Inc()
}
