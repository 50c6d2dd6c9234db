// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pocsclinic"

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// ArticleLoads counts article body loads by language and outcome
	// ("document" or "fallback").
	ArticleLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "article_loads_total",
			Help:      "Article body loads by language and outcome",
		},
		[]string{"lang", "outcome"},
	)

	PageCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "page_lookups_total",
			Help:      "Rendered page cache lookups by result",
		},
		[]string{"result"},
	)

	RegistryPosts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "posts",
			Help:      "Number of published post records currently loaded",
		},
	)

	RegistryReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "reloads_total",
			Help:      "Registry reloads by result",
		},
		[]string{"result"},
	)

	AssessmentVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assessment",
			Name:      "verdicts_total",
			Help:      "Completed self-assessments by verdict",
		},
		[]string{"verdict"},
	)

	ContactRelays = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "relays_total",
			Help:      "Contact form relays by result",
		},
		[]string{"result"},
	)
)

// Result labels shared by the counters above.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultHit   = "hit"
	ResultMiss  = "miss"
)

// ObserveArticleLoad records whether an article body came from its
// document or from the generated fallback.
func ObserveArticleLoad(lang string, fallback bool) {
	outcome := "document"
	if fallback {
		outcome = "fallback"
	}
	ArticleLoads.WithLabelValues(lang, outcome).Inc()
}

// ObserveCacheLookup records a page cache hit or miss.
func ObserveCacheLookup(hit bool) {
	if hit {
		PageCacheLookups.WithLabelValues(ResultHit).Inc()
		return
	}
	PageCacheLookups.WithLabelValues(ResultMiss).Inc()
}

// ObserveReload records a registry reload and the resulting record count.
func ObserveReload(posts int, err error) {
	if err != nil {
		RegistryReloads.WithLabelValues(ResultError).Inc()
		return
	}
	RegistryReloads.WithLabelValues(ResultOK).Inc()
	RegistryPosts.Set(float64(posts))
}

// ObserveRelay records a contact relay attempt.
func ObserveRelay(err error) {
	if err != nil {
		ContactRelays.WithLabelValues(ResultError).Inc()
		return
	}
	ContactRelays.WithLabelValues(ResultOK).Inc()
}
