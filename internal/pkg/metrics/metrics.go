package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SuggestionsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorhub_match_suggestions_computed_total",
		Help: "Match suggestions produced per mentorship type.",
	}, []string{"type"})

	ApprovalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorhub_match_approvals_total",
		Help: "Approved mentorship pairings per type.",
	}, []string{"type"})

	DuplicateRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentorhub_match_duplicate_rejections_total",
		Help: "Approvals rejected because an identical ACTIVE pairing exists.",
	})

	RateLimitedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentorhub_http_rate_limited_total",
		Help: "Requests rejected by the fixed-window rate limiter.",
	})
)
