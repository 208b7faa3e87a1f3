package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "prompt_rewards"

// Outcome labels for SubmissionTransitions.
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeNotPending = "not_pending"
	OutcomeFailed     = "failed"
)

var (
	SubmissionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submission_transitions_total",
		Help:      "Submission workflow invocations by action and outcome.",
	}, []string{"action", "outcome"})

	AssetsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assets_granted_total",
		Help:      "Asset quantity credited to owners, by asset kind and owner type.",
	}, []string{"kind", "owner"})
)
