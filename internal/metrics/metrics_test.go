package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSubmissionTransitions(t *testing.T) {
	before := testutil.ToFloat64(SubmissionTransitions.WithLabelValues("approve", OutcomeOK))

	SubmissionTransitions.WithLabelValues("approve", OutcomeOK).Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(SubmissionTransitions.WithLabelValues("approve", OutcomeOK)))
}

func TestAssetsGranted(t *testing.T) {
	before := testutil.ToFloat64(AssetsGranted.WithLabelValues("Currency", "User"))

	AssetsGranted.WithLabelValues("Currency", "User").Add(10)

	assert.Equal(t, before+10, testutil.ToFloat64(AssetsGranted.WithLabelValues("Currency", "User")))
}
