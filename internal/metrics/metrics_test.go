package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountersIncrement(t *testing.T) {
	m := New()
	m.Submission(OutcomeOK)
	m.Submission(OutcomeOK)
	m.Submission(OutcomeInvalid)
	m.Mutation("delete", OutcomeNotFound)
	m.Login(OutcomeDenied)
	m.Lookup(OutcomeNoMatch)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("delete", OutcomeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues(OutcomeDenied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues(OutcomeNoMatch)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.Submission(OutcomeOK)
		m.Mutation("update", OutcomeOK)
		m.Login(OutcomeOK)
		m.Lookup(OutcomeOK)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Login(OutcomeOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `expo_admin_logins_total{outcome="ok"} 1`)
}
