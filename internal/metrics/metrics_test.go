package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSummary(t *testing.T) {
	before := testutil.ToFloat64(SummariesTotal.WithLabelValues("blocked"))

	ObserveSummary("blocked", 1500*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(SummariesTotal.WithLabelValues("blocked")))
}

func TestHandlerExposesNamespace(t *testing.T) {
	UploadsRejectedTotal.WithLabelValues("format").Inc()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `audio_summarizer_uploads_rejected_total{reason="format"}`))
}
