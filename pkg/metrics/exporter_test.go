package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfeed/hftcore/pkg/monitor"
)

func TestSamplePublishesCurrentStats(t *testing.T) {
	mon := monitor.New()
	mon.StartMonitoring()
	mon.RecordLatency(5 * time.Millisecond)
	mon.RecordOperation(128)

	e := NewExporter("hftcore_test", mon)
	e.Sample()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "hftcore_test_latency_p99_nanoseconds")
	assert.Contains(t, body, "hftcore_test_messages_total 1")
	assert.Contains(t, body, "hftcore_test_bytes_total 128")
}

func TestServeBackgroundSamplesUntilStopped(t *testing.T) {
	mon := monitor.New()
	mon.StartMonitoring()
	e := NewExporter("hftcore_bg", mon)

	stop := make(chan struct{})
	e.ServeBackground(5*time.Millisecond, stop)
	time.Sleep(20 * time.Millisecond)
	close(stop)
}
