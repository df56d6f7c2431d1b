package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestManagerRecordsImports(t *testing.T) {
	m := NewManager(prometheus.NewRegistry())

	m.RecordImport("csv", "success", 12)
	m.RecordImport("csv", "success", 3)
	m.RecordImport("csv", "empty", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.importsTotal.WithLabelValues("csv", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importsTotal.WithLabelValues("csv", "empty")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.shotsImported.WithLabelValues("csv")))
}

func TestManagerRecordsTextGeneration(t *testing.T) {
	m := NewManager(prometheus.NewRegistry())

	m.RecordTextGeneration("anthropic", "error")
	m.RecordTextGeneration("rules", "success")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.textGeneration.WithLabelValues("anthropic", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.textGeneration.WithLabelValues("rules", "success")))
}

func TestGlobalHelpersDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordImport("trackman", "success", 5)
		RecordTextGeneration("openai", "success")
		ObserveAnalysis(3 * time.Millisecond)
	})
	assert.NotNil(t, GetRegistry())
}
