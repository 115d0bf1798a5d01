package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Init()
	Init()

	IncEdit("rename", nil)
	IncEdit("rename", errors.New("boom"))
	IncUndo(true)
	IncUndo(false)
	IncUndo(false)
	IncExport("pdf", nil)
	IncCapture("finished")
	ObserveAnalysis("svg", nil, 20*time.Millisecond)
	SetActiveSessions(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(editsTotal.WithLabelValues("rename", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(editsTotal.WithLabelValues("rename", ResultError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(undoTotal.WithLabelValues(UndoEmpty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(exportTotal.WithLabelValues("pdf", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(analysisTotal.WithLabelValues("svg", ResultSuccess)))
	assert.Equal(t, 3.0, testutil.ToFloat64(activeSessions))
}
