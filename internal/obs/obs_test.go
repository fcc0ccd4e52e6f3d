package obs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := ZerologLogger{L: zerolog.New(&buf)}

	l.Logf(Info, "hello %s", "world")
	l.Logf(Error, "boom")

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "boom")
}

func TestZerologLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := ZerologLogger{L: zerolog.New(&buf).Level(zerolog.InfoLevel)}
	l.Logf(Debug, "hidden")
	assert.Empty(t, buf.String())
}

func TestPromMeter_Counter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPromMeter(reg)

	m.Counter("test_requests_total", 1, Label{Key: "class", Value: "2xx"})
	m.Counter("test_requests_total", 2, Label{Key: "class", Value: "2xx"})
	m.Counter("test_requests_total", 1, Label{Key: "class", Value: "4xx"})

	cv := m.counters["test_requests_total"]
	require.NotNil(t, cv)
	assert.Equal(t, 3.0, testutil.ToFloat64(cv.WithLabelValues("2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(cv.WithLabelValues("4xx")))
}

func TestPromMeter_Histogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPromMeter(reg)

	m.Histogram("test_duration_seconds", 0.05)
	m.Histogram("test_duration_seconds", 0.2)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	assert.Equal(t, "test_duration_seconds", mfs[0].GetName())
	assert.Equal(t, uint64(2), mfs[0].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestPromMeter_LabelOrderCanonical(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPromMeter(reg)

	// The same labels in any order hit the same series.
	m.Counter("test_ordered_total", 1, Label{Key: "a", Value: "1"}, Label{Key: "b", Value: "2"})
	m.Counter("test_ordered_total", 1, Label{Key: "b", Value: "2"}, Label{Key: "a", Value: "1"})

	cv := m.counters["test_ordered_total"]
	require.NotNil(t, cv)
	assert.Equal(t, 2.0, testutil.ToFloat64(cv.WithLabelValues("1", "2")))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", Debug.String())
	assert.Equal(t, "ERROR", Error.String())
	assert.True(t, strings.HasPrefix(Level(99).String(), "UNKNOWN"))
}
