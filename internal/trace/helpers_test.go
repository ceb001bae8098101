package trace

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type chromeEvent struct {
	Cat  string  `json:"cat"`
	Dur  float64 `json:"dur"`
	Name string  `json:"name"`
	Ph   string  `json:"ph"`
	Pid  int     `json:"pid"`
	Tid  uint64  `json:"tid"`
	Ts   float64 `json:"ts"`
}

type chromeTrace struct {
	OtherData   map[string]any `json:"otherData"`
	TraceEvents []chromeEvent  `json:"traceEvents"`
}

// readTrace parses a finished trace file and returns its span events, without
// the leading empty placeholder object.
func readTrace(t *testing.T, path string) []chromeEvent {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var tr chromeTrace
	require.NoError(t, json.Unmarshal(data, &tr), "trace is not valid JSON: %s", data)
	require.NotNil(t, tr.OtherData)
	require.NotEmpty(t, tr.TraceEvents, "missing placeholder event")
	require.Equal(t, chromeEvent{}, tr.TraceEvents[0])
	return tr.TraceEvents[1:]
}

func observedLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}
