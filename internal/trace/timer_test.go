package trace

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

func TestTimerReportsElapsedAndStart(t *testing.T) {
	clock := clockz.NewFakeClock()
	path := filepath.Join(t.TempDir(), "trace.json")
	in := New(WithLogger(zap.NewNop()), WithClock(clock))
	in.BeginSession("App", path)

	clock.Advance(250 * time.Microsecond)
	timer := in.Scope("Load")
	clock.Advance(10 * time.Millisecond)
	timer.Stop()
	in.EndSession()

	events := readTrace(t, path)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "Load", ev.Name)
	assert.Equal(t, "X", ev.Ph)
	assert.Equal(t, 0, ev.Pid)
	assert.Equal(t, float64(10000), ev.Dur)
	assert.Equal(t, float64(250), ev.Ts)
	assert.Equal(t, uint64(currentThreadID()), ev.Tid)
}

func TestTimerTruncatesToMicroseconds(t *testing.T) {
	clock := clockz.NewFakeClock()
	path := filepath.Join(t.TempDir(), "trace.json")
	in := New(WithLogger(zap.NewNop()), WithClock(clock))
	in.BeginSession("App", path)

	timer := in.Scope("short")
	clock.Advance(1999 * time.Nanosecond)
	timer.Stop()
	in.EndSession()

	events := readTrace(t, path)
	require.Len(t, events, 1)
	assert.Equal(t, float64(1), events[0].Dur)
}

func TestTimerStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	in := New(WithLogger(zap.NewNop()))
	in.BeginSession("App", path)

	func() {
		timer := in.Scope("once")
		defer timer.Stop()
		timer.Stop()
	}()
	in.EndSession()

	assert.Len(t, readTrace(t, path), 1)
}

func TestTimerReportsOnEarlyReturnAndPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	in := New(WithLogger(zap.NewNop()))
	in.BeginSession("App", path)

	errEarly := errors.New("early")
	early := func() error {
		defer in.Scope("early").Stop()
		return errEarly
	}
	require.ErrorIs(t, early(), errEarly)

	assert.Panics(t, func() {
		defer in.Scope("panicking").Stop()
		panic("boom")
	})
	in.EndSession()

	events := readTrace(t, path)
	require.Len(t, events, 2)
	assert.Equal(t, "early", events[0].Name)
	assert.Equal(t, "panicking", events[1].Name)
}

func TestTimerOutsideSessionIsDropped(t *testing.T) {
	dir := t.TempDir()
	in := New(WithLogger(zap.NewNop()))

	timer := in.Scope("lonely")
	in.BeginSession("late", filepath.Join(dir, "late.json"))
	in.EndSession()
	timer.Stop()

	assert.Empty(t, readTrace(t, filepath.Join(dir, "late.json")))

	// The timer already reported once, even though nothing was recorded.
	in.BeginSession("later", filepath.Join(dir, "later.json"))
	timer.Stop()
	in.EndSession()
	assert.Empty(t, readTrace(t, filepath.Join(dir, "later.json")))
}

func TestTimerRealClock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	in := New(WithLogger(zap.NewNop()))
	in.BeginSession("App", path)

	func() {
		defer in.Scope("Load").Stop()
		time.Sleep(10 * time.Millisecond)
	}()
	in.EndSession()

	events := readTrace(t, path)
	require.Len(t, events, 1)
	assert.Equal(t, "Load", events[0].Name)
	assert.GreaterOrEqual(t, events[0].Dur, float64(10000))
	assert.Less(t, events[0].Dur, float64(time.Second/time.Microsecond))
	assert.GreaterOrEqual(t, events[0].Ts, float64(0))
}

func loadAssets(in *Instrumentor) {
	defer in.Function().Stop()
}

func TestFunctionUsesCallerName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	in := New(WithLogger(zap.NewNop()))
	in.BeginSession("App", path)
	loadAssets(in)
	in.EndSession()

	events := readTrace(t, path)
	require.Len(t, events, 1)
	assert.True(t, strings.HasSuffix(events[0].Name, "trace.loadAssets"), events[0].Name)
}

func TestCurrentThreadIDDistinguishesGoroutines(t *testing.T) {
	here := currentThreadID()
	require.NotZero(t, here)

	other := make(chan ThreadID)
	go func() { other <- currentThreadID() }()
	assert.NotEqual(t, here, <-other)
	assert.Equal(t, here, currentThreadID())
}
