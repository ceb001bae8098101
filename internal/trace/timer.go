package trace

import (
	"runtime"
	"time"
)

// Timer measures one region and reports it to its Instrumentor exactly once.
// A Timer belongs to the scope that created it and is not safe for concurrent
// use.
//
//	defer in.Scope("load").Stop()
type Timer struct {
	in      *Instrumentor
	name    string
	start   time.Time
	stopped bool
}

// Scope starts a timer for the named region.
func (in *Instrumentor) Scope(name string) *Timer {
	if in == nil {
		return &Timer{name: name}
	}
	return &Timer{
		in:    in,
		name:  name,
		start: in.clock.Now(),
	}
}

// Function starts a timer named after the calling function, e.g.
// "instrumentor/internal/workload.(*Runner).task".
func (in *Instrumentor) Function() *Timer {
	return in.Scope(callerName(2))
}

// Stop ends the region and reports it. Only the first call has an effect.
func (t *Timer) Stop() {
	if t == nil || t.stopped {
		return
	}
	t.stopped = true
	if t.in == nil {
		return
	}

	end := t.in.clock.Now()
	t.in.WriteProfile(ProfileResult{
		Name:     t.name,
		Start:    t.start.Sub(t.in.epoch),
		Elapsed:  end.Sub(t.start).Truncate(time.Microsecond),
		ThreadID: currentThreadID(),
	})
}

// callerName returns the function name skip frames above its own caller.
func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}
