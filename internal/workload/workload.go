// Package workload runs synthetic, instrumented work described by a TOML file.
package workload

import (
	"errors"
	"fmt"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
)

const (
	DefaultWorkers = 4
	DefaultTasks   = 16
	DefaultDepth   = 2
	DefaultWork    = 2 * time.Millisecond
)

// ErrWorkloadSectionMissing indicates that [workload] is missing in a workload file.
var ErrWorkloadSectionMissing = errors.New("missing [workload]")

// Spec describes a synthetic workload.
type Spec struct {
	Name    string
	Workers int           // goroutines
	Tasks   int           // tasks per worker
	Depth   int           // nested scopes per task
	Work    time.Duration // simulated work per leaf scope
}

type workloadFile struct {
	Workload struct {
		Name    string `toml:"name"`
		Workers int64  `toml:"workers"`
		Tasks   int64  `toml:"tasks"`
		Depth   int64  `toml:"depth"`
		Work    string `toml:"work"`
	} `toml:"workload"`
}

// Default returns the workload used when no file is given.
func Default() Spec {
	return Spec{
		Name:    "default",
		Workers: DefaultWorkers,
		Tasks:   DefaultTasks,
		Depth:   DefaultDepth,
		Work:    DefaultWork,
	}
}

// Load parses a workload description from a TOML file.
func Load(path string) (Spec, error) {
	var f workloadFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Spec{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("workload") {
		return Spec{}, fmt.Errorf("%s: %w", path, ErrWorkloadSectionMissing)
	}

	spec := Default()
	w := f.Workload
	if w.Name != "" {
		spec.Name = w.Name
	}
	if spec.Workers, err = count(w.Workers, DefaultWorkers); err != nil {
		return Spec{}, fmt.Errorf("%s: workers: %w", path, err)
	}
	if spec.Tasks, err = count(w.Tasks, DefaultTasks); err != nil {
		return Spec{}, fmt.Errorf("%s: tasks: %w", path, err)
	}
	// Zero nesting is a valid request, so only an absent or negative depth
	// falls back to the default.
	if meta.IsDefined("workload", "depth") && w.Depth >= 0 {
		if spec.Depth, err = safecast.Conv[int](w.Depth); err != nil {
			return Spec{}, fmt.Errorf("%s: depth: %w", path, err)
		}
	}
	if w.Work != "" {
		d, err := time.ParseDuration(w.Work)
		if err != nil {
			return Spec{}, fmt.Errorf("%s: work: %w", path, err)
		}
		if d >= 0 {
			spec.Work = d
		}
	}
	return spec, nil
}

// count converts a TOML integer, falling back to def for non-positive values.
func count(v int64, def int) (int, error) {
	if v <= 0 {
		return def, nil
	}
	return safecast.Conv[int](v)
}
