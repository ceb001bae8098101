package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"instrumentor/internal/trace"
	"instrumentor/internal/workload"
)

type runOptions struct {
	session string
	out     string
	file    string
	workers int
	tasks   int
	depth   int
	work    time.Duration
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workload inside a profiling session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := resolveWorkload(cmd, opts)
			if err != nil {
				return err
			}

			in, cleanup, err := setupInstrumentor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			session := opts.session
			if session == "" {
				session = spec.Name
			}
			in.BeginSession(session, opts.out)
			if _, ok := in.Active(); !ok {
				return fmt.Errorf("could not start session %q at %s", session, opts.out)
			}

			n, err := workload.Run(cmd.Context(), spec)
			in.EndSession()
			if err != nil {
				return fmt.Errorf("workload %q failed: %w", spec.Name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "recorded %d spans to %s\n", n, opts.out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.session, "session", "", "session name (default: workload name)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", trace.DefaultPath, "trace output file")
	cmd.Flags().StringVar(&opts.file, "workload", "", "TOML workload description")
	cmd.Flags().IntVar(&opts.workers, "workers", workload.DefaultWorkers, "worker goroutines")
	cmd.Flags().IntVar(&opts.tasks, "tasks", workload.DefaultTasks, "tasks per worker")
	cmd.Flags().IntVar(&opts.depth, "depth", workload.DefaultDepth, "nested scopes per task")
	cmd.Flags().DurationVar(&opts.work, "work", workload.DefaultWork, "simulated work per leaf scope")
	return cmd
}

// resolveWorkload loads the workload file if given; explicitly set flags
// override values from the file.
func resolveWorkload(cmd *cobra.Command, opts runOptions) (workload.Spec, error) {
	spec := workload.Default()
	if opts.file != "" {
		loaded, err := workload.Load(opts.file)
		if err != nil {
			return workload.Spec{}, err
		}
		spec = loaded
	}

	flags := cmd.Flags()
	if opts.file == "" || flags.Changed("workers") {
		spec.Workers = opts.workers
	}
	if opts.file == "" || flags.Changed("tasks") {
		spec.Tasks = opts.tasks
	}
	if opts.file == "" || flags.Changed("depth") {
		spec.Depth = opts.depth
	}
	if opts.file == "" || flags.Changed("work") {
		spec.Work = opts.work
	}

	if spec.Workers <= 0 || spec.Tasks <= 0 || spec.Depth < 0 {
		return workload.Spec{}, fmt.Errorf("workers and tasks must be positive and depth non-negative (got %d, %d, %d)",
			spec.Workers, spec.Tasks, spec.Depth)
	}
	return spec, nil
}
