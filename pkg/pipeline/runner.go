package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenelaunch/pkg/args"
	"github.com/matzehuels/scenelaunch/pkg/errors"
	"github.com/matzehuels/scenelaunch/pkg/launcher"
	"github.com/matzehuels/scenelaunch/pkg/observability"
	"github.com/matzehuels/scenelaunch/pkg/relay"
	"github.com/matzehuels/scenelaunch/pkg/settings"
)

// Runner launches the renderer for CLI and TUI callers.
//
// The Runner holds no per-launch state; every Launch returns its own [Run].
// It does not limit how many renderers run at once.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Launch encodes snap, starts the renderer and begins relaying its output.
// It returns as soon as the process is running. On failure the returned
// error is LAUNCH_FAILED and no output is relayed.
func (r *Runner) Launch(ctx context.Context, snap settings.RenderSettings, opts Options, ev Events) (*Run, error) {
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLaunchFailed, err, "invalid launch options")
	}

	argv := args.Encode(snap)
	hooks := observability.Launch()
	hooks.OnLaunchStart(ctx, opts.Renderer, argv)

	l := launcher.New(opts.Renderer, logger)
	l.Dir = opts.Dir
	l.Env = opts.Env
	l.GracePeriod = opts.GracePeriod

	start := time.Now()
	proc, err := l.Start(ctx, argv)
	hooks.OnLaunchComplete(ctx, procID(proc), time.Since(start), err)
	if err != nil {
		logger.Error("launch failed", "renderer", opts.Renderer, "err", err)
		return nil, err
	}

	logger.Info("renderer started",
		"id", proc.ID,
		"pid", proc.Pid(),
		"args", args.String(snap))

	sink := ev.Sink
	if sink == nil {
		sink = relay.LoggerSink{Logger: logger}
	}
	queue := relay.NewQueueSink(relay.SinkFunc(func(line string) {
		hooks.OnLine(ctx, proc.ID, line)
		sink.Line(line)
	}), opts.QueueLimit)

	run := &Run{
		proc: proc,
		argv: argv,
		done: make(chan struct{}),
	}
	rl := relay.Start(proc.Stdout(), queue)

	go func() {
		defer close(run.done)

		rl.Wait()
		queue.Close()
		res, werr := proc.Wait()

		exit := Exit{
			ID:       proc.ID,
			ExitCode: res.ExitCode,
			Duration: res.Duration,
			Lines:    rl.Lines(),
			Dropped:  queue.Dropped(),
			ReadErr:  rl.Err(),
			WaitErr:  werr,
		}
		if exit.ReadErr != nil {
			logger.Warn("renderer output ended early", "id", proc.ID, "err", exit.ReadErr)
		}
		if exit.Dropped > 0 {
			logger.Warn("renderer output dropped", "id", proc.ID, "lines", exit.Dropped)
		}
		logger.Debug("renderer exited",
			"id", proc.ID,
			"code", exit.ExitCode,
			"lines", exit.Lines,
			"duration", exit.Duration.Round(time.Millisecond))

		hooks.OnExit(ctx, proc.ID, exit.ExitCode, exit.Duration)

		run.mu.Lock()
		run.exit = exit
		run.mu.Unlock()

		if ev.OnExit != nil {
			ev.OnExit(exit)
		}
	}()

	return run, nil
}

func procID(p *launcher.Process) string {
	if p == nil {
		return ""
	}
	return p.ID
}

// =============================================================================
// Run
// =============================================================================

// Run is one launched renderer.
type Run struct {
	proc *launcher.Process
	argv []string
	done chan struct{}

	mu   sync.Mutex
	exit Exit
}

// ID returns the launch ID.
func (r *Run) ID() string { return r.proc.ID }

// Pid returns the renderer's process id.
func (r *Run) Pid() int { return r.proc.Pid() }

// Args returns the argument vector the renderer was started with.
func (r *Run) Args() []string { return append([]string(nil), r.argv...) }

// Done is closed after the renderer exited, its output was delivered and
// OnExit returned.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until Done and returns the exit event.
func (r *Run) Wait() Exit {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exit
}

// Terminate asks the renderer to stop, killing it after the grace period.
func (r *Run) Terminate(ctx context.Context) error {
	return r.proc.Terminate(ctx)
}
