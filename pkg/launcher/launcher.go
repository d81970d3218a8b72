// Package launcher starts the external renderer process.
//
// The renderer is created directly from an executable path and an argument
// vector; no shell is involved, so arguments are passed through byte for
// byte. Standard output is piped back to the caller for relaying; standard
// error is inherited.
//
// Each call to [Launcher.Start] creates a new independent process. The
// launcher does not track or limit how many are running.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	scerrors "github.com/matzehuels/scenelaunch/pkg/errors"
)

// DefaultGracePeriod is how long Terminate waits after the polite signal
// before killing the renderer.
const DefaultGracePeriod = 5 * time.Second

// Launcher knows where the renderer lives and how to start it.
type Launcher struct {
	// Path is the renderer executable. A bare name is resolved through PATH.
	Path string

	// Dir is the working directory of the renderer. Empty means the
	// launcher's own working directory.
	Dir string

	// Env holds extra environment variables layered over the inherited
	// environment.
	Env map[string]string

	// GracePeriod overrides DefaultGracePeriod for Terminate.
	GracePeriod time.Duration

	Logger *log.Logger
}

// New creates a launcher for the given renderer executable.
func New(path string, logger *log.Logger) *Launcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Launcher{Path: path, Logger: logger}
}

// Start creates the renderer process with argv as its arguments and returns
// once the process is running. Any failure is reported as LAUNCH_FAILED with
// the operating system's reason attached.
func (l *Launcher) Start(ctx context.Context, argv []string) (*Process, error) {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := scerrors.ValidateExecutablePath(l.Path); err != nil {
		return nil, scerrors.Wrap(scerrors.ErrCodeLaunchFailed, err, "invalid renderer path")
	}
	if err := ctx.Err(); err != nil {
		return nil, scerrors.Wrap(scerrors.ErrCodeLaunchFailed, err, "start %s", l.Path)
	}

	// The renderer outlives ctx on purpose; use Terminate to stop it.
	cmd := exec.Command(l.Path, argv...)
	cmd.Dir = l.Dir
	cmd.Stderr = os.Stderr
	if len(l.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range l.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, scerrors.Wrap(scerrors.ErrCodeLaunchFailed, err, "create stdout pipe")
	}

	if err := cmd.Start(); err != nil {
		stdout.Close()
		return nil, scerrors.Wrap(scerrors.ErrCodeLaunchFailed, err, "start %s", l.Path)
	}

	grace := l.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}

	p := &Process{
		ID:      uuid.New().String(),
		Path:    l.Path,
		Args:    append([]string(nil), argv...),
		cmd:     cmd,
		stdout:  stdout,
		started: time.Now(),
		grace:   grace,
		done:    make(chan struct{}),
	}
	logger.Debug("renderer started", "id", p.ID, "pid", cmd.Process.Pid, "path", l.Path, "args", argv)
	return p, nil
}

// =============================================================================
// Process
// =============================================================================

// ExitResult describes how the renderer ended.
type ExitResult struct {
	// ExitCode is the process exit status, or -1 if it was killed by a
	// signal or never reported one.
	ExitCode int

	// Duration is the wall time from start to exit.
	Duration time.Duration
}

// Process is one running renderer.
type Process struct {
	ID   string
	Path string
	Args []string

	cmd     *exec.Cmd
	stdout  io.ReadCloser
	started time.Time
	grace   time.Duration

	waitOnce sync.Once
	done     chan struct{}
	result   ExitResult
	waitErr  error
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Stdout returns the renderer's standard output stream. It reaches EOF when
// the renderer exits.
func (p *Process) Stdout() io.Reader {
	return p.stdout
}

// Wait blocks until the renderer exits and returns its exit result. A
// non-zero exit status is a result, not an error. Wait must not be called
// before all reads from Stdout have finished. It is safe to call more than
// once.
func (p *Process) Wait() (ExitResult, error) {
	p.waitOnce.Do(func() {
		defer close(p.done)
		err := p.cmd.Wait()
		p.result = ExitResult{ExitCode: 0, Duration: time.Since(p.started)}
		if err == nil {
			return
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			p.result.ExitCode = exitErr.ExitCode()
			return
		}
		p.result.ExitCode = -1
		p.waitErr = err
	})
	return p.result, p.waitErr
}

// Exited is closed once Wait has returned.
func (p *Process) Exited() <-chan struct{} {
	return p.done
}

// Terminate asks the renderer to stop with SIGTERM and kills it if it has
// not been reaped by Wait within the grace period or before ctx is done.
// Platforms that cannot deliver SIGTERM get an immediate kill.
func (p *Process) Terminate(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	default:
	}

	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return p.kill()
	}

	timer := time.NewTimer(p.grace)
	defer timer.Stop()

	select {
	case <-p.done:
		return nil
	case <-timer.C:
		return p.kill()
	case <-ctx.Done():
		if err := p.kill(); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (p *Process) kill() error {
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill renderer: %w", err)
	}
	return nil
}
