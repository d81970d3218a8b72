// Package pipeline implements the settings → arguments → process → output
// flow that runs when the user triggers a launch.
//
// # Architecture
//
// A launch consists of four steps:
//
//  1. Snapshot: the caller hands over a settings.RenderSettings value
//  2. Encode: args.Encode turns it into the renderer's argument vector
//  3. Start: launcher.Launcher creates the renderer process
//  4. Relay: relay.Start streams stdout lines to the caller's sink
//
// When the output stream ends the pipeline reaps the process and reports an
// [Exit] event carrying the exit code, so callers learn when and how the
// renderer ended.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	run, err := runner.Launch(ctx, model.Snapshot(), pipeline.Options{
//	    Renderer: "VulkanScene.exe",
//	}, pipeline.Events{
//	    Sink:   relay.NewWriterSink(os.Stdout),
//	    OnExit: func(e pipeline.Exit) { fmt.Println("exit", e.ExitCode) },
//	})
//	if err != nil {
//	    // LAUNCH_FAILED: the relay never started
//	}
//	exit := run.Wait()
package pipeline

import (
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenelaunch/pkg/errors"
	"github.com/matzehuels/scenelaunch/pkg/relay"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and TUI
// =============================================================================

// DefaultRenderer returns the renderer executable name used when neither
// config nor flags name one.
func DefaultRenderer() string {
	if runtime.GOOS == "windows" {
		return "VulkanScene.exe"
	}
	return "VulkanScene"
}

// DefaultQueueLimit bounds the number of output lines buffered in front of a
// slow sink.
const DefaultQueueLimit = 10000

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures how the renderer is started.
type Options struct {
	// Renderer is the executable path or name.
	Renderer string

	// Dir is the renderer's working directory.
	Dir string

	// Env holds extra environment variables for the renderer.
	Env map[string]string

	// GracePeriod is how long Terminate waits before killing.
	GracePeriod time.Duration

	// QueueLimit bounds buffered output lines; zero means DefaultQueueLimit.
	QueueLimit int

	// Logger overrides the runner's logger for this launch.
	Logger *log.Logger
}

// ValidateAndSetDefaults fills in defaults and validates the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer()
	}
	if o.QueueLimit <= 0 {
		o.QueueLimit = DefaultQueueLimit
	}
	if o.GracePeriod < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grace period cannot be negative")
	}
	return errors.ValidateExecutablePath(o.Renderer)
}

// =============================================================================
// Events
// =============================================================================

// Events are the caller's callbacks for one launch. Both run on pipeline
// goroutines; a UI must marshal them onto its own loop.
type Events struct {
	// Sink receives the non-empty renderer output lines, in order. If it
	// falls more than Options.QueueLimit lines behind, the oldest queued
	// lines are dropped and counted in Exit.Dropped.
	Sink relay.Sink

	// OnExit is called once after the renderer exited and all output was
	// delivered.
	OnExit func(Exit)
}

// Exit describes the end of a renderer process.
type Exit struct {
	// ID is the launch ID.
	ID string

	// ExitCode is the renderer's exit status, -1 if unknown.
	ExitCode int

	// Duration is how long the renderer ran.
	Duration time.Duration

	// Lines is the number of forwarded output lines.
	Lines int

	// Dropped is the number of lines lost because the sink fell behind.
	Dropped int

	// ReadErr is the OUTPUT_READ error that ended the relay early, if any.
	ReadErr error

	// WaitErr is set when the exit status could not be collected.
	WaitErr error
}
