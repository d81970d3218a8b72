package launcher

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenelaunch/pkg/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestStartMissingExecutable(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "VulkanScene.exe"), nil)

	p, err := l.Start(context.Background(), []string{"1", "1024"})
	if err == nil {
		t.Fatal("Start() should fail for a missing executable")
	}
	if p != nil {
		t.Error("Start() should not return a process on failure")
	}
	if !errors.Is(err, errors.ErrCodeLaunchFailed) {
		t.Errorf("Start() error = %v, want LAUNCH_FAILED", err)
	}
}

func TestStartInvalidPath(t *testing.T) {
	for _, path := range []string{"", "bad\x00path", "/opt/renderer/"} {
		_, err := New(path, nil).Start(context.Background(), nil)
		if !errors.Is(err, errors.ErrCodeLaunchFailed) {
			t.Errorf("Start(%q) error = %v, want LAUNCH_FAILED", path, err)
		}
	}
}

func TestStartCancelledContext(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("sh", nil).Start(ctx, []string{"-c", "true"})
	if !errors.Is(err, errors.ErrCodeLaunchFailed) {
		t.Errorf("Start() error = %v, want LAUNCH_FAILED", err)
	}
}

func TestStartPassesArgumentsVerbatim(t *testing.T) {
	requireShell(t)
	l := New("sh", nil)

	// $1 onward are the renderer-style arguments; "Late Dusk" must stay one token.
	p, err := l.Start(context.Background(), []string{"-c", `for a in "$@"; do echo "[$a]"; done`, "sh", "4", "Late Dusk", "$HOME"})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if p.ID == "" {
		t.Error("process should have a launch ID")
	}

	out, err := io.ReadAll(p.Stdout())
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	if _, err := p.Wait(); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}

	want := "[4]\n[Late Dusk]\n[$HOME]\n"
	if string(out) != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestWaitReportsExitCode(t *testing.T) {
	requireShell(t)
	p, err := New("sh", nil).Start(context.Background(), []string{"-c", "exit 3"})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	_, _ = io.Copy(io.Discard, p.Stdout())

	res, err := p.Wait()
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}

	// Second call returns the same result.
	again, _ := p.Wait()
	if again != res {
		t.Errorf("second Wait() = %+v, want %+v", again, res)
	}

	select {
	case <-p.Exited():
	default:
		t.Error("Exited() should be closed after Wait")
	}
}

func TestStartIndependentProcesses(t *testing.T) {
	requireShell(t)
	l := New("sh", nil)

	a, err := l.Start(context.Background(), []string{"-c", "true"})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	b, err := l.Start(context.Background(), []string{"-c", "true"})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	for _, p := range []*Process{a, b} {
		_, _ = io.Copy(io.Discard, p.Stdout())
		_, _ = p.Wait()
	}

	if a.ID == b.ID {
		t.Error("each launch should get its own ID")
	}
	if a.Pid() == b.Pid() {
		t.Error("each launch should be a separate process")
	}
}

func TestTerminate(t *testing.T) {
	requireShell(t)
	var logs bytes.Buffer
	l := New("sh", log.New(&logs))
	l.GracePeriod = 2 * time.Second

	p, err := l.Start(context.Background(), []string{"-c", "exec sleep 30"})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	go func() {
		_, _ = io.Copy(io.Discard, p.Stdout())
		_, _ = p.Wait()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.Terminate(ctx); err != nil {
		t.Fatalf("Terminate() error: %v", err)
	}

	select {
	case <-p.Exited():
	case <-time.After(5 * time.Second):
		t.Fatal("renderer did not exit after Terminate")
	}

	res, _ := p.Wait()
	if res.ExitCode == 0 {
		t.Errorf("ExitCode = 0, want non-zero after termination")
	}

	// Terminating an exited process is a no-op.
	if err := p.Terminate(ctx); err != nil {
		t.Errorf("second Terminate() error: %v", err)
	}
}
