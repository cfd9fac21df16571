package driver

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/turingarena/turingarena/internal/wire"
)

// Process wraps a spawned solution process, exposing its stdio as the
// wire.Reader/Writer pair an Engine drives.
type Process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	Conn   *wire.Reader
	Out    *wire.Writer
	stderr io.ReadCloser
}

// ProcessOption configures a spawned Process.
type ProcessOption func(*exec.Cmd)

// WithDir sets the working directory the solution process runs in.
func WithDir(dir string) ProcessOption {
	return func(c *exec.Cmd) { c.Dir = dir }
}

// WithEnv appends environment variables (as "KEY=VALUE" strings) to the
// solution process's environment.
func WithEnv(env ...string) ProcessOption {
	return func(c *exec.Cmd) { c.Env = append(c.Env, env...) }
}

// StartProcess spawns name with args as the solution process, connecting
// its stdin/stdout as the wire channel and capturing stderr for
// diagnostics on failure.
func StartProcess(ctx context.Context, name string, args []string, opts ...ProcessOption) (*Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	for _, opt := range opts {
		opt(cmd)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("driver: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("driver: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("driver: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("driver: starting solution process: %w", err)
	}

	return &Process{
		cmd:    cmd,
		stdin:  stdin,
		Conn:   wire.NewReader(stdout),
		Out:    wire.NewWriter(stdin),
		stderr: stderr,
	}, nil
}

// Close closes the process's stdin (signaling end of input) and waits for
// it to exit, returning a non-nil error (including any captured stderr)
// if it exited abnormally.
func (p *Process) Close() error {
	_ = p.stdin.Close()
	stderr, _ := io.ReadAll(p.stderr)
	if err := p.cmd.Wait(); err != nil {
		if len(stderr) > 0 {
			return fmt.Errorf("driver: solution process: %w; stderr: %s", err, stderr)
		}
		return fmt.Errorf("driver: solution process: %w", err)
	}
	return nil
}

// Kill forcibly terminates the process, used when an evaluation fails,
// including when a Call's timeout expires. Partial writes on timeout are discarded by simply not waiting
// for or reading any further output.
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}
