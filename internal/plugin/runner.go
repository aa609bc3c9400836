package plugin

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ShellRunner executes commands through /bin/sh. Both output streams are
// drained into buffers while the process runs, so a chatty tool cannot
// deadlock on a full pipe.
type ShellRunner struct{}

// Run executes command and blocks until it exits. A non-zero exit status
// is reported through exitCode with a nil error; err is only non-nil when
// the command could not be started at all.
func (ShellRunner) Run(ctx context.Context, command string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	switch err := runErr.(type) {
	case nil:
		return stdout.String(), stderr.String(), 0, nil
	case *exec.ExitError:
		return stdout.String(), stderr.String(), err.ExitCode(), nil
	default:
		return stdout.String(), stderr.String(), -1, fmt.Errorf("run command: %w", runErr)
	}
}
