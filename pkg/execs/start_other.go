//go:build !windows

package execs

import (
	"fmt"
	"os/exec"
	"syscall"
)

// startProcess unwraps the interpreter frame and starts the executable
// directly, since cmd.exe is not available.
func startProcess(_, flag, commandLine string, env []string) (int, error) {
	argv, err := SplitCommandLine(flag, commandLine)
	if err != nil {
		return 0, err
	}

	//nolint:gosec // G204: Subprocess launched with a potential tainted input or cmd arguments.
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	err = cmd.Start()
	if err != nil {
		return 0, fmt.Errorf("start: %w", err)
	}

	pid := cmd.Process.Pid

	err = cmd.Process.Release()
	if err != nil {
		return pid, fmt.Errorf("release: %w", err)
	}

	return pid, nil
}
