// Package exec runs the external commands used to reach the hardware.
package exec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command runs cmdString without a shell.
// Arguments are split on spaces and single quotes around them are dropped.
func Command(cmdString string) (string, error) {
	fields := strings.Fields(cmdString)
	if len(fields) == 0 {
		return "", errors.New("empty command")
	}

	args := fields[1:]
	for i, arg := range args {
		args[i] = strings.TrimSuffix(strings.TrimPrefix(arg, "'"), "'")
	}

	return run(exec.Command(fields[0], args...))
}

// Pipe runs cmdString through `sh -c`, so pipes and redirections are allowed.
func Pipe(cmdString string) (string, error) {
	if strings.TrimSpace(cmdString) == "" {
		return "", errors.New("empty command")
	}
	return run(exec.Command("sh", "-c", cmdString))
}

func run(cmd *exec.Cmd) (string, error) {
	// If Env is nil, the new process uses the current process's environment.
	cmd.Env = os.Environ()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%v: %s", err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSuffix(stdout.String(), "\n"), nil
}
