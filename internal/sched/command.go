package sched

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/nodetop/nodetop/internal/logger"
)

// runner abstracts subprocess invocation so backend parsing can be tested
// against canned output without a scheduler installation.
type runner interface {
	run(name string, args ...string) (string, error)
}

// execRunner invokes real scheduler CLI tools, capturing stdout and stderr
// separately. There is no mid-fetch cancellation; a hung tool blocks its
// refresh cycle until it returns.
type execRunner struct {
	log logger.Logger
}

func (r *execRunner) run(name string, args ...string) (string, error) {
	r.log.Debug("running %s %s", name, strings.Join(args, " "))

	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.log.Debug("%s failed: %v", name, err)
		return "", &CommandError{
			Command: name,
			Stderr:  strings.TrimSpace(stderr.String()),
			Cause:   err,
		}
	}

	return stdout.String(), nil
}
