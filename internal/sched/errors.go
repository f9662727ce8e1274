package sched

import "fmt"

// CommandError reports that a scheduler CLI tool could not be launched or
// exited non-zero. It carries the command name and whatever the tool wrote
// to stderr so the dashboard can show a useful diagnostic.
type CommandError struct {
	Command string
	Stderr  string
	Cause   error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %s", e.Command, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Command, e.Cause)
}

// Unwrap returns the underlying exec error for errors.Is/errors.As.
func (e *CommandError) Unwrap() error {
	return e.Cause
}

// NoNodesError reports that a node query succeeded but matched nothing.
// An empty partition after a successful query usually means a mistyped
// partition name, which is worth surfacing distinctly from a command
// failure. Job queries never fail this way; an empty job list is a valid
// result.
type NoNodesError struct {
	Partition string
}

func (e *NoNodesError) Error() string {
	return fmt.Sprintf("no nodes found in partition %q", e.Partition)
}
