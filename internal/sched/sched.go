// Package sched provides a single polymorphic interface over the supported
// cluster scheduler backends. Each backend shells out to its scheduler's
// CLI tools and normalizes their semi-structured text output into the
// shared entity model; the rest of the system never sees backend-specific
// detail. The backend is selected once at startup and is immutable
// thereafter.
package sched

import (
	"fmt"

	"github.com/nodetop/nodetop/internal/errors"
	"github.com/nodetop/nodetop/internal/logger"
	"github.com/nodetop/nodetop/internal/model"
)

// Scheduler is the capability set every backend implements.
//
// Nodes and Jobs query a named partition; UserJobs queries by owner. All
// three invoke an external command and fail with a *CommandError when it
// cannot be launched or exits non-zero. Nodes additionally fails with a
// *NoNodesError when a successful query matches nothing.
type Scheduler interface {
	Nodes(partition string) ([]model.Node, error)
	Jobs(partition string) ([]model.Job, error)
	UserJobs(user string) ([]model.Job, error)
}

// Type identifies a scheduler backend.
type Type int

const (
	Slurm Type = iota
	Torque
	Mock
)

// String returns the configuration identifier for the type.
func (t Type) String() string {
	switch t {
	case Slurm:
		return "slurm"
	case Torque:
		return "torque"
	case Mock:
		return "mock"
	default:
		return "unknown"
	}
}

// ParseType maps a configuration identifier to a scheduler type. Unknown
// identifiers are a fatal configuration error; there is no fallback.
func ParseType(name string) (Type, error) {
	switch name {
	case "slurm":
		return Slurm, nil
	case "torque":
		return Torque, nil
	case "mock":
		return Mock, nil
	default:
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown scheduler type '%s'", name),
			"Use 'slurm', 'torque', or 'mock'. Use 'mock' for a demo without a real cluster.")
	}
}

// New constructs the backend for the given type.
func New(t Type) (Scheduler, error) {
	log := logger.NewEnvLogger("[sched]")
	switch t {
	case Slurm:
		return &slurmScheduler{run: &execRunner{log: log}}, nil
	case Torque:
		return &torqueScheduler{run: &execRunner{log: log}}, nil
	case Mock:
		return NewMock(), nil
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown scheduler type %d", int(t)),
			"Use sched.Slurm, sched.Torque, or sched.Mock.")
	}
}
