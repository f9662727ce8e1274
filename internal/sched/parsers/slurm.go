// Package parsers contains the pure text parsers behind the scheduler
// backends. Every function takes captured command output as a string and
// returns whatever entities it could extract; malformed or partial records
// are skipped, never fatal. Command failures are the caller's concern.
package parsers

import (
	"bufio"
	"strconv"
	"strings"
	"time"

	"github.com/nodetop/nodetop/internal/model"
)

// slurmJobFieldCount is the number of pipe-delimited fields a sacct row
// must carry to be usable: partition, NodeList, JobID, User, jobname,
// State, ReqNodes, ReqCPUs, ReqMem, Timelimit, Elapsed, CPUTime.
const slurmJobFieldCount = 12

// SlurmNodes parses `scontrol show nodes` output into nodes belonging to
// the given partition.
//
// The output is a stream of multi-line key=value blocks, one per node,
// each introduced by a NodeName= line. Lines accumulate into a buffer
// until the next marker (or EOF) flushes it. A node is retained only if it
// has a non-empty name and declares membership in the requested partition.
func SlurmNodes(out, partition string) []model.Node {
	var nodes []model.Node
	var block string

	flush := func() {
		if block == "" {
			return
		}
		node := parseSlurmNodeBlock(block)
		if node.ID != "" && node.InPartition(partition) {
			nodes = append(nodes, node)
		}
		block = ""
	}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "NodeName=") {
			flush()
		}
		block += line + " "
	}
	flush()

	return nodes
}

// parseSlurmNodeBlock tokenizes one node block on whitespace and maps the
// recognized key=value pairs into a Node. Unrecognized keys are ignored.
func parseSlurmNodeBlock(block string) model.Node {
	var node model.Node

	for _, field := range strings.Fields(block) {
		parts := strings.SplitN(field, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key, value := parts[0], parts[1]
		switch key {
		case "NodeName":
			node.ID = value
		case "State":
			node.State = parseSlurmNodeState(value)
		case "CPUAlloc":
			if v, err := strconv.Atoi(value); err == nil {
				node.UsedCores = v
			}
		case "CPUTot":
			if v, err := strconv.Atoi(value); err == nil {
				node.TotalCores = v
			}
		case "AllocMem":
			if v, err := strconv.Atoi(value); err == nil {
				node.UsedMemMB = v
			}
		case "RealMemory":
			if v, err := strconv.Atoi(value); err == nil {
				node.TotalMemMB = v
			}
		case "Partitions":
			node.Partitions = strings.Split(value, ",")
		}
	}

	return node
}

// parseSlurmNodeState normalizes a Slurm state string. Compound states
// like "IDLE+CLOUD" reduce to their base; trailing "*" markers (non-
// responding nodes) are dropped. Anything unrecognized maps to Offline.
func parseSlurmNodeState(state string) model.NodeState {
	base := strings.Split(state, "+")[0]
	base = strings.TrimSuffix(base, "*")

	switch strings.ToLower(base) {
	case "idle":
		return model.StateIdle
	case "mixed", "alloc", "allocated":
		return model.StateRunning
	case "down":
		return model.StateDown
	case "drained", "drain":
		return model.StateDrained
	default:
		return model.StateOffline
	}
}

// SlurmJobs parses pipe-delimited `sacct -p` output into the running jobs
// of the given partition. The header row is skipped; a row is accepted
// only if it is not an extern pseudo-job, its partition field contains the
// requested partition, and its state starts with R.
func SlurmJobs(out, partition string) []model.Job {
	var jobs []model.Job

	scanner := bufio.NewScanner(strings.NewReader(out))
	scanner.Scan() // header row

	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, ".extern") {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < slurmJobFieldCount {
			continue
		}
		if !strings.Contains(fields[0], partition) {
			continue
		}
		if !strings.HasPrefix(fields[5], "R") {
			continue
		}

		jobs = append(jobs, parseSlurmJobFields(fields))
	}

	return jobs
}

// SlurmUserJobs parses `sacct -u <user> -p` output. Unlike SlurmJobs it
// keeps jobs in any state and any partition; the dashboard filters for
// running jobs when highlighting.
func SlurmUserJobs(out string) []model.Job {
	var jobs []model.Job

	scanner := bufio.NewScanner(strings.NewReader(out))
	scanner.Scan() // header row

	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, ".extern") {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < slurmJobFieldCount {
			continue
		}

		jobs = append(jobs, parseSlurmJobFields(fields))
	}

	return jobs
}

func parseSlurmJobFields(fields []string) model.Job {
	job := model.Job{
		Partition: fields[0],
		NodeList:  strings.Split(fields[1], ","),
		ID:        fields[2],
		User:      fields[3],
		Name:      fields[4],
		State:     parseSlurmJobState(fields[5]),
		ReqMemMB:  SlurmReqMemMB(fields[8]),
		TimeLimit: ClockDuration(fields[9]),
		Elapsed:   ClockDuration(fields[10]),
		CPUTime:   ClockDuration(fields[11]),
		// sacct's selected columns don't include the submit time; the
		// current time stands in. Known accuracy gap.
		SubmitTime: time.Now(),
	}

	if v, err := strconv.Atoi(fields[6]); err == nil {
		job.ReqNodes = v
	}
	if v, err := strconv.Atoi(fields[7]); err == nil {
		job.ReqCPUs = v
	}

	return job
}

func parseSlurmJobState(state string) model.JobState {
	switch {
	case strings.HasPrefix(state, "R"):
		return model.JobRunning
	case strings.HasPrefix(state, "PD"), strings.HasPrefix(state, "PENDING"):
		return model.JobPending
	case strings.HasPrefix(state, "CA"):
		return model.JobCancelled
	case strings.HasPrefix(state, "C"):
		return model.JobCompleted
	case strings.HasPrefix(state, "F"):
		return model.JobFailed
	default:
		return model.JobPending
	}
}

// SlurmReqMemMB parses sacct's requested-memory encodings ("1000Mc",
// "4Gn", "2000Mn") into megabytes. The per-core/per-node suffixes are
// stripped and a G suffix becomes a literal "000", a decimal scale rather
// than a true unit conversion. Parse failures yield zero.
func SlurmReqMemMB(mem string) int {
	mem = strings.ReplaceAll(mem, "Mc", "")
	mem = strings.ReplaceAll(mem, "Mn", "")
	mem = strings.ReplaceAll(mem, "n", "")
	mem = strings.ReplaceAll(mem, "c", "")
	mem = strings.ReplaceAll(mem, "G", "000")

	v, err := strconv.ParseFloat(mem, 64)
	if err != nil {
		return 0
	}
	return int(v)
}
