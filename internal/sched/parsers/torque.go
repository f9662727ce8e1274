package parsers

import (
	"bufio"
	"strconv"
	"strings"
	"time"

	"github.com/nodetop/nodetop/internal/model"
)

// torqueUserJobsStateField is the fixed field position of the job state
// column in `qstat -u` tabular output.
const torqueUserJobsStateField = 9

// TorqueNodes parses `mdiag -n -v` output into nodes tagged with the given
// partition.
//
// Each node is one table row, but the raw rows pad columns with runs of
// repeated spaces. A row is accepted only when it carries the partition in
// bracket notation ("[batch]") and is not immediately followed by a second
// bracketed tag, which marks an ambiguous multi-partition row the parser
// deliberately skips.
func TorqueNodes(out, partition string) []model.Node {
	var nodes []model.Node
	tag := "[" + partition + "]"

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, tag) || strings.Contains(line, tag+"[") {
			continue
		}
		if node, ok := parseTorqueNodeLine(line, partition); ok {
			nodes = append(nodes, node)
		}
	}

	return nodes
}

// parseTorqueNodeLine tokenizes one diagnostic row. The alignment padding
// is collapsed first, longest space runs down to single spaces, then the
// row splits into: name, state, cpu "available:total", mem
// "available:total" (megabytes).
func parseTorqueNodeLine(line, partition string) (model.Node, bool) {
	for i := 30; i > 1; i-- {
		line = strings.ReplaceAll(line, strings.Repeat(" ", i), " ")
	}

	fields := strings.Split(strings.TrimSpace(line), " ")
	if len(fields) < 4 {
		return model.Node{}, false
	}

	node := model.Node{
		ID:         fields[0],
		State:      parseTorqueNodeState(fields[1]),
		Partitions: []string{partition},
	}

	node.TotalCores, node.UsedCores = parseAvailTotalPair(fields[2])
	node.TotalMemMB, node.UsedMemMB = parseAvailTotalPair(fields[3])

	return node, true
}

// parseAvailTotalPair decodes the "available:total" colon pair used for
// both CPU and memory columns. Used is total minus available, clamped at
// zero.
func parseAvailTotalPair(pair string) (total, used int) {
	parts := strings.Split(pair, ":")
	if len(parts) != 2 {
		return 0, 0
	}

	total, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0
	}
	avail, err := strconv.Atoi(parts[0])
	if err != nil {
		return total, 0
	}

	used = total - avail
	if used < 0 {
		used = 0
	}
	return total, used
}

func parseTorqueNodeState(state string) model.NodeState {
	switch strings.ToLower(state) {
	case "free":
		return model.StateIdle
	case "busy":
		return model.StateBusy
	case "running":
		return model.StateRunning
	case "down":
		return model.StateDown
	case "drained":
		return model.StateDrained
	default:
		return model.StateOffline
	}
}

// TorqueJobs parses `qstat -f` output into running jobs.
//
// The output is a stream of indented attribute lines grouped under
// "Job Id:" headers. Lines accumulate per job until the next header (or
// EOF) flushes the block; only jobs whose state attribute equals "R" are
// retained.
func TorqueJobs(out string) []model.Job {
	var jobs []model.Job
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		if job, running := parseTorqueJobBlock(block); running {
			jobs = append(jobs, job)
		}
		block = block[:0]
	}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "Job Id:") {
			flush()
		}
		block = append(block, line)
	}
	flush()

	return jobs
}

// parseTorqueJobBlock extracts the interesting "name = value" attributes
// from one job block by substring match. Returns the job and whether its
// state is running.
func parseTorqueJobBlock(lines []string) (model.Job, bool) {
	job := model.Job{
		// Conservative defaults when the resource list is absent or
		// unparseable.
		ReqNodes: 1,
		ReqCPUs:  1,
		// qstat -f carries a ctime attribute but its format varies by
		// deployment; the current time stands in. Known accuracy gap.
		SubmitTime: time.Now(),
	}
	state := ""

	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "Job Id:"):
			job.ID = valueAfter(line, ":")
		case strings.Contains(line, "Job_Name ="):
			job.Name = valueAfter(line, "=")
		case strings.Contains(line, "Job_Owner ="):
			owner := valueAfter(line, "=")
			if at := strings.Index(owner, "@"); at != -1 {
				job.User = owner[:at]
			} else {
				job.User = owner
			}
		case strings.Contains(line, "resources_used.cput"):
			job.CPUTime = ClockDuration(valueAfter(line, "="))
		case strings.Contains(line, "resources_used.walltime"):
			job.Elapsed = ClockDuration(valueAfter(line, "="))
		case strings.Contains(line, "Resource_List.walltime"):
			job.TimeLimit = ClockDuration(valueAfter(line, "="))
		case strings.Contains(line, "job_state ="):
			state = valueAfter(line, "=")
			if state == "R" {
				job.State = model.JobRunning
			}
		case strings.Contains(line, "Resource_List.mem"):
			job.ReqMemMB = TorqueReqMemMB(valueAfter(line, "="))
		case strings.Contains(line, "Resource_List.nodes"):
			job.ReqNodes, job.ReqCPUs = parseTorqueNodeSpec(valueAfter(line, "="))
		case strings.Contains(line, "queue ="):
			job.Partition = valueAfter(line, "=")
		case strings.Contains(line, "exec_host ="):
			host := valueAfter(line, "=")
			if slash := strings.Index(host, "/"); slash != -1 {
				job.NodeList = []string{host[:slash]}
			}
		}
	}

	return job, state == "R"
}

// valueAfter returns the trimmed remainder of line after the first
// occurrence of sep, or "" when sep is absent.
func valueAfter(line, sep string) string {
	i := strings.Index(line, sep)
	if i == -1 {
		return ""
	}
	return strings.TrimSpace(line[i+len(sep):])
}

// TorqueReqMemMB parses Torque's requested-memory strings ("16gb",
// "2000mb") into megabytes. Gigabyte values scale by 1000. An unparseable
// number with a gb suffix falls back to 1 gb, with an mb suffix to
// 1000 mb.
func TorqueReqMemMB(mem string) int {
	lower := strings.ToLower(strings.TrimSpace(mem))
	switch {
	case strings.HasSuffix(lower, "gb"):
		v, err := strconv.Atoi(strings.TrimSuffix(lower, "gb"))
		if err != nil {
			v = 1
		}
		return v * 1000
	case strings.HasSuffix(lower, "mb"):
		v, err := strconv.Atoi(strings.TrimSuffix(lower, "mb"))
		if err != nil {
			v = 1000
		}
		return v
	default:
		v, err := strconv.Atoi(lower)
		if err != nil {
			return 0
		}
		return v
	}
}

// parseTorqueNodeSpec decodes the composite Resource_List.nodes value
// ("2:ppn=8"). Node count comes from the leading component, CPU count
// from nodes times ppn. Any component that fails to parse leaves the
// conservative default of 1 in place.
func parseTorqueNodeSpec(spec string) (reqNodes, reqCPUs int) {
	reqNodes, reqCPUs = 1, 1

	parts := strings.Split(spec, ":")
	if n, err := strconv.Atoi(parts[0]); err == nil && n > 0 {
		reqNodes = n
	}
	for _, part := range parts[1:] {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[0] != "ppn" {
			continue
		}
		if ppn, err := strconv.Atoi(kv[1]); err == nil && ppn > 0 {
			reqCPUs = reqNodes * ppn
		}
	}

	return reqNodes, reqCPUs
}

// TorqueUserJobs parses `qstat -u <user>` output, a whitespace-aligned
// table with two header lines. A row is retained only when the fixed
// state column reads "R". The executing node is not part of this output,
// so the node list carries a placeholder.
func TorqueUserJobs(out string) []model.Job {
	var jobs []model.Job

	scanner := bufio.NewScanner(strings.NewReader(out))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= 2 {
			continue
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) <= torqueUserJobsStateField+1 {
			continue
		}
		if fields[torqueUserJobsStateField] != "R" {
			continue
		}

		job := model.Job{
			ID:         fields[0],
			User:       fields[1],
			Partition:  fields[2],
			Name:       fields[3],
			State:      model.JobRunning,
			NodeList:   []string{"(unknown)"},
			ReqNodes:   1,
			ReqCPUs:    1,
			ReqMemMB:   TorqueReqMemMB(fields[7]),
			TimeLimit:  ClockDuration(fields[8]),
			Elapsed:    ClockDuration(fields[10]),
			SubmitTime: time.Now(),
		}
		if v, err := strconv.Atoi(fields[5]); err == nil && v > 0 {
			job.ReqNodes = v
		}
		if v, err := strconv.Atoi(fields[6]); err == nil && v > 0 {
			job.ReqCPUs = v
		}

		jobs = append(jobs, job)
	}

	return jobs
}
