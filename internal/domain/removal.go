package domain

// RunState is the terminal state an audit run ended in.
type RunState string

const (
	StateEmpty            RunState = "empty"
	StateDryRun           RunState = "dry_run"
	StateThresholdTripped RunState = "threshold_tripped"
	StateRemoved          RunState = "removed"
)

// RemovalResult is the outcome of one removal attempt.
// Err is nil on success.
type RemovalResult struct {
	Member Member
	Err    error
}

// Succeeded reports whether the member was removed.
func (r RemovalResult) Succeeded() bool {
	return r.Err == nil
}

// Outcome summarizes an audit run.
type Outcome struct {
	State    RunState
	Findings []Member
	Removals []RemovalResult
}

// Removed returns the number of successful removals.
func (o Outcome) Removed() int {
	n := 0
	for _, r := range o.Removals {
		if r.Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed removals.
func (o Outcome) Failed() int {
	return len(o.Removals) - o.Removed()
}
