package runner

// Status classifies the outcome of one example execution.
type Status int

const (
	// Passed means the body ran to completion with every assertion holding.
	Passed Status = iota

	// Failed means an assertion was violated.
	Failed

	// Pending means the example has no body. Hooks around it still run.
	Pending

	// Errored means a non-assertion panic escaped the body or a hook in the
	// example's chain failed.
	Errored
)

// String returns the status name as it appears in reports.
func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Pending:
		return "pending"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// ExampleResult is produced exactly once per example execution.
type ExampleResult struct {
	// Status is the example outcome.
	Status Status

	// Message describes the failure or error. Empty for Passed and Pending.
	Message string

	// Location is the file:line of a violated assertion, when known.
	Location string
}

// Summary aggregates one run's results.
type Summary struct {
	// RunID is a time-sortable UUIDv7 identifying this run.
	RunID string

	// Per-status example counts.
	Passed  int
	Failed  int
	Pending int
	Errored int

	// HookFailures counts before-all/after-all actions that failed. These
	// are framework-level errors attached to contexts, not to examples.
	HookFailures int
}

// Total returns the number of examples executed.
func (s *Summary) Total() int {
	return s.Passed + s.Failed + s.Pending + s.Errored
}

// OK reports whether the run succeeded: no failed or errored examples and
// no context hook failures. Pending examples do not fail a run.
func (s *Summary) OK() bool {
	return s.Failed == 0 && s.Errored == 0 && s.HookFailures == 0
}

func (s *Summary) count(res ExampleResult) {
	switch res.Status {
	case Passed:
		s.Passed++
	case Failed:
		s.Failed++
	case Pending:
		s.Pending++
	case Errored:
		s.Errored++
	}
}
