package advisor

import "context"

// Executor runs a composed command line as a single shell invocation and
// returns its exit status. Implementations live outside the engine (see
// shellexec); tests substitute fakes.
type Executor interface {
	Execute(ctx context.Context, command string) (int, error)
}

// OutcomeState is the terminal state of one advisory pass.
type OutcomeState string

const (
	// OutcomeSkipped means the command was not executed.
	OutcomeSkipped OutcomeState = "skipped"
	// OutcomeExecuted means the command was handed to the executor.
	OutcomeExecuted OutcomeState = "executed"
)

// SkipReason explains why execution was skipped.
type SkipReason string

const (
	// SkipNoActionNeeded: the advisory was the no-action sentinel.
	SkipNoActionNeeded SkipReason = "no-action-needed"
	// SkipNotConfigured: auto-execution was not opted into; the advisory
	// is display-only.
	SkipNotConfigured SkipReason = "not-configured"
)

// Outcome records what happened to an advisory.
type Outcome struct {
	State      OutcomeState `json:"state"`
	Reason     SkipReason   `json:"reason,omitempty"`
	ExitStatus int          `json:"exitStatus"`
	Err        error        `json:"-"`
}

// Executed reports whether the command actually ran.
func (o Outcome) Executed() bool {
	return o.State == OutcomeExecuted
}

// MaybeAutoExecute runs the advisory's raw command when auto-execution is
// opted into. The executor's exit status is passed through unchanged; this
// layer never interprets or retries it. With autoExecute unset the executor
// is never invoked.
func MaybeAutoExecute(ctx context.Context, adv Advisory, autoExecute bool, executor Executor) Outcome {
	if adv.Empty() {
		return Outcome{State: OutcomeSkipped, Reason: SkipNoActionNeeded}
	}
	if !autoExecute {
		return Outcome{State: OutcomeSkipped, Reason: SkipNotConfigured}
	}

	status, err := executor.Execute(ctx, adv.Raw)
	return Outcome{State: OutcomeExecuted, ExitStatus: status, Err: err}
}
