package advisor

import (
	"context"
	"errors"
	"testing"
)

// fakeExecutor records invocations and returns a canned status.
type fakeExecutor struct {
	calls  []string
	status int
	err    error
}

func (f *fakeExecutor) Execute(_ context.Context, command string) (int, error) {
	f.calls = append(f.calls, command)
	return f.status, f.err
}

func TestMaybeAutoExecuteNoAction(t *testing.T) {
	exec := &fakeExecutor{}
	outcome := MaybeAutoExecute(context.Background(), Advisory{}, true, exec)

	if outcome.State != OutcomeSkipped || outcome.Reason != SkipNoActionNeeded {
		t.Errorf("expected Skipped(no-action-needed), got %+v", outcome)
	}
	if len(exec.calls) != 0 {
		t.Errorf("executor must not be invoked for the no-action sentinel, got %v", exec.calls)
	}
}

func TestMaybeAutoExecuteNotConfigured(t *testing.T) {
	exec := &fakeExecutor{}
	adv := Advisory{Raw: "make install-js-dev"}

	outcome := MaybeAutoExecute(context.Background(), adv, false, exec)

	if outcome.State != OutcomeSkipped || outcome.Reason != SkipNotConfigured {
		t.Errorf("expected Skipped(not-configured), got %+v", outcome)
	}
	if len(exec.calls) != 0 {
		t.Errorf("executor must not be invoked without the opt-in, got %v", exec.calls)
	}
}

func TestMaybeAutoExecuteRunsRawCommand(t *testing.T) {
	exec := &fakeExecutor{status: 0}
	adv := Advisory{Raw: "make install-py-dev apply-migrations", Display: "decorated"}

	outcome := MaybeAutoExecute(context.Background(), adv, true, exec)

	if !outcome.Executed() {
		t.Fatalf("expected Executed, got %+v", outcome)
	}
	if len(exec.calls) != 1 || exec.calls[0] != adv.Raw {
		t.Errorf("executor received %v, expected the raw command %q", exec.calls, adv.Raw)
	}
}

func TestMaybeAutoExecutePassesStatusThrough(t *testing.T) {
	execErr := errors.New("make: *** [install-py-dev] Error 2")
	exec := &fakeExecutor{status: 2, err: execErr}
	adv := Advisory{Raw: "make install-py-dev"}

	outcome := MaybeAutoExecute(context.Background(), adv, true, exec)

	if outcome.State != OutcomeExecuted {
		t.Fatalf("expected Executed even on failure, got %+v", outcome)
	}
	if outcome.ExitStatus != 2 {
		t.Errorf("ExitStatus = %d, expected 2 (passed through unchanged)", outcome.ExitStatus)
	}
	if !errors.Is(outcome.Err, execErr) {
		t.Errorf("Err = %v, expected the executor error", outcome.Err)
	}
}
