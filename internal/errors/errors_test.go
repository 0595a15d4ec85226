package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNewResyncError(t *testing.T) {
	cause := errors.New("underlying error")
	fixes := []FixAction{{Type: RunCommand, Command: "resync doctor"}}

	err := New(ConfigInvalid, "rule list is empty", cause, fixes)

	if err.Code != ConfigInvalid {
		t.Errorf("Code = %v, want %v", err.Code, ConfigInvalid)
	}
	if err.Message != "rule list is empty" {
		t.Errorf("Message = %q, want %q", err.Message, "rule list is empty")
	}
	if len(err.SuggestedFixes) != 1 {
		t.Errorf("len(SuggestedFixes) = %d, want 1", len(err.SuggestedFixes))
	}
}

func TestResyncError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      ExecutionFailed,
			message:   "sync command failed",
			cause:     errors.New("exit status 2"),
			wantParts: []string{"EXECUTION_FAILED", "sync command failed", "exit status 2"},
		},
		{
			name:      "without cause",
			code:      NotARepository,
			message:   "not inside a git repository",
			cause:     nil,
			wantParts: []string{"NOT_A_REPOSITORY", "not inside a git repository"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.cause, nil)
			got := err.Error()

			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, missing %q", got, part)
				}
			}
		})
	}
}

func TestResyncError_Unwrap(t *testing.T) {
	cause := errors.New("db locked")
	err := New(HistoryUnavailable, "cannot open history store", cause, nil)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestResyncError_WithDetails(t *testing.T) {
	err := New(RevisionUnknown, "cannot resolve ORIG_HEAD", nil, nil).
		WithDetails(map[string]string{"rev": "ORIG_HEAD"})

	details, ok := err.Details.(map[string]string)
	if !ok || details["rev"] != "ORIG_HEAD" {
		t.Errorf("Details = %v, want rev=ORIG_HEAD", err.Details)
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	fixes := GetSuggestedFixes(ConfigInvalid)
	if len(fixes) == 0 {
		t.Fatal("expected suggested fixes for ConfigInvalid")
	}
	if fixes[0].Type != RunCommand {
		t.Errorf("fix type = %v, want RunCommand", fixes[0].Type)
	}

	if fixes := GetSuggestedFixes(InternalError); fixes != nil {
		t.Errorf("expected no fixes for InternalError, got %v", fixes)
	}
}

func TestHookExistsFixesIncludeDocs(t *testing.T) {
	fixes := GetSuggestedFixes(HookExists)
	if len(fixes) < 2 {
		t.Fatalf("expected command and docs fixes, got %d", len(fixes))
	}

	var docs *FixAction
	for i := range fixes {
		if fixes[i].Type == OpenDocs {
			docs = &fixes[i]
		}
	}
	if docs == nil {
		t.Fatal("expected an OpenDocs fix for HookExists")
	}
	if docs.URL == "" {
		t.Error("OpenDocs fix must carry a URL")
	}
	if !docs.Safe {
		t.Error("reading documentation is a safe action")
	}
}
