package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates an empty or malformed rule/config set.
	// Fatal: surfaced immediately, no recovery attempted.
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ExecutionFailed indicates the shell executor returned non-zero or
	// could not be invoked. Reported with the underlying cause, never
	// retried here.
	ExecutionFailed ErrorCode = "EXECUTION_FAILED"
	// NotARepository indicates the working directory is not inside a git repository
	NotARepository ErrorCode = "NOT_A_REPOSITORY"
	// RevisionUnknown indicates a merge revision could not be resolved
	RevisionUnknown ErrorCode = "REVISION_UNKNOWN"
	// HistoryUnavailable indicates the run-history store could not be opened
	HistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"
	// HookExists indicates a foreign post-merge hook is already installed
	HookExists ErrorCode = "HOOK_EXISTS"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
	// InstallTool suggests installing a tool
	InstallTool FixActionType = "install-tool"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	Tool        string        `json:"tool,omitempty"`
}

// ResyncError represents a resync error with code, message, and suggestions
type ResyncError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new ResyncError
func New(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *ResyncError {
	return &ResyncError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Error implements the error interface
func (e *ResyncError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ResyncError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ResyncError) WithDetails(details interface{}) *ResyncError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "resync init --force",
			Safe:        false,
			Description: "Regenerate the default configuration",
		},
	},
	NotARepository: {
		{
			Type:        RunCommand,
			Command:     "git rev-parse --show-toplevel",
			Safe:        true,
			Description: "Check that you are inside a git repository",
		},
	},
	RevisionUnknown: {
		{
			Type:        RunCommand,
			Command:     "resync run --from HEAD@{1} --to HEAD",
			Safe:        true,
			Description: "Pass explicit revisions when ORIG_HEAD is absent",
		},
	},
	HistoryUnavailable: {
		{
			Type:        RunCommand,
			Command:     "resync run --no-history",
			Safe:        true,
			Description: "Skip run-history recording for this invocation",
		},
	},
	HookExists: {
		{
			Type:        RunCommand,
			Command:     "resync install-hook --force",
			Safe:        false,
			Description: "Overwrite the existing post-merge hook",
		},
		{
			Type:        OpenDocs,
			URL:         "https://git-scm.com/docs/githooks#_post_merge",
			Safe:        true,
			Description: "Review how post-merge hooks chain before overwriting",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
