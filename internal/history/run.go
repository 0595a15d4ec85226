// Package history persists one record per advisory pass so developers can
// audit what resync recommended and what actually ran.
package history

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resync/internal/advisor"
)

// Run is one recorded advisory pass.
type Run struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	FromRev        string    `json:"fromRev"`
	ToRev          string    `json:"toRev"`
	ChangedFiles   int       `json:"changedFiles"`
	Fingerprint    string    `json:"fingerprint"`
	Recommendation []string  `json:"recommendation"`
	Tooling        string    `json:"tooling"`
	Outcome        string    `json:"outcome"`
	ExitStatus     int       `json:"exitStatus"`
	AutoExecuted   bool      `json:"autoExecuted"`
}

// NewRun builds a history record from one engine pass.
func NewRun(fromRev, toRev string, changed []string, rec advisor.Recommendation, mode advisor.ToolingMode, outcome advisor.Outcome) *Run {
	outcomeLabel := string(outcome.State)
	if outcome.State == advisor.OutcomeSkipped {
		outcomeLabel = fmt.Sprintf("%s (%s)", outcome.State, outcome.Reason)
	}

	return &Run{
		ID:             uuid.New().String(),
		CreatedAt:      time.Now().UTC(),
		FromRev:        fromRev,
		ToRev:          toRev,
		ChangedFiles:   len(changed),
		Fingerprint:    Fingerprint(changed),
		Recommendation: rec.Strings(),
		Tooling:        string(mode),
		Outcome:        outcomeLabel,
		ExitStatus:     outcome.ExitStatus,
		AutoExecuted:   outcome.Executed(),
	}
}

// Fingerprint computes a stable SHA256 digest of a changeset. Identical
// changesets fingerprint identically regardless of when they were seen.
func Fingerprint(changed []string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(changed, "\n")))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// marshalRecommendation encodes the action list for storage.
func marshalRecommendation(rec []string) (string, error) {
	if len(rec) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalRecommendation decodes a stored action list.
func unmarshalRecommendation(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var rec []string
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
