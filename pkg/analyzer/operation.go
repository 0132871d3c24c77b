package analyzer

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/adrianliechti/contentkit/pkg/field"
)

type State string

const (
	StateNotStarted State = "notStarted"
	StateRunning    State = "running"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
	StateCanceled   State = "canceled"
)

// Pending reports whether the operation is still queued or running.
func (s State) Pending() bool {
	return s == StateNotStarted || s == StateRunning
}

// Terminal reports whether polling stops at this state. Unrecognized or
// missing states are terminal.
func (s State) Terminal() bool {
	return !s.Pending()
}

// UnmarshalJSON accepts the state names in any letter case.
func (s *State) UnmarshalJSON(data []byte) error {
	var val string

	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}

	*s = State(val)

	for _, known := range []State{StateNotStarted, StateRunning, StateSucceeded, StateFailed, StateCanceled} {
		if strings.EqualFold(val, string(known)) {
			*s = known
		}
	}

	return nil
}

type Operation struct {
	ID    string `json:"id"`
	State State  `json:"status"`

	// set when State is StateSucceeded
	Result *Result `json:"result,omitempty"`

	// set when State is StateFailed
	Error *Error `json:"error,omitempty"`

	Usage *Usage `json:"usage,omitempty"`
}

type Result struct {
	AnalyzerID string `json:"analyzerId,omitempty"`
	APIVersion string `json:"apiVersion,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`

	StringEncoding StringEncoding `json:"stringEncoding,omitempty"`

	Warnings []Error   `json:"warnings,omitempty"`
	Contents []Content `json:"contents,omitempty"`
}

// Document returns the first document content of the result.
func (r *Result) Document() (*Content, bool) {
	if r == nil {
		return nil, false
	}

	for i := range r.Contents {
		if r.Contents[i].Kind == ContentKindDocument {
			return &r.Contents[i], true
		}
	}

	return nil, false
}

// Error describes a failed operation or a rejected request.
type Error struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Target  string `json:"target,omitempty"`

	Details    []Error     `json:"details,omitempty"`
	InnerError *InnerError `json:"innererror,omitempty"`
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}

	if e.Message == "" {
		return e.Code
	}

	return e.Code + ": " + e.Message
}

type InnerError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	InnerError *InnerError `json:"innererror,omitempty"`
}

type Usage struct {
	DocumentPagesMinimal  int `json:"documentPagesMinimal,omitempty"`
	DocumentPagesBasic    int `json:"documentPagesBasic,omitempty"`
	DocumentPagesStandard int `json:"documentPagesStandard,omitempty"`

	AudioHours float64 `json:"audioHours,omitempty"`
	VideoHours float64 `json:"videoHours,omitempty"`

	ContextualizationTokens int `json:"contextualizationTokens,omitempty"`

	Tokens map[string]int `json:"tokens,omitempty"`
}

type Span = field.Span
