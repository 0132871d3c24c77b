package analyzer

import (
	"context"
	"errors"
)

// Provider submits content to a remote analyzer and reports operation state.
type Provider interface {
	Poller

	Analyze(ctx context.Context, analyzerID string, request *AnalyzeRequest, options *AnalyzeOptions) (*Operation, error)
	AnalyzeBinary(ctx context.Context, analyzerID string, file File, options *AnalyzeOptions) (*Operation, error)
}

type Poller interface {
	// Result fetches the current state of an analyze operation once.
	Result(ctx context.Context, operationID string) (*Operation, error)
}

// Manager administers analyzer definitions.
type Manager interface {
	Analyzers(ctx context.Context) ([]Analyzer, error)

	CreateAnalyzer(ctx context.Context, analyzerID string, analyzer Analyzer, replace bool) (*AnalyzerOperation, error)
	AnalyzerOperation(ctx context.Context, analyzerID, operationID string) (*AnalyzerOperation, error)
}

var (
	ErrInvalidInput = errors.New("invalid input")
)

type File struct {
	Name string

	Content     []byte
	ContentType string
}

type StringEncoding string

const (
	StringEncodingCodePoint StringEncoding = "codePoint"
	StringEncodingUTF16     StringEncoding = "utf16"
	StringEncodingUTF8      StringEncoding = "utf8"
)

type ProcessingLocation string

const (
	ProcessingLocationGeography ProcessingLocation = "geography"
	ProcessingLocationDataZone  ProcessingLocation = "dataZone"
	ProcessingLocationGlobal    ProcessingLocation = "global"
)

type AnalyzeOptions struct {
	StringEncoding     StringEncoding
	ProcessingLocation ProcessingLocation

	// Range selects part of a binary input, e.g. "1-3,5,9-".
	Range string
}

type AnalyzeRequest struct {
	Inputs []Input `json:"inputs"`

	ModelDeployments map[string]string `json:"modelDeployments,omitempty"`
}

// Input references content by URL or carries it inline as base64 Data.
// Exactly one of both is expected by the service.
type Input struct {
	URL  string `json:"url,omitempty"`
	Data string `json:"data,omitempty"`

	MimeType string `json:"mimeType,omitempty"`
	Name     string `json:"name,omitempty"`
	Range    string `json:"range,omitempty"`
}
