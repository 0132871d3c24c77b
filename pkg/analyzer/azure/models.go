package azure

import (
	"github.com/adrianliechti/contentkit/pkg/analyzer"
)

type AnalyzerPage struct {
	Value    []analyzer.Analyzer `json:"value"`
	NextLink string              `json:"nextLink,omitempty"`
}

type ErrorResponse struct {
	Error *analyzer.Error `json:"error"`
}
