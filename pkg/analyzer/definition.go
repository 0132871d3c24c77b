package analyzer

import (
	"time"
)

type AnalyzerStatus string

const (
	AnalyzerStatusCreating AnalyzerStatus = "creating"
	AnalyzerStatusReady    AnalyzerStatus = "ready"
	AnalyzerStatusDeleting AnalyzerStatus = "deleting"
	AnalyzerStatusFailed   AnalyzerStatus = "failed"
)

// Analyzer is the server-side definition of what to extract from an input.
type Analyzer struct {
	AnalyzerID     string `json:"analyzerId,omitempty"`
	BaseAnalyzerID string `json:"baseAnalyzerId,omitempty"`

	Description string            `json:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`

	Status AnalyzerStatus `json:"status,omitempty"`

	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	LastModifiedAt *time.Time `json:"lastModifiedAt,omitempty"`

	Config      *AnalyzerConfig `json:"config,omitempty"`
	FieldSchema *FieldSchema    `json:"fieldSchema,omitempty"`

	Models             map[string]string  `json:"models,omitempty"`
	ProcessingLocation ProcessingLocation `json:"processingLocation,omitempty"`
	DynamicFieldSchema bool               `json:"dynamicFieldSchema,omitempty"`

	Warnings []Error `json:"warnings,omitempty"`
}

type AnalyzerConfig struct {
	Locales []string `json:"locales,omitempty"`

	EnableOCR     *bool `json:"enableOcr,omitempty"`
	EnableLayout  *bool `json:"enableLayout,omitempty"`
	EnableFormula *bool `json:"enableFormula,omitempty"`
	EnableSegment *bool `json:"enableSegment,omitempty"`

	EnableFigureAnalysis    *bool `json:"enableFigureAnalysis,omitempty"`
	EnableFigureDescription *bool `json:"enableFigureDescription,omitempty"`

	ReturnDetails  *bool `json:"returnDetails,omitempty"`
	SegmentPerPage *bool `json:"segmentPerPage,omitempty"`
	OmitContent    *bool `json:"omitContent,omitempty"`

	EstimateFieldSourceAndConfidence *bool `json:"estimateFieldSourceAndConfidence,omitempty"`

	TableFormat      string `json:"tableFormat,omitempty"`
	ChartFormat      string `json:"chartFormat,omitempty"`
	AnnotationFormat string `json:"annotationFormat,omitempty"`

	ContentCategories map[string]ContentCategory `json:"contentCategories,omitempty"`
}

type ContentCategory struct {
	Description string    `json:"description,omitempty"`
	AnalyzerID  string    `json:"analyzerId,omitempty"`
	Analyzer    *Analyzer `json:"analyzer,omitempty"`
}

type GenerationMethod string

const (
	GenerationMethodGenerate GenerationMethod = "generate"
	GenerationMethodExtract  GenerationMethod = "extract"
	GenerationMethodClassify GenerationMethod = "classify"
)

type FieldSchema struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Fields      map[string]FieldDefinition `json:"fields,omitempty"`
	Definitions map[string]FieldDefinition `json:"definitions,omitempty"`
}

type FieldDefinition struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	Examples         []string          `json:"examples,omitempty"`
	Enum             []string          `json:"enum,omitempty"`
	EnumDescriptions map[string]string `json:"enumDescriptions,omitempty"`

	Ref        string                     `json:"$ref,omitempty"`
	Items      *FieldDefinition           `json:"items,omitempty"`
	Properties map[string]FieldDefinition `json:"properties,omitempty"`

	Method GenerationMethod `json:"method,omitempty"`

	EstimateSourceAndConfidence bool `json:"estimateSourceAndConfidence,omitempty"`
}

// AnalyzerOperation tracks the creation of an analyzer.
type AnalyzerOperation struct {
	ID    string `json:"id"`
	State State  `json:"status"`

	Result *Analyzer `json:"result,omitempty"`
	Error  *Error    `json:"error,omitempty"`
}
