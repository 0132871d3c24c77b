package analyzer

import (
	"encoding/json"

	"github.com/adrianliechti/contentkit/pkg/field"
)

type ContentKind string

const (
	ContentKindDocument    ContentKind = "document"
	ContentKindAudioVisual ContentKind = "audioVisual"
)

// Content is one analyzed part of the input. Document or AudioVisual is set
// according to Kind; contents of unknown kinds carry only the common fields.
type Content struct {
	Kind ContentKind

	AnalyzerID string
	Category   string

	Path     string
	MimeType string

	Markdown string
	Fields   field.Map

	Document    *DocumentDetails
	AudioVisual *AudioVisualDetails
}

type DocumentDetails struct {
	StartPageNumber int    `json:"startPageNumber,omitempty"`
	EndPageNumber   int    `json:"endPageNumber,omitempty"`
	Unit            string `json:"unit,omitempty"`

	Pages      []Page      `json:"pages,omitempty"`
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
	Sections   []Section   `json:"sections,omitempty"`
	Tables     []Table     `json:"tables,omitempty"`
	Hyperlinks []Hyperlink `json:"hyperlinks,omitempty"`
	Segments   []Segment   `json:"segments,omitempty"`

	Figures     []json.RawMessage `json:"figures,omitempty"`
	Annotations []json.RawMessage `json:"annotations,omitempty"`
}

type Page struct {
	PageNumber int `json:"pageNumber"`

	Angle  float64 `json:"angle,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Spans []Span `json:"spans,omitempty"`

	Words    []Word    `json:"words,omitempty"`
	Lines    []Line    `json:"lines,omitempty"`
	Barcodes []Barcode `json:"barcodes,omitempty"`
	Formulas []Formula `json:"formulas,omitempty"`
}

type Word struct {
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence,omitempty"`

	Source string `json:"source,omitempty"`
	Span   *Span  `json:"span,omitempty"`
}

type Line struct {
	Content string `json:"content"`

	Source string `json:"source,omitempty"`
	Span   *Span  `json:"span,omitempty"`
}

type Barcode struct {
	Kind       string  `json:"kind,omitempty"`
	Value      string  `json:"value,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`

	Source string `json:"source,omitempty"`
	Span   *Span  `json:"span,omitempty"`
}

type Formula struct {
	Kind       string  `json:"kind,omitempty"`
	Value      string  `json:"value,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`

	Source string `json:"source,omitempty"`
	Span   *Span  `json:"span,omitempty"`
}

type Paragraph struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`

	Source string `json:"source,omitempty"`
	Span   *Span  `json:"span,omitempty"`
}

type Section struct {
	Elements []string `json:"elements,omitempty"`
	Span     *Span    `json:"span,omitempty"`
}

type Table struct {
	Role string `json:"role,omitempty"`

	RowCount    int `json:"rowCount"`
	ColumnCount int `json:"columnCount"`

	Cells []TableCell `json:"cells,omitempty"`

	Caption   *Caption  `json:"caption,omitempty"`
	Footnotes []Caption `json:"footnotes,omitempty"`

	Source string `json:"source,omitempty"`
	Span   *Span  `json:"span,omitempty"`
}

type TableCell struct {
	Kind string `json:"kind,omitempty"`

	RowIndex    int `json:"rowIndex"`
	ColumnIndex int `json:"columnIndex"`
	RowSpan     int `json:"rowSpan,omitempty"`
	ColumnSpan  int `json:"columnSpan,omitempty"`

	Content  string   `json:"content"`
	Elements []string `json:"elements,omitempty"`

	Source string `json:"source,omitempty"`
	Span   *Span  `json:"span,omitempty"`
}

// Caption is used for captions and footnotes of tables and figures.
type Caption struct {
	Content  string   `json:"content"`
	Elements []string `json:"elements,omitempty"`

	Source string `json:"source,omitempty"`
	Span   *Span  `json:"span,omitempty"`
}

type Hyperlink struct {
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`

	Source string `json:"source,omitempty"`
	Span   *Span  `json:"span,omitempty"`
}

type Segment struct {
	SegmentID string `json:"segmentId,omitempty"`
	Category  string `json:"category,omitempty"`

	StartPageNumber int   `json:"startPageNumber,omitempty"`
	EndPageNumber   int   `json:"endPageNumber,omitempty"`
	StartTimeMs     int64 `json:"startTimeMs,omitempty"`
	EndTimeMs       int64 `json:"endTimeMs,omitempty"`

	Span *Span `json:"span,omitempty"`
}

type AudioVisualDetails struct {
	StartTimeMs int64 `json:"startTimeMs,omitempty"`
	EndTimeMs   int64 `json:"endTimeMs,omitempty"`

	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	CameraShotTimesMs []int64 `json:"cameraShotTimesMs,omitempty"`
	KeyFrameTimesMs   []int64 `json:"keyFrameTimesMs,omitempty"`

	TranscriptPhrases []TranscriptPhrase `json:"transcriptPhrases,omitempty"`
	Segments          []Segment          `json:"segments,omitempty"`
}

type TranscriptPhrase struct {
	Speaker string `json:"speaker,omitempty"`
	Locale  string `json:"locale,omitempty"`
	Text    string `json:"text"`

	Confidence float64 `json:"confidence,omitempty"`

	StartTimeMs int64 `json:"startTimeMs"`
	EndTimeMs   int64 `json:"endTimeMs"`

	Span  *Span            `json:"span,omitempty"`
	Words []TranscriptWord `json:"words,omitempty"`
}

type TranscriptWord struct {
	Text string `json:"text"`

	StartTimeMs int64 `json:"startTimeMs"`
	EndTimeMs   int64 `json:"endTimeMs"`

	Span *Span `json:"span,omitempty"`
}

type contentBase struct {
	Kind ContentKind `json:"kind,omitempty"`

	AnalyzerID string `json:"analyzerId,omitempty"`
	Category   string `json:"category,omitempty"`

	Path     string `json:"path,omitempty"`
	MimeType string `json:"mimeType,omitempty"`

	Markdown string    `json:"markdown,omitempty"`
	Fields   field.Map `json:"fields,omitempty"`
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var base contentBase

	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}

	*c = Content{
		Kind: base.Kind,

		AnalyzerID: base.AnalyzerID,
		Category:   base.Category,

		Path:     base.Path,
		MimeType: base.MimeType,

		Markdown: base.Markdown,
		Fields:   base.Fields,
	}

	switch base.Kind {
	case ContentKindDocument:
		var details DocumentDetails

		if err := json.Unmarshal(data, &details); err != nil {
			return err
		}

		c.Document = &details

	case ContentKindAudioVisual:
		var details AudioVisualDetails

		if err := json.Unmarshal(data, &details); err != nil {
			return err
		}

		c.AudioVisual = &details
	}

	return nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	base := contentBase{
		Kind: c.Kind,

		AnalyzerID: c.AnalyzerID,
		Category:   c.Category,

		Path:     c.Path,
		MimeType: c.MimeType,

		Markdown: c.Markdown,
		Fields:   c.Fields,
	}

	if c.Kind == ContentKindDocument && c.Document != nil {
		return json.Marshal(struct {
			contentBase
			*DocumentDetails
		}{base, c.Document})
	}

	if c.Kind == ContentKindAudioVisual && c.AudioVisual != nil {
		return json.Marshal(struct {
			contentBase
			*AudioVisualDetails
		}{base, c.AudioVisual})
	}

	return json.Marshal(base)
}
