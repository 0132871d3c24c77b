package receipt

import (
	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/field"
)

const (
	ErrAnalysisFailed   = "analysis of the receipt failed"
	ErrAnalysisCanceled = "analysis canceled"
	ErrNoContent        = "no content found in the analysis result"
	ErrNoFields         = "structured fields not available, but the document was analyzed"
	ErrInvalidURL       = "invalid url format, provide a valid http or https url"
)

type Receipt struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	Date *string `json:"date,omitempty"`

	TotalAmount *float64 `json:"totalAmount,omitempty"`
	TaxRate     *float64 `json:"taxRate,omitempty"`
	TaxAmount   *float64 `json:"taxAmount,omitempty"`

	Items []Item `json:"items,omitempty"`
}

type Item struct {
	Description *string  `json:"description,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// FromOperation summarizes a terminal analyze operation as a receipt.
func FromOperation(op *analyzer.Operation) Receipt {
	if op == nil {
		return Receipt{Error: ErrNoContent}
	}

	switch op.State {
	case analyzer.StateFailed:
		message := ErrAnalysisFailed

		if op.Error != nil && op.Error.Message != "" {
			message = op.Error.Message
		}

		return Receipt{Error: message}

	case analyzer.StateCanceled:
		return Receipt{Error: ErrAnalysisCanceled}
	}

	doc, ok := op.Result.Document()

	if !ok {
		return Receipt{Error: ErrNoContent}
	}

	return FromFields(doc.Fields)
}

// FromFields reads the receipt fields of a document content.
func FromFields(fields field.Map) Receipt {
	if len(fields) == 0 {
		return Receipt{
			Success: true,
			Error:   ErrNoFields,
		}
	}

	return Receipt{
		Success: true,

		Date: optional(field.DateOf(fields, "InvoiceDate")),

		TotalAmount: optional(field.NumberOf(fields, "TotalAmount")),
		TaxRate:     optional(field.NumberOf(fields, "TaxRate")),
		TaxAmount:   optional(field.NumberOf(fields, "TaxAmount")),

		Items: items(fields),
	}
}

func items(fields field.Map) []Item {
	var result []Item

	for _, obj := range field.Objects(fields, "Items") {
		result = append(result, Item{
			Description: optional(field.StringOf(obj, "Description")),
			Quantity:    optional(field.NumberOf(obj, "Quantity")),
			Price:       optional(field.NumberOf(obj, "Price")),
		})
	}

	return result
}

func optional[T any](val T, ok bool) *T {
	if !ok {
		return nil
	}

	return &val
}
