package receipt

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Receipts"

type Entry struct {
	File    string
	Receipt Receipt
}

var headers = []string{
	"File",
	"Date",
	"Total Amount",
	"Tax Rate",
	"Tax Amount",
	"Items",
	"Error",
}

// WriteXLSX writes one row per entry to a "Receipts" worksheet.
func WriteXLSX(w io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)

		if err != nil {
			return err
		}

		return f.SetCellValue(SheetName, cell, v)
	}

	for i, h := range headers {
		if err := write(i+1, 1, h); err != nil {
			return err
		}
	}

	for i, e := range entries {
		row := i + 2

		values := []any{
			e.File,
			value(e.Receipt.Date),
			value(e.Receipt.TotalAmount),
			value(e.Receipt.TaxRate),
			value(e.Receipt.TaxAmount),
			len(e.Receipt.Items),
			e.Receipt.Error,
		}

		for col, v := range values {
			if err := write(col+1, row, v); err != nil {
				return err
			}
		}
	}

	f.SetColWidth(SheetName, "A", "A", 32)
	f.SetColWidth(SheetName, "B", "E", 14)
	f.SetColWidth(SheetName, "G", "G", 48)

	return f.Write(w)
}

func value[T any](v *T) any {
	if v == nil {
		return ""
	}

	return *v
}
