package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/receipt"
)

func (h *Handler) handleReceipt(w http.ResponseWriter, r *http.Request) {
	var name string
	var result receipt.Receipt
	var err error

	if url := valueURL(r); url != "" {
		name = url
		result, err = h.Receipts.ReadURL(r.Context(), url)
	} else {
		file, ferr := h.readFile(r)

		if ferr != nil {
			writeError(w, http.StatusBadRequest, ferr)
			return
		}

		name = file.Name
		result, err = h.Receipts.ReadFile(r.Context(), *file)
	}

	if err != nil {
		if errors.Is(err, analyzer.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		writeError(w, http.StatusBadGateway, err)
		return
	}

	if r.FormValue("format") == "xlsx" {
		var buf bytes.Buffer

		if err := receipt.WriteXLSX(&buf, []receipt.Entry{{File: name, Receipt: result}}); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="receipts.xlsx"`)

		if _, err := buf.WriteTo(w); err != nil {
			slog.ErrorContext(r.Context(), "failed to write receipt export", "error", err)
		}

		return
	}

	writeJson(w, result)
}
