package api

import (
	"net/http"

	"github.com/adrianliechti/contentkit/pkg/index"
)

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := valueQuery(r)

	if query == "" {
		writeError(w, http.StatusBadRequest, nil)
		return
	}

	options := &index.QueryOptions{
		Limit: valueLimit(r),
	}

	if val := r.FormValue("fileName"); val != "" {
		options.Filters = map[string]string{
			"fileName": val,
		}
	}

	results, err := h.Index.Query(r.Context(), query, options)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := make([]SearchResult, 0)

	for _, r := range results {
		result = append(result, SearchResult{
			ID: r.ID,

			FileName:     r.FileName,
			SectionTitle: r.SectionTitle,

			Content: r.Content,

			Score:      r.Score,
			Highlights: r.Highlights,
		})
	}

	writeJson(w, result)
}
