package api

import (
	"net/http"

	"github.com/adrianliechti/contentkit/pkg/segmenter"
)

func (h *Handler) handleChunks(w http.ResponseWriter, r *http.Request) {
	text, err := h.readText(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	options := &segmenter.SegmentOptions{
		FileName: r.FormValue("fileName"),
	}

	segments, err := h.Segmenter.Segment(r.Context(), text, options)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := make([]Chunk, 0)

	for _, s := range segments {
		result = append(result, Chunk{
			Title:   s.Title,
			Content: s.Text,
		})
	}

	writeJson(w, result)
}
