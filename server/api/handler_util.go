package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/source"
)

const maxUploadSize = 32 << 20

func valueURL(r *http.Request) string {
	if val := r.FormValue("url"); val != "" {
		return val
	}

	return ""
}

func valueQuery(r *http.Request) string {
	if val := r.FormValue("q"); val != "" {
		return val
	}

	if val := r.FormValue("query"); val != "" {
		return val
	}

	return ""
}

func valueLimit(r *http.Request) *int {
	if val := r.FormValue("limit"); val != "" {
		if val, err := strconv.Atoi(val); err == nil && val > 0 {
			return &val
		}
	}

	return nil
}

func (h *Handler) readText(r *http.Request) (string, error) {
	if val := r.FormValue("text"); val != "" {
		return val, nil
	}

	file, err := h.readFile(r)

	if err != nil {
		return "", err
	}

	return string(file.Content), nil
}

func (h *Handler) readFile(r *http.Request) (*analyzer.File, error) {
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))

		if err != nil {
			return nil, err
		}

		contentType := header.Header.Get("Content-Type")

		if contentType == "" || contentType == "application/octet-stream" {
			contentType = source.ContentType(header.Filename)
		}

		return &analyzer.File{
			Name: header.Filename,

			Content:     data,
			ContentType: contentType,
		}, nil
	}

	contentType := r.Header.Get("Content-Type")
	contentDisposition := r.Header.Get("Content-Disposition")

	_, params, _ := mime.ParseMediaType(contentDisposition)

	filename := params["filename*"]
	filename = strings.TrimPrefix(filename, "UTF-8''")
	filename = strings.TrimPrefix(filename, "utf-8''")

	if filename == "" {
		filename = params["filename"]
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadSize))

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errors.New("missing file")
	}

	if contentType == "" && filename != "" {
		contentType = source.ContentType(filename)
	}

	return &analyzer.File{
		Name: filename,

		Content:     data,
		ContentType: contentType,
	}, nil
}
