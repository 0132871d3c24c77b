package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/receipt"
)

type ReceiptService struct {
	Options []RequestOption
}

func NewReceiptService(opts ...RequestOption) ReceiptService {
	return ReceiptService{
		Options: opts,
	}
}

type Receipt = receipt.Receipt

type ReceiptRequest struct {
	URL string

	Name   string
	Reader io.Reader
}

func (r *ReceiptService) New(ctx context.Context, input ReceiptRequest, opts ...RequestOption) (*Receipt, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var req *http.Request

	if input.URL != "" {
		values := url.Values{"url": {input.URL}}

		req, _ = http.NewRequestWithContext(ctx, "POST", c.URL+"/v1/receipts", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		var data bytes.Buffer
		w := multipart.NewWriter(&data)

		file, err := w.CreateFormFile("file", input.Name)

		if err != nil {
			return nil, err
		}

		if _, err := io.Copy(file, input.Reader); err != nil {
			return nil, err
		}

		w.Close()

		req, _ = http.NewRequestWithContext(ctx, "POST", c.URL+"/v1/receipts", &data)
		req.Header.Set("Content-Type", w.FormDataContentType())
	}

	resp, err := c.do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result Receipt

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
