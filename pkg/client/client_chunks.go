package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/adrianliechti/contentkit/server/api"
)

type ChunkService struct {
	Options []RequestOption
}

func NewChunkService(opts ...RequestOption) ChunkService {
	return ChunkService{
		Options: opts,
	}
}

type Chunk = api.Chunk

type ChunkRequest struct {
	FileName string
	Markdown string
}

func (r *ChunkService) New(ctx context.Context, input ChunkRequest, opts ...RequestOption) ([]Chunk, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	u := c.URL + "/v1/chunks"

	if input.FileName != "" {
		u += "?" + url.Values{"fileName": {input.FileName}}.Encode()
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", u, strings.NewReader(input.Markdown))
	req.Header.Set("Content-Type", "text/markdown")

	resp, err := c.do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result []Chunk

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result, nil
}
