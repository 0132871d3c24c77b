package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adrianliechti/contentkit/server/api"
)

type SearchService struct {
	Options []RequestOption
}

func NewSearchService(opts ...RequestOption) SearchService {
	return SearchService{
		Options: opts,
	}
}

type SearchResult = api.SearchResult

type SearchRequest struct {
	Query string

	FileName string
	Limit    *int
}

func (r *SearchService) New(ctx context.Context, input SearchRequest, opts ...RequestOption) ([]SearchResult, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	values := url.Values{
		"q": {input.Query},
	}

	if input.FileName != "" {
		values.Set("fileName", input.FileName)
	}

	if input.Limit != nil {
		values.Set("limit", strconv.Itoa(*input.Limit))
	}

	req, _ := http.NewRequestWithContext(ctx, "GET", c.URL+"/v1/search?"+values.Encode(), nil)

	resp, err := c.do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result []SearchResult

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result, nil
}
