package heading

import (
	"context"

	"github.com/adrianliechti/contentkit/pkg/segmenter"
	"github.com/adrianliechti/contentkit/pkg/text"
)

var _ segmenter.Provider = &Provider{}

// Provider segments markdown into one segment per level one or two section.
type Provider struct {
}

type Option func(*Provider)

func New(options ...Option) (*Provider, error) {
	p := &Provider{}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

func (p *Provider) Segment(ctx context.Context, input string, options *segmenter.SegmentOptions) ([]segmenter.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	segments := []segmenter.Segment{}

	for _, chunk := range text.ChunkByHeaders(input) {
		segments = append(segments, segmenter.Segment{
			Title: chunk.Title,
			Text:  chunk.Content,
		})
	}

	return segments, nil
}
