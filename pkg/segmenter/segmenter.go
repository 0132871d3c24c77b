package segmenter

import (
	"context"
)

type Provider interface {
	Segment(ctx context.Context, input string, options *SegmentOptions) ([]Segment, error)
}

type SegmentOptions struct {
	FileName string
}

type Segment struct {
	Title string
	Text  string
}
