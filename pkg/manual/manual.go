package manual

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/index"
	"github.com/adrianliechti/contentkit/pkg/segmenter"
)

const (
	DefaultAnalyzer    = "prebuilt-documentSearch"
	DefaultConcurrency = 4
)

type Indexer struct {
	analyzer  analyzer.Provider
	segmenter segmenter.Provider
	index     index.Provider

	analyzerID  string
	interval    time.Duration
	concurrency int
}

type Option func(*Indexer)

func WithAnalyzer(id string) Option {
	return func(i *Indexer) {
		if id != "" {
			i.analyzerID = id
		}
	}
}

func WithInterval(interval time.Duration) Option {
	return func(i *Indexer) {
		i.interval = interval
	}
}

func WithConcurrency(n int) Option {
	return func(i *Indexer) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

func New(a analyzer.Provider, s segmenter.Provider, idx index.Provider, options ...Option) (*Indexer, error) {
	if a == nil || s == nil || idx == nil {
		return nil, errors.New("analyzer, segmenter and index are required")
	}

	i := &Indexer{
		analyzer:  a,
		segmenter: s,
		index:     idx,

		analyzerID:  DefaultAnalyzer,
		interval:    analyzer.DefaultInterval,
		concurrency: DefaultConcurrency,
	}

	for _, option := range options {
		option(i)
	}

	return i, nil
}

// Report describes the outcome for one input file.
type Report struct {
	File string

	OperationID string
	State       analyzer.State

	Chunks int
	Err    error
}

// Index analyzes the files concurrently, splits each document into sections
// and uploads one index document per section. Files whose analysis fails are
// reported and skipped; transport errors are joined into the returned error.
func (i *Indexer) Index(ctx context.Context, files ...analyzer.File) ([]Report, error) {
	reports := make([]Report, len(files))
	documents := make([][]index.Document, len(files))

	sem := make(chan struct{}, i.concurrency)

	var wg sync.WaitGroup

	for n, file := range files {
		wg.Go(func() {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				reports[n] = Report{File: file.Name, Err: ctx.Err()}
				return
			}

			defer func() { <-sem }()

			reports[n], documents[n] = i.process(ctx, file)
		})
	}

	wg.Wait()

	var batch []index.Document
	var errs []error

	for _, r := range reports {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.File, r.Err))
		}
	}

	for _, docs := range documents {
		batch = append(batch, docs...)
	}

	if len(batch) > 0 {
		slog.InfoContext(ctx, "uploading chunks", "count", len(batch))

		if err := i.index.Index(ctx, batch...); err != nil {
			errs = append(errs, fmt.Errorf("indexing: %w", err))
		}
	}

	return reports, errors.Join(errs...)
}

func (i *Indexer) process(ctx context.Context, file analyzer.File) (Report, []index.Document) {
	report := Report{
		File: file.Name,
	}

	slog.InfoContext(ctx, "analyzing manual", "file", file.Name, "analyzer", i.analyzerID)

	op, err := analyzer.AnalyzeBinary(ctx, i.analyzer, i.analyzerID, file, i.interval)

	if err != nil {
		report.Err = err
		return report, nil
	}

	report.OperationID = op.ID
	report.State = op.State

	if op.State != analyzer.StateSucceeded {
		slog.WarnContext(ctx, "analysis failed", "file", file.Name, "operation", op.ID, "status", op.State)
		return report, nil
	}

	content, ok := op.Result.Document()

	if !ok {
		slog.WarnContext(ctx, "no document content", "file", file.Name, "operation", op.ID)
		return report, nil
	}

	slog.InfoContext(ctx, "manual analyzed", "file", file.Name, "length", len(content.Markdown))

	segments, err := i.segmenter.Segment(ctx, content.Markdown, &segmenter.SegmentOptions{FileName: file.Name})

	if err != nil {
		report.Err = err
		return report, nil
	}

	documents := Documents(file.Name, segments, time.Now().UTC())

	report.Chunks = len(documents)

	return report, documents
}

// Documents turns the sections of a file into index documents with ids
// of the form "{base}_chunk{n}".
func Documents(fileName string, segments []segmenter.Segment, indexedAt time.Time) []index.Document {
	base := DocumentID(fileName)
	name := filepath.Base(fileName)

	var result []index.Document

	for n, s := range segments {
		result = append(result, index.Document{
			ID: fmt.Sprintf("%s_chunk%d", base, n),

			FileName:     name,
			SectionTitle: s.Title,
			ChunkIndex:   n,

			Content: s.Text,

			IndexedAt: indexedAt,
		})
	}

	return result
}

// DocumentID derives a key from the file name without extension, keeping
// only letters, digits, '-' and '_'.
func DocumentID(fileName string) string {
	name := filepath.Base(fileName)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}

		return -1
	}, name)
}
