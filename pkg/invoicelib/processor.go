package invoicelib

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rezonia/au-invoice/internal/address"
	"github.com/rezonia/au-invoice/internal/llm"
	"github.com/rezonia/au-invoice/internal/model"
	"github.com/rezonia/au-invoice/internal/processor"
	"github.com/rezonia/au-invoice/internal/render"
	"github.com/rezonia/au-invoice/internal/urlstate"
)

// ErrNoSuggester is returned by SuggestAddress without an LLM API key
var ErrNoSuggester = errors.New("address suggestions need an LLM API key")

// Pipeline processes invoices from links or JSON documents
type Pipeline interface {
	// Process processes input and returns the computed invoice
	Process(ctx context.Context, r io.Reader) (*Result, error)

	// ProcessBatch processes multiple inputs
	ProcessBatch(ctx context.Context, inputs []io.Reader) ([]*Result, error)
}

// Result is a processed invoice
type Result struct {
	Document    Document
	Totals      Totals
	Lines       []Line
	Summary     []SummaryRow
	Warnings    []string
	NeedsReview bool
}

// Options configures the processor
type Options struct {
	// Location decides the date of a fresh invoice (default: time.Local)
	Location *time.Location

	// PageSize of rendered PDFs (default: A4)
	PageSize string

	// LLM configuration for address suggestions
	LLMAPIKey  string // API key (env: LLM_API_KEY)
	LLMBaseURL string // Base URL (env: LLM_BASE_URL)
	LLMModel   string // Model (env: LLM_MODEL)
}

// DefaultOptions returns default processor options
func DefaultOptions() Options {
	return Options{
		Location:   time.Local,
		PageSize:   "A4",
		LLMBaseURL: llm.DefaultBaseURL,
		LLMModel:   llm.ModelGPT4oMini,
	}
}

// Processor implements Pipeline using the internal processor
type Processor struct {
	pipeline  *processor.Pipeline
	suggester address.Suggester
	options   Options
}

var _ Pipeline = (*Processor)(nil)

// NewProcessor creates a new invoice processor with the given options
func NewProcessor(opts Options) *Processor {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	var suggester address.Suggester
	if opts.LLMAPIKey != "" {
		var clientOpts []llm.ClientOption
		if opts.LLMBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(opts.LLMBaseURL))
		}
		if opts.LLMModel != "" {
			clientOpts = append(clientOpts, llm.WithDefaultModel(opts.LLMModel))
		}
		suggester = llm.NewAddressSuggester(llm.NewClient(opts.LLMAPIKey, clientOpts...))
	}

	var renderOpts []render.PDFOption
	if opts.PageSize != "" {
		renderOpts = append(renderOpts, render.WithPageSize(opts.PageSize))
	}

	pipeline := processor.NewPipeline(
		processor.WithClock(func() time.Time { return time.Now().In(loc) }),
		processor.WithRenderer(render.NewPDFRenderer(renderOpts...)),
	)

	return &Processor{
		pipeline:  pipeline,
		suggester: suggester,
		options:   opts,
	}
}

// NewDefaultProcessor creates a processor with default options
func NewDefaultProcessor() *Processor {
	return NewProcessor(DefaultOptions())
}

// Process reads a shareable link or JSON document and computes the invoice
func (p *Processor) Process(ctx context.Context, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError("input", "", "failed to read input", err)
	}

	return toResult(p.pipeline.Process(ctx, data))
}

// ProcessDocument normalises, validates and computes an in-memory document
func (p *Processor) ProcessDocument(ctx context.Context, doc Document) (*Result, error) {
	return toResult(p.pipeline.ProcessDocument(ctx, doc))
}

// ProcessBatch processes multiple inputs concurrently
func (p *Processor) ProcessBatch(ctx context.Context, inputs []io.Reader) ([]*Result, error) {
	results := make([]*Result, len(inputs))
	errCh := make(chan error, len(inputs))

	for i, input := range inputs {
		go func(idx int, r io.Reader) {
			result, err := p.Process(ctx, r)
			if err != nil {
				errCh <- err
				return
			}
			results[idx] = result
			errCh <- nil
		}(i, input)
	}

	// Wait for all goroutines
	var firstErr error
	for range inputs {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

// RenderPDF writes doc as a PDF to w
func (p *Processor) RenderPDF(ctx context.Context, doc Document, w io.Writer) error {
	return p.pipeline.Render(ctx, doc, w)
}

// Link encodes doc as a query string that Process can read back
func (p *Processor) Link(doc Document) (string, error) {
	return urlstate.EncodeQuery(doc)
}

// SuggestAddress completes a partial Australian address
func (p *Processor) SuggestAddress(ctx context.Context, query string) ([]Address, error) {
	if p.suggester == nil {
		return nil, ErrNoSuggester
	}
	return p.suggester.Suggest(ctx, query)
}

func toResult(result *processor.Result) (*Result, error) {
	if result.Error != nil {
		return nil, result.Error
	}

	return &Result{
		Document:    *result.Document,
		Totals:      result.Totals,
		Lines:       result.Lines,
		Summary:     result.Summary,
		Warnings:    result.Warnings,
		NeedsReview: len(result.Warnings) > 0,
	}, nil
}
