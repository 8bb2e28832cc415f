// Package processor ties decoding, normalisation, validation, totals and
// rendering into a single invoice pipeline.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rezonia/au-invoice/internal/format"
	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
	"github.com/rezonia/au-invoice/internal/render"
	"github.com/rezonia/au-invoice/internal/urlstate"
)

// Format represents the detected input format
type Format int

const (
	FormatUnknown Format = iota
	FormatQuery
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatQuery:
		return "query"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Renderer writes a document in some output format
type Renderer interface {
	Render(w io.Writer, doc model.Document) error
	ContentType() string
}

// Result contains the processed invoice
type Result struct {
	Document *model.Document      `json:"document,omitempty"`
	Totals   model.Totals         `json:"totals"`
	Lines    []invoice.Line       `json:"lines"`
	Summary  []invoice.SummaryRow `json:"summary"`
	Format   Format               `json:"-"`
	Warnings []string             `json:"warnings,omitempty"`
	Error    error                `json:"-"`
}

// Pipeline orchestrates invoice processing
type Pipeline struct {
	now      func() time.Time
	renderer Renderer
}

// PipelineOption configures the pipeline
type PipelineOption func(*Pipeline)

// WithClock sets the clock used for default invoice dates
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithRenderer sets the renderer used by Render
func WithRenderer(r Renderer) PipelineOption {
	return func(p *Pipeline) {
		if r != nil {
			p.renderer = r
		}
	}
}

// NewPipeline creates a new processing pipeline
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		now:      time.Now,
		renderer: render.NewPDFRenderer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ContentType is the MIME type written by Render
func (p *Pipeline) ContentType() string {
	return p.renderer.ContentType()
}

// Process detects the input format and processes it
func (p *Pipeline) Process(ctx context.Context, data []byte) *Result {
	switch f := DetectFormat(data); f {
	case FormatJSON:
		return p.ProcessJSON(ctx, data)
	case FormatQuery:
		return p.ProcessQuery(ctx, string(data))
	default:
		return &Result{Format: f, Error: model.NewParseError("input", preview(data), "unsupported input format", nil)}
	}
}

// ProcessQuery processes a shareable invoice URL or query string
func (p *Pipeline) ProcessQuery(ctx context.Context, raw string) *Result {
	result := &Result{Format: FormatQuery}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	decoded, err := urlstate.ParseQuery(raw, p.now())
	if err != nil {
		result.Error = fmt.Errorf("query decoding failed: %w", err)
		return result
	}
	result.Warnings = append(result.Warnings, decoded.Warnings...)

	return p.finish(ctx, result, decoded.Document)
}

// ProcessJSON processes a JSON encoded document
func (p *Pipeline) ProcessJSON(ctx context.Context, data []byte) *Result {
	result := &Result{Format: FormatJSON}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Error = model.NewParseError("document", preview(data), "JSON decoding failed", err)
		return result
	}

	if doc.Details.InvoiceDate == "" {
		defaults := invoice.NewDetails(p.now())
		if doc.Details.InvoiceNumber == "" {
			doc.Details.InvoiceNumber = defaults.InvoiceNumber
		}
		if doc.Details.DueDate == "" {
			doc.Details.DueDate = defaults.DueDate
		}
		doc.Details.InvoiceDate = defaults.InvoiceDate
		result.Warnings = append(result.Warnings, "invoice date missing, using today")
	}

	return p.finish(ctx, result, doc)
}

// ProcessDocument processes an already decoded document
func (p *Pipeline) ProcessDocument(ctx context.Context, doc model.Document) *Result {
	return p.finish(ctx, &Result{}, doc)
}

func (p *Pipeline) finish(ctx context.Context, result *Result, doc model.Document) *Result {
	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	doc.Business = format.NormalizeBusiness(doc.Business)
	doc.Client = format.NormalizeClient(doc.Client)
	for i := range doc.Items {
		if doc.Items[i].ID == "" {
			doc.Items[i].ID = invoice.NewItemID()
		}
		if doc.Items[i].GST == "" {
			doc.Items[i].GST = model.GSTAdd
		}
	}

	errs, warnings := invoice.Validate(doc)
	result.Warnings = append(result.Warnings, warnings...)

	result.Document = &doc
	result.Lines = invoice.ComputeLines(doc.Items)
	result.Totals = invoice.ComputeTotals(doc.Items)
	result.Summary = invoice.SummaryRows(result.Totals, doc.Details.Currency)

	if len(errs) > 0 {
		result.Error = fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}

	return result
}

// Render writes doc with the configured renderer
func (p *Pipeline) Render(ctx context.Context, doc model.Document, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.renderer.Render(w, doc)
}

// DetectFormat detects the input format from data
func DetectFormat(data []byte) Format {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return FormatUnknown
	}

	switch data[0] {
	case '{':
		return FormatJSON
	case '?':
		return FormatQuery
	}

	if bytes.HasPrefix(data, []byte("http://")) || bytes.HasPrefix(data, []byte("https://")) {
		return FormatQuery
	}

	// Bare query strings are key=value pairs without whitespace
	if bytes.IndexByte(data, '=') > 0 && !bytes.ContainsAny(data, " \t\r\n") {
		return FormatQuery
	}

	return FormatUnknown
}

func preview(data []byte) string {
	const n = 40
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
