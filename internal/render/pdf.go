package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	money "github.com/rezonia/au-invoice/internal/decimal"
	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
)

// Page geometry in millimetres
const (
	marginMM     = 15.0
	lineHeightMM = 5.0
	cellPadMM    = 1.0
)

// Item table column widths, summing to the A4 content width
var columnWidths = []float64{60, 24, 36, 24, 36}

const (
	headerFill = 0xf2
	borderGrey = 0xcc
)

// Filename returns the download name for an invoice PDF
func Filename(invoiceNumber string) string {
	return fmt.Sprintf("invoice-%s.pdf", invoiceNumber)
}

// PDFOption configures the renderer
type PDFOption func(*PDFRenderer)

// WithPageSize sets the page size (default A4)
func WithPageSize(size string) PDFOption {
	return func(r *PDFRenderer) {
		r.pageSize = size
	}
}

// WithFontFamily sets the core font family (default Helvetica)
func WithFontFamily(family string) PDFOption {
	return func(r *PDFRenderer) {
		r.fontFamily = family
	}
}

// WithCreator sets the PDF creator metadata
func WithCreator(creator string) PDFOption {
	return func(r *PDFRenderer) {
		r.creator = creator
	}
}

// PDFRenderer lays out a tax invoice on a PDF page
type PDFRenderer struct {
	pageSize   string
	fontFamily string
	creator    string
}

// NewPDFRenderer creates a renderer with the given options
func NewPDFRenderer(opts ...PDFOption) *PDFRenderer {
	r := &PDFRenderer{
		pageSize:   "A4",
		fontFamily: "Helvetica",
		creator:    "au-invoice",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContentType is the MIME type written by Render
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// Render writes doc as a PDF tax invoice to w
func (r *PDFRenderer) Render(w io.Writer, doc model.Document) error {
	pdf := gofpdf.New("P", "mm", r.pageSize, "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	pdf.SetTitle("Tax Invoice "+doc.Details.InvoiceNumber, true)
	pdf.SetAuthor(doc.Business.Name, true)
	pdf.SetCreator(r.creator, true)
	pdf.AddPage()

	l := &layout{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		family: r.fontFamily,
	}

	l.billTo(doc.Client, doc.Details)
	l.title(doc.Details.InvoiceNumber)
	l.items(doc.Items, doc.Details.Currency)
	l.summary(invoice.ComputeTotals(doc.Items), doc.Details.Currency)
	l.footer(doc.Business)

	if err := pdf.Output(w); err != nil {
		return model.NewRenderError("pdf", "failed to write document", err)
	}
	return nil
}

// layout carries the drawing state for one document
type layout struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	family string
}

func (l *layout) font(style string, size float64) {
	l.pdf.SetFont(l.family, style, size)
}

func (l *layout) contentWidth() float64 {
	w, _ := l.pdf.GetPageSize()
	return w - 2*marginMM
}

// text writes one line at the current position and moves to the next line
func (l *layout) text(w float64, s, align string) {
	l.pdf.CellFormat(w, lineHeightMM, l.tr(s), "", 1, align, false, 0, "")
}

func (l *layout) billTo(c model.Client, d model.InvoiceDetails) {
	width := l.contentWidth()
	top := l.pdf.GetY()

	l.font("", 10)
	l.text(width*0.35, "Bill To:", "L")
	l.pdf.Ln(lineHeightMM)

	l.font("B", 10)
	l.text(width*0.35, c.Name, "L")
	l.font("", 10)
	for _, line := range partyLines(c.ABN, c.ACN, c.Address) {
		l.text(width*0.35, line, "L")
	}
	leftBottom := l.pdf.GetY()

	// Date box on the right
	boxX := marginMM + width*0.70
	labelW, valueW := width*0.15, width*0.15
	l.pdf.SetXY(boxX, top)
	l.pdf.CellFormat(labelW, lineHeightMM, "Invoice Date:", "", 0, "R", false, 0, "")
	l.pdf.CellFormat(valueW, lineHeightMM, " "+invoice.FormatDisplayDate(d.InvoiceDate), "", 1, "L", false, 0, "")
	if d.DueDate != "" {
		l.pdf.SetX(boxX)
		l.font("B", 10)
		l.pdf.CellFormat(labelW, lineHeightMM, "Due Date:", "", 0, "R", false, 0, "")
		l.font("", 10)
		l.pdf.CellFormat(valueW, lineHeightMM, " "+invoice.FormatDisplayDate(d.DueDate), "", 1, "L", false, 0, "")
	}

	if l.pdf.GetY() < leftBottom {
		l.pdf.SetY(leftBottom)
	}
	l.pdf.SetX(marginMM)
}

func (l *layout) title(number string) {
	l.pdf.Ln(lineHeightMM * 2)
	l.font("B", 16)
	l.pdf.CellFormat(l.contentWidth(), lineHeightMM*2, l.tr("Tax Invoice # "+number), "", 1, "C", false, 0, "")
	l.pdf.Ln(lineHeightMM * 2)
}

func (l *layout) items(items []model.LineItem, currency string) {
	aligns := []string{"C", "C", "C", "C", "C"}

	l.pdf.SetDrawColor(borderGrey, borderGrey, borderGrey)
	l.pdf.SetFillColor(headerFill, headerFill, headerFill)
	l.font("B", 10)
	l.row([]string{"Description", "Qty", "Unit Price", "GST", invoice.AmountHeader(currency)}, aligns, true)

	l.font("", 10)
	for _, line := range invoice.ComputeLines(items) {
		l.row([]string{
			line.Name,
			line.Quantity.String(),
			money.FormatCurrency(line.UnitPrice),
			line.GSTLabel,
			money.FormatCurrency(line.Amount),
		}, aligns, false)
	}
}

// row draws one bordered table row, wrapping long cell text and breaking
// the page when the row would not fit
func (l *layout) row(values, aligns []string, fill bool) {
	split := make([][][]byte, len(values))
	lines := 1
	for i, v := range values {
		split[i] = l.pdf.SplitLines([]byte(l.tr(v)), columnWidths[i]-2*cellPadMM)
		if len(split[i]) > lines {
			lines = len(split[i])
		}
	}
	h := float64(lines)*lineHeightMM + 2*cellPadMM

	_, pageH := l.pdf.GetPageSize()
	if l.pdf.GetY()+h > pageH-marginMM {
		l.pdf.AddPage()
	}

	style := "D"
	if fill {
		style = "FD"
	}

	x, y := marginMM, l.pdf.GetY()
	for i, cell := range split {
		w := columnWidths[i]
		l.pdf.Rect(x, y, w, h, style)
		for j, text := range cell {
			l.pdf.SetXY(x+cellPadMM, y+cellPadMM+float64(j)*lineHeightMM)
			l.pdf.CellFormat(w-2*cellPadMM, lineHeightMM, string(text), "", 0, aligns[i], false, 0, "")
		}
		x += w
	}
	l.pdf.SetXY(marginMM, y+h)
}

func (l *layout) summary(totals model.Totals, currency string) {
	width := l.contentWidth()
	amountW := columnWidths[len(columnWidths)-1]

	l.pdf.Ln(cellPadMM)
	for _, row := range invoice.SummaryRows(totals, currency) {
		style := ""
		if row.Bold {
			style = "B"
		}
		l.font(style, 10)
		l.pdf.CellFormat(width-amountW, lineHeightMM+cellPadMM, l.tr(row.Label), "", 0, "R", false, 0, "")
		l.pdf.CellFormat(amountW, lineHeightMM+cellPadMM, row.Formatted, "", 1, "R", false, 0, "")
	}
}

func (l *layout) footer(b model.Business) {
	width := l.contentWidth()
	l.pdf.Ln(lineHeightMM * 4)
	top := l.pdf.GetY()

	l.font("B", 9)
	l.text(width*0.33, b.Name, "L")
	l.font("", 9)
	details := partyLines(b.ABN, b.ACN, b.Address)
	if b.Email != "" {
		details = append(details, b.Email)
	}
	if b.Phone != "" {
		details = append(details, b.Phone)
	}
	for _, line := range details {
		l.text(width*0.33, line, "L")
	}

	if !b.HasBankDetails() {
		return
	}

	bankX := marginMM + width*0.60
	bankW := width * 0.40
	labelW := bankW * 0.6
	l.pdf.SetXY(bankX, top)
	l.pdf.CellFormat(bankW, lineHeightMM+cellPadMM, "Bank Account Details", "", 1, "R", false, 0, "")
	l.pdf.SetX(bankX)
	l.pdf.CellFormat(bankW, lineHeightMM, l.tr(b.AccountName), "", 1, "R", false, 0, "")
	l.pdf.SetX(bankX)
	l.pdf.CellFormat(labelW, lineHeightMM, "BSB:", "", 0, "R", false, 0, "")
	l.pdf.CellFormat(bankW-labelW, lineHeightMM, " "+b.BSB, "", 1, "L", false, 0, "")
	l.pdf.SetX(bankX)
	l.pdf.CellFormat(labelW, lineHeightMM, "Account No:", "", 0, "R", false, 0, "")
	l.pdf.CellFormat(bankW-labelW, lineHeightMM, " "+l.tr(b.AccountNumber), "", 1, "L", false, 0, "")
}

// partyLines lists the identifier and address lines printed under a party name
func partyLines(abn, acn string, a model.Address) []string {
	var lines []string
	if abn != "" {
		lines = append(lines, "ABN: "+abn)
	}
	if acn != "" {
		lines = append(lines, "ACN: "+acn)
	}
	lines = append(lines, a.Street)
	lines = append(lines, strings.TrimSpace(strings.Join(nonEmpty(a.Suburb, a.State, a.Postcode), " ")))
	return lines
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
