// Package render emits PDF bytes for a layout tree. It is the only package
// that talks to the typesetting engine; everything above it works on the
// renderer-independent layout.Document.
package render

import (
	"bytes"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	derrors "git.home.luguber.info/inful/bolgen/internal/errors"
	"git.home.luguber.info/inful/bolgen/internal/layout"
)

// Letter geometry in points.
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	inch         = 72.0
	marginSide   = 0.6 * inch
	marginTop    = 0.55 * inch
	marginBottom = 0.55 * inch
	contentWidth = pageWidth - 2*marginSide

	cellPadding = 6.0
	boxPadding  = 8.0
)

// creationDate is pinned so identical input produces byte-identical output.
// Embedding wall-clock generation timestamps would break render idempotence.
var creationDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// encodeText transcodes UTF-8 layout text to Windows-1252, the code page of
// the engine's core fonts. The engine indexes a 256-entry width table, so
// multi-byte UTF-8 must never reach it; runes outside the code page (the
// em-dash placeholder is inside it) degrade to '?'.
func encodeText(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

type fontSpec struct {
	style   string
	size    float64
	leading float64
}

func fontFor(s layout.TextStyle) fontSpec {
	switch s {
	case layout.StyleTitle:
		return fontSpec{"B", 20, 22}
	case layout.StyleHeader:
		return fontSpec{"", 10, 12}
	case layout.StyleSmall:
		return fontSpec{"", 9, 11}
	case layout.StyleFinePrint:
		return fontSpec{"", 7.5, 9}
	default:
		return fontSpec{"", 10, 12}
	}
}

// PDF renders the document tree to PDF bytes. Engine faults surface as
// render errors; they are never swallowed.
func PDF(doc *layout.Document) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreationDate(creationDate)
	pdf.SetModificationDate(creationDate)
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	r := &renderer{pdf: pdf}
	for _, n := range doc.Nodes {
		r.node(n)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, derrors.RenderFault(err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf *fpdf.Fpdf
}

func (r *renderer) setFont(f fontSpec) {
	r.pdf.SetFont("Helvetica", f.style, f.size)
}

func (r *renderer) body() {
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetFillColor(255, 255, 255)
}

func (r *renderer) node(n layout.Node) {
	switch v := n.(type) {
	case layout.Title:
		f := fontFor(layout.StyleTitle)
		r.setFont(f)
		r.pdf.CellFormat(contentWidth, f.leading, encodeText(v.Text), "", 1, "L", false, 0, "")
	case layout.Spacer:
		r.pdf.Ln(v.Inches * inch)
	case layout.Rule:
		y := r.pdf.GetY()
		r.pdf.SetLineWidth(v.Thickness)
		r.pdf.Line(marginSide, y, pageWidth-marginSide, y)
		r.pdf.SetLineWidth(0.2)
	case layout.Text:
		f := fontFor(v.Style)
		r.setFont(f)
		r.pdf.MultiCell(contentWidth, f.leading, encodeText(v.Content), "", "L", false)
	case layout.NoteBar:
		r.noteBar(v)
	case layout.Table:
		r.table(v)
	case layout.SignatureBox:
		r.signatureBox(v)
	}
}

func (r *renderer) noteBar(n layout.NoteBar) {
	r.pdf.SetFillColor(0, 0, 0)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Helvetica", "B", 9)

	lines := r.wrap(encodeText(n.Text), contentWidth-2*cellPadding)
	height := float64(len(lines))*11 + 2*cellPadding

	x, y := marginSide, r.pdf.GetY()
	r.pdf.Rect(x, y, contentWidth, height, "F")
	r.pdf.SetXY(x+cellPadding, y+cellPadding)
	for _, line := range lines {
		r.pdf.CellFormat(contentWidth-2*cellPadding, 11, line, "", 2, "L", false, 0, "")
		r.pdf.SetX(x + cellPadding)
	}
	r.pdf.SetXY(marginSide, y+height)
	r.body()
}

// wrap breaks already-encoded text into lines fitting the given width. The
// byte-based SplitLines is used because SplitText converts to runes and
// indexes the core font's 256-entry width table past its bounds.
func (r *renderer) wrap(encoded string, width float64) []string {
	split := r.pdf.SplitLines([]byte(encoded), width)
	lines := make([]string, len(split))
	for i, ln := range split {
		lines[i] = string(ln)
	}
	return lines
}

// cellLines wraps one cell's text at the cell width, honoring embedded
// newlines. Empty segments keep their line so party blocks stay aligned.
func (r *renderer) cellLines(text string, width float64) []string {
	var lines []string
	for _, segment := range strings.Split(encodeText(text), "\n") {
		if segment == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, r.wrap(segment, width-2*cellPadding)...)
	}
	return lines
}

func (r *renderer) pageBreakIfNeeded(rowHeight float64) {
	if r.pdf.GetY()+rowHeight > pageHeight-marginBottom {
		r.pdf.AddPage()
	}
}

func (r *renderer) table(t layout.Table) {
	defer r.body()
	r.pdf.SetAutoPageBreak(false, marginBottom)
	defer r.pdf.SetAutoPageBreak(true, marginBottom)

	widths := make([]float64, len(t.Widths))
	for i, w := range t.Widths {
		widths[i] = w * contentWidth
	}

	const leading = 11.0

	if len(t.Header) > 0 {
		height := leading + 2*cellPadding
		r.pageBreakIfNeeded(height)
		r.pdf.SetFont("Helvetica", "B", 9)
		r.pdf.SetFillColor(0, 0, 0)
		r.pdf.SetTextColor(255, 255, 255)
		x, y := marginSide, r.pdf.GetY()
		for i, h := range t.Header {
			r.pdf.Rect(x, y, widths[i], height, "F")
			r.pdf.SetXY(x+cellPadding, y+cellPadding)
			r.pdf.CellFormat(widths[i]-2*cellPadding, leading, encodeText(h), "", 0, "L", false, 0, "")
			x += widths[i]
		}
		r.pdf.SetXY(marginSide, y+height)
		r.body()
	}

	r.pdf.SetFont("Helvetica", "", 9)
	for rowIdx, row := range t.Rows {
		cells := make([][]string, len(row))
		maxLines := 1
		for i, cell := range row {
			cells[i] = r.cellLines(cell, widths[i])
			if len(cells[i]) > maxLines {
				maxLines = len(cells[i])
			}
		}
		height := float64(maxLines)*leading + 2*cellPadding
		r.pageBreakIfNeeded(height)

		x, y := marginSide, r.pdf.GetY()
		for i := range row {
			if t.Zebra && rowIdx%2 == 0 {
				r.pdf.SetFillColor(245, 245, 245)
				r.pdf.Rect(x, y, widths[i], height, "F")
				r.pdf.SetFillColor(255, 255, 255)
			}
			if t.Grid {
				r.pdf.SetDrawColor(128, 128, 128)
				r.pdf.Rect(x, y, widths[i], height, "D")
				r.pdf.SetDrawColor(0, 0, 0)
			}
			r.pdf.SetXY(x+cellPadding, y+cellPadding)
			for _, line := range cells[i] {
				r.pdf.CellFormat(widths[i]-2*cellPadding, leading, line, "", 2, "L", false, 0, "")
				r.pdf.SetX(x + cellPadding)
			}
			x += widths[i]
		}
		r.pdf.SetXY(marginSide, y+height)
	}
}

func (r *renderer) signatureBox(b layout.SignatureBox) {
	defer r.body()
	r.pdf.SetAutoPageBreak(false, marginBottom)
	defer r.pdf.SetAutoPageBreak(true, marginBottom)

	fine := fontFor(layout.StyleFinePrint)
	r.setFont(fine)

	innerWidth := contentWidth - 2*boxPadding
	lines := r.wrap(encodeText(b.Text), innerWidth)

	textHeight := float64(len(lines)) * fine.leading
	const gap = 0.15 * inch
	const lineHeight = 12.0
	height := boxPadding + textHeight + gap + lineHeight + boxPadding

	r.pageBreakIfNeeded(height)

	x, y := marginSide, r.pdf.GetY()
	r.pdf.Rect(x, y, contentWidth, height, "D")

	r.pdf.SetXY(x+boxPadding, y+boxPadding)
	for _, line := range lines {
		r.pdf.CellFormat(innerWidth, fine.leading, line, "", 2, "L", false, 0, "")
		r.pdf.SetX(x + boxPadding)
	}

	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.SetXY(x+boxPadding, y+boxPadding+textHeight+gap)
	signWidth := innerWidth * 0.74
	r.pdf.CellFormat(signWidth, lineHeight, encodeText(b.Label)+": ________________________________", "", 0, "L", false, 0, "")
	r.pdf.CellFormat(innerWidth-signWidth, lineHeight, "Date: ________________", "", 0, "L", false, 0, "")

	r.pdf.SetXY(marginSide, y+height)
}
