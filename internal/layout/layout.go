// Package layout defines a renderer-independent document tree. The assembler
// in package bol produces a Document; package render walks it and emits PDF
// bytes. Nothing in here knows about fonts, points, or pages beyond relative
// column widths.
package layout

// Document is a single paginated document: metadata plus an ordered flow of
// section nodes.
type Document struct {
	// Title is embedded in the document metadata, not rendered as content.
	Title string
	Nodes []Node
}

// Node is one section of the document flow.
type Node interface {
	node()
}

// TextStyle selects one of the fixed text registers of the template.
type TextStyle int

const (
	StyleBody TextStyle = iota
	StyleTitle
	StyleHeader
	StyleSmall
	StyleFinePrint
)

// Title renders the document headline.
type Title struct {
	Text string
}

// Spacer inserts vertical whitespace, in fractions of an inch.
type Spacer struct {
	Inches float64
}

// Rule renders a horizontal line across the content width.
type Rule struct {
	Thickness float64
}

// Text renders a paragraph in the given style.
type Text struct {
	Content string
	Style   TextStyle
}

// Table renders a grid. Widths are fractions of the content width and must
// sum to at most 1. Header, when non-empty, renders as an inverted
// (light-on-dark) first row. Cell text may contain newlines.
type Table struct {
	Widths []float64
	Header []string
	Rows   [][]string
	Grid   bool
	Zebra  bool
}

// NoteBar renders a single line of inverted (light-on-dark) emphasis text.
type NoteBar struct {
	Text string
}

// SignatureBox renders a boxed fine-print paragraph followed by a blank
// fill-in line labelled with Label and a "Date" field.
type SignatureBox struct {
	Text  string
	Label string
}

func (Title) node()        {}
func (Spacer) node()       {}
func (Rule) node()         {}
func (Text) node()         {}
func (Table) node()        {}
func (NoteBar) node()      {}
func (SignatureBox) node() {}

// Add appends nodes to the document flow.
func (d *Document) Add(nodes ...Node) {
	d.Nodes = append(d.Nodes, nodes...)
}
