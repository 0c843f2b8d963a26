// Package bol assembles a Bill-of-Lading layout tree from a shipment record.
//
// The layout is fixed: title, a header strip, the parties block, the
// reference table, the services line, the items table, and immutable legal
// boilerplate with signature blocks. Every lookup has a default; missing
// optional values render as em-dashes or omissions, never as errors.
package bol

import (
	"strings"

	"git.home.luguber.info/inful/bolgen/internal/layout"
	"git.home.luguber.info/inful/bolgen/internal/shipment"
)

// liftgateCodes are the accessorial codes that surface as "Liftgate" on the
// services line. All other flags are carried in the data but not displayed.
var liftgateCodes = map[string]bool{
	"LIFTGATE": true,
	"LIFT":     true,
	"LG":       true,
	"LG1":      true,
}

// Options are the named template toggles the layout is parameterized by.
type Options struct {
	// Title overrides the document heading; empty means the standard
	// "BILL OF LADING".
	Title string
	// IncludeServicesLine controls the "Services:" line under the
	// reference table.
	IncludeServicesLine bool
	// ReferenceExclusions filters reference rows whose Type contains one of
	// these substrings (case-insensitive). Presentation-only: the entries
	// stay in the record for every other consumer.
	ReferenceExclusions []string
	// IncludeSignatureBlocks controls the shipper/driver signature boxes.
	IncludeSignatureBlocks bool
}

// DefaultOptions returns the canonical template configuration.
func DefaultOptions() Options {
	return Options{
		IncludeServicesLine:    true,
		ReferenceExclusions:    []string{"job name", "load number"},
		IncludeSignatureBlocks: true,
	}
}

// Build derives the layout tree for a shipment. Deterministic: identical
// input yields an identical tree.
func Build(sh *shipment.Shipment, opts Options) *layout.Document {
	doc := &layout.Document{Title: "Bill of Lading"}

	title := opts.Title
	if title == "" {
		title = documentTitle
	}
	doc.Add(
		layout.Title{Text: title},
		layout.Spacer{Inches: 0.30},
	)

	doc.Add(headerStrip(sh))
	doc.Add(
		layout.Spacer{Inches: 0.08},
		layout.Rule{Thickness: 1.1},
		layout.Spacer{Inches: 0.12},
	)

	doc.Add(partiesTable(sh))

	if refs := referenceTable(sh, opts.ReferenceExclusions); refs != nil {
		doc.Add(layout.Spacer{Inches: 0.12}, *refs)
	}

	if opts.IncludeServicesLine {
		doc.Add(
			layout.Spacer{Inches: 0.08},
			layout.Text{Content: "Services: " + servicesLine(sh), Style: layout.StyleHeader},
		)
	}

	doc.Add(layout.Spacer{Inches: 0.20})
	doc.Add(itemsSection(sh))

	doc.Add(
		layout.Spacer{Inches: 0.30},
		layout.NoteBar{Text: noteBarText},
		layout.Spacer{Inches: 0.10},
		layout.Text{Content: legalParagraph, Style: layout.StyleFinePrint},
	)

	if opts.IncludeSignatureBlocks {
		doc.Add(
			layout.Spacer{Inches: 0.40},
			layout.SignatureBox{Text: shipperCertification, Label: "Shipper Signature"},
			layout.Spacer{Inches: 0.25},
			layout.SignatureBox{Text: driverAcknowledgment, Label: "Driver Signature"},
		)
	}

	return doc
}

// dashWhenEmpty substitutes the em-dash placeholder for missing values.
func dashWhenEmpty(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func headerStrip(sh *shipment.Shipment) layout.Table {
	pref, _ := sh.PrimaryReference()

	pickup := ""
	if sh.Dates != nil {
		pickup = DateOnly(str(sh.Dates.EarliestPickupDate))
	}

	return layout.Table{
		Widths: []float64{0.39, 0.305, 0.305},
		Rows: [][]string{{
			"Primary Reference: " + dashWhenEmpty(pref),
			"Date: " + dashWhenEmpty(pickup),
			termsLine,
		}},
	}
}

// partyLines renders one party as its populated lines, in template order.
// Bill-To never shows the residential marker.
func partyLines(p *shipment.Party, includeResidential bool) []string {
	if p == nil {
		return nil
	}

	var lines []string
	appendNonEmpty := func(s string) {
		if s != "" {
			lines = append(lines, s)
		}
	}

	appendNonEmpty(str(p.Name))
	appendNonEmpty(str(p.AddressLine1))
	appendNonEmpty(str(p.AddressLine2))
	appendNonEmpty(CityLine(str(p.City), str(p.StateProvince), str(p.PostalCode)))
	appendNonEmpty(str(p.CountryCode))

	if p.Contact != nil {
		if ph := FormatPhone(str(p.Contact.Phone)); ph != "" {
			lines = append(lines, "Phone: "+ph)
		}
	}

	if includeResidential && p.IsResidential != nil && *p.IsResidential {
		lines = append(lines, "Residential: Yes")
	}

	return lines
}

func partiesTable(sh *shipment.Shipment) layout.Table {
	var billTo *shipment.Party
	if sh.Payment != nil {
		billTo = sh.Payment.Address
	}

	return layout.Table{
		Widths: []float64{1.0 / 3, 1.0 / 3, 1.0 / 3},
		Header: []string{"Shipper", "Consignee", "Bill To"},
		Rows: [][]string{{
			strings.Join(partyLines(sh.Shipper, true), "\n"),
			strings.Join(partyLines(sh.Consignee, true), "\n"),
			strings.Join(partyLines(billTo, false), "\n"),
		}},
		Grid: true,
	}
}

// excludeReferenceType reports whether a reference type is filtered from the
// printed table. Presentation-only; the entries remain in the record.
func excludeReferenceType(refType string, exclusions []string) bool {
	t := strings.ToLower(strings.TrimSpace(refType))
	for _, ex := range exclusions {
		if ex != "" && strings.Contains(t, ex) {
			return true
		}
	}
	return false
}

// referenceTable returns nil when no printable rows remain.
func referenceTable(sh *shipment.Shipment, exclusions []string) *layout.Table {
	var rows [][]string
	for _, r := range sh.ReferenceNumbers {
		if excludeReferenceType(r.Type, exclusions) {
			continue
		}
		if r.Type == "" && r.ReferenceNumber == "" {
			continue
		}
		rows = append(rows, []string{r.Type, dashWhenEmpty(r.ReferenceNumber)})
	}
	if len(rows) == 0 {
		return nil
	}
	return &layout.Table{
		Widths: []float64{0.5, 0.5},
		Header: []string{"Type", "Reference Number"},
		Rows:   rows,
		Grid:   true,
	}
}

// servicesLine always leads with "Appointment Required" and appends
// "Liftgate" at most once when any liftgate accessorial is selected. Legacy
// payloads carry service flags under Constraints.ServiceFlags, which the
// typed schema does not model, so the passthrough bag is consulted too.
func servicesLine(sh *shipment.Shipment) string {
	services := []string{"Appointment Required"}

	liftgate := false
	for _, f := range sh.ServiceFlags {
		if f.IsSelected && liftgateCodes[strings.ToUpper(f.ServiceCode)] {
			liftgate = true
		}
	}
	if v, ok := shipment.Lookup(sh.Extra, "Constraints", "ServiceFlags"); ok {
		if flags, ok := v.([]any); ok {
			for _, raw := range flags {
				f, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				if selected, _ := f["IsSelected"].(bool); !selected {
					continue
				}
				if code, _ := f["ServiceCode"].(string); liftgateCodes[strings.ToUpper(code)] {
					liftgate = true
				}
			}
		}
	}
	if liftgate {
		services = append(services, "Liftgate")
	}

	return strings.Join(services, ", ")
}

// itemRow maps one line item onto the six-column items row.
func itemRow(it shipment.Item) []string {
	var qty, wt, dims, class string

	if it.Quantities != nil {
		qty = strings.TrimSpace(it.Quantities.Actual.String() + " " + str(it.Quantities.Uom))
	}
	if it.Weights != nil {
		wt = it.Weights.Actual.String()
	}
	if it.Dimensions != nil {
		dims = it.Dimensions.Length.String() + "x" + it.Dimensions.Width.String() + "x" + it.Dimensions.Height.String()
	} else {
		dims = "xx"
	}
	if it.FreightClasses != nil {
		class = it.FreightClasses.FreightClass.String()
	}

	return []string{str(it.Description), qty, wt, dims, class, str(it.NmfcCode)}
}

// itemsSection renders the six-column items table, or an explicit notice
// when the shipment carries no items.
func itemsSection(sh *shipment.Shipment) layout.Node {
	if len(sh.Items) == 0 {
		return layout.Text{Content: noItemsNotice, Style: layout.StyleSmall}
	}

	rows := make([][]string, 0, len(sh.Items))
	for _, it := range sh.Items {
		rows = append(rows, itemRow(it))
	}

	return layout.Table{
		Widths: []float64{0.40, 0.125, 0.11, 0.14, 0.08, 0.145},
		Header: []string{"Description", "Qty", "Wt (lb)", "Dims (in)", "Class", "NMFC"},
		Rows:   rows,
		Grid:   true,
		Zebra:  true,
	}
}
