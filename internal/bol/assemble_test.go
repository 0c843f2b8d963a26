package bol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bolgen/internal/layout"
	"git.home.luguber.info/inful/bolgen/internal/shipment"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

// findTables returns the document tables in flow order.
func findTables(doc *layout.Document) []layout.Table {
	var tables []layout.Table
	for _, n := range doc.Nodes {
		if t, ok := n.(layout.Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// findTexts returns the document text paragraphs in flow order.
func findTexts(doc *layout.Document) []layout.Text {
	var texts []layout.Text
	for _, n := range doc.Nodes {
		if t, ok := n.(layout.Text); ok {
			texts = append(texts, t)
		}
	}
	return texts
}

func servicesText(t *testing.T, doc *layout.Document) string {
	t.Helper()
	for _, txt := range findTexts(doc) {
		if strings.HasPrefix(txt.Content, "Services: ") {
			return strings.TrimPrefix(txt.Content, "Services: ")
		}
	}
	t.Fatal("no services line in document")
	return ""
}

func TestBuild_EmptyShipmentStillAssembles(t *testing.T) {
	sh, err := shipment.Parse([]byte(`{}`))
	require.NoError(t, err)

	doc := Build(sh, DefaultOptions())
	require.NotEmpty(t, doc.Nodes)

	// Title first.
	title, ok := doc.Nodes[0].(layout.Title)
	require.True(t, ok)
	assert.Equal(t, "BILL OF LADING", title.Text)

	// Header strip degrades to em-dashes.
	header := findTables(doc)[0]
	require.Len(t, header.Rows, 1)
	assert.Equal(t, "Primary Reference: —", header.Rows[0][0])
	assert.Equal(t, "Date: —", header.Rows[0][1])
	assert.Equal(t, "Terms: Third Party Prepaid", header.Rows[0][2])

	// Zero items renders the explicit notice.
	var sawNotice bool
	for _, txt := range findTexts(doc) {
		if txt.Content == "No items provided" {
			sawNotice = true
		}
	}
	assert.True(t, sawNotice)

	// Boilerplate is unconditional.
	var sawNote bool
	var boxes int
	for _, n := range doc.Nodes {
		switch v := n.(type) {
		case layout.NoteBar:
			sawNote = true
			assert.Contains(t, v.Text, "49 USC 14706(c)(1)(A)")
		case layout.SignatureBox:
			boxes++
		}
	}
	assert.True(t, sawNote)
	assert.Equal(t, 2, boxes)
}

func TestBuild_HeaderStripFields(t *testing.T) {
	sh := &shipment.Shipment{
		ReferenceNumbers: []shipment.ReferenceNumber{
			{ReferenceNumber: "A", Type: "PO Number"},
			{ReferenceNumber: "B", Type: "BOL", IsPrimary: true},
		},
		Dates: &shipment.Dates{EarliestPickupDate: strp("2024-03-01 08:00:00")},
	}

	header := findTables(Build(sh, DefaultOptions()))[0]
	assert.Equal(t, "Primary Reference: B", header.Rows[0][0])
	assert.Equal(t, "Date: 2024-03-01", header.Rows[0][1])
}

func TestBuild_PartyBlocks(t *testing.T) {
	sh := &shipment.Shipment{
		Shipper: &shipment.Party{
			Name:          strp("Acme Steel"),
			AddressLine1:  strp("1 Mill Rd"),
			City:          strp("Gary"),
			StateProvince: strp("IN"),
			PostalCode:    strp("46402"),
			CountryCode:   strp("US"),
			IsResidential: boolp(true),
			Contact:       &shipment.Contact{Phone: strp("(555) 123-4567")},
		},
		Payment: &shipment.Payment{Address: &shipment.Party{
			Name:          strp("Freight Payers LLC"),
			IsResidential: boolp(true), // must not render for Bill-To
		}},
	}

	tables := findTables(Build(sh, DefaultOptions()))
	parties := tables[1]
	assert.Equal(t, []string{"Shipper", "Consignee", "Bill To"}, parties.Header)

	shipperBlock := parties.Rows[0][0]
	assert.Equal(t, strings.Join([]string{
		"Acme Steel",
		"1 Mill Rd",
		"Gary, IN 46402",
		"US",
		"Phone: 555-123-4567",
		"Residential: Yes",
	}, "\n"), shipperBlock)

	// A party with no populated lines renders as empty content, not a placeholder.
	assert.Equal(t, "", parties.Rows[0][1])

	billToBlock := parties.Rows[0][2]
	assert.NotContains(t, billToBlock, "Residential")
	assert.Contains(t, billToBlock, "Freight Payers LLC")
}

func TestBuild_ReferenceFiltering(t *testing.T) {
	sh := &shipment.Shipment{
		ReferenceNumbers: []shipment.ReferenceNumber{
			{ReferenceNumber: "PO-1", Type: "PO Number"},
			{ReferenceNumber: "LN-1", Type: "Load Number"},
			{ReferenceNumber: "JN-1", Type: "Customer Job Name"},
			{ReferenceNumber: "", Type: "Pickup Number"},
		},
	}

	doc := Build(sh, DefaultOptions())
	tables := findTables(doc)

	var refTable *layout.Table
	for i := range tables {
		if len(tables[i].Header) == 2 && tables[i].Header[0] == "Type" {
			refTable = &tables[i]
		}
	}
	require.NotNil(t, refTable, "expected a reference table")
	assert.Equal(t, []string{"Type", "Reference Number"}, refTable.Header)

	var types []string
	for _, row := range refTable.Rows {
		types = append(types, row[0])
	}
	assert.Contains(t, types, "PO Number")
	assert.Contains(t, types, "Pickup Number")
	assert.NotContains(t, types, "Load Number")
	assert.NotContains(t, types, "Customer Job Name")

	// Empty value renders the placeholder.
	for _, row := range refTable.Rows {
		if row[0] == "Pickup Number" {
			assert.Equal(t, "—", row[1])
		}
	}
}

func TestBuild_ReferenceTableOmittedWhenAllFiltered(t *testing.T) {
	sh := &shipment.Shipment{
		ReferenceNumbers: []shipment.ReferenceNumber{
			{ReferenceNumber: "LN-1", Type: "Load Number"},
		},
	}
	for _, tbl := range findTables(Build(sh, DefaultOptions())) {
		if len(tbl.Header) == 2 && tbl.Header[0] == "Type" {
			t.Fatal("reference table should be omitted when every entry is filtered")
		}
	}
}

func TestBuild_ServicesLine(t *testing.T) {
	cases := []struct {
		name  string
		flags []shipment.ServiceFlag
		want  string
	}{
		{
			name:  "selected liftgate code",
			flags: []shipment.ServiceFlag{{ServiceCode: "LG1", IsSelected: true}},
			want:  "Appointment Required, Liftgate",
		},
		{
			name:  "unselected liftgate code",
			flags: []shipment.ServiceFlag{{ServiceCode: "LG1", IsSelected: false}},
			want:  "Appointment Required",
		},
		{
			name: "liftgate appended at most once",
			flags: []shipment.ServiceFlag{
				{ServiceCode: "LIFTGATE", IsSelected: true},
				{ServiceCode: "lg", IsSelected: true},
			},
			want: "Appointment Required, Liftgate",
		},
		{
			name:  "other selected services are not displayed",
			flags: []shipment.ServiceFlag{{ServiceCode: "INSIDE", IsSelected: true}},
			want:  "Appointment Required",
		},
		{
			name: "no flags at all",
			want: "Appointment Required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sh := &shipment.Shipment{ServiceFlags: tc.flags}
			assert.Equal(t, tc.want, servicesText(t, Build(sh, DefaultOptions())))
		})
	}
}

func TestBuild_ServicesLineReadsLegacyConstraintsBag(t *testing.T) {
	sh, err := shipment.Parse([]byte(`{
		"Constraints": {"ServiceFlags": [{"ServiceCode": "LIFT", "IsSelected": true}]}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Appointment Required, Liftgate", servicesText(t, Build(sh, DefaultOptions())))
}

func TestBuild_ItemsTable(t *testing.T) {
	sh, err := shipment.Parse([]byte(`{
		"Items": [
			{
				"Description": "Steel coils",
				"Dimensions": {"Length": 48, "Width": 40, "Height": 36},
				"FreightClasses": {"FreightClass": 92.5},
				"Weights": {"Actual": 1200, "Uom": "lb"},
				"Quantities": {"Actual": 2, "Uom": "pallets"},
				"NmfcCode": "51200"
			},
			{"Description": "Loose bolts"}
		]
	}`))
	require.NoError(t, err)

	tables := findTables(Build(sh, DefaultOptions()))
	items := tables[len(tables)-1]
	assert.Equal(t, []string{"Description", "Qty", "Wt (lb)", "Dims (in)", "Class", "NMFC"}, items.Header)
	require.Len(t, items.Rows, 2)

	assert.Equal(t, []string{"Steel coils", "2 pallets", "1200", "48x40x36", "92.5", "51200"}, items.Rows[0])

	// Wholly absent sub-values default to empty strings around the joiners.
	assert.Equal(t, []string{"Loose bolts", "", "", "xx", "", ""}, items.Rows[1])
}

func TestBuild_ItemRowFromTypedModel(t *testing.T) {
	// Programmatic construction path: NumberOf keeps the caller's literal
	// exactly as given, just like the decoder does for JSON numbers.
	sh := &shipment.Shipment{
		Items: []shipment.Item{{
			Description:    strp("Steel drums"),
			Dimensions:     &shipment.Dimensions{Length: shipment.NumberOf("48"), Width: shipment.NumberOf("40"), Height: shipment.NumberOf("36.5")},
			FreightClasses: &shipment.FreightClasses{FreightClass: shipment.NumberOf("85")},
			Weights:        &shipment.Weights{Actual: shipment.NumberOf("980")},
			Quantities:     &shipment.Quantities{Actual: shipment.NumberOf("4"), Uom: strp("drums")},
			NmfcCode:       strp("41020"),
		}},
	}

	tables := findTables(Build(sh, DefaultOptions()))
	items := tables[len(tables)-1]
	require.Len(t, items.Rows, 1)
	assert.Equal(t, []string{"Steel drums", "4 drums", "980", "48x40x36.5", "85", "41020"}, items.Rows[0])
}

func TestBuild_Toggles(t *testing.T) {
	sh := &shipment.Shipment{}

	opts := Options{ReferenceExclusions: nil}
	doc := Build(sh, opts)

	for _, txt := range findTexts(doc) {
		assert.False(t, strings.HasPrefix(txt.Content, "Services:"), "services line should be disabled")
	}
	for _, n := range doc.Nodes {
		if _, ok := n.(layout.SignatureBox); ok {
			t.Fatal("signature blocks should be disabled")
		}
	}
}

func TestBuild_TitleOverride(t *testing.T) {
	sh := &shipment.Shipment{}

	doc := Build(sh, DefaultOptions())
	require.IsType(t, layout.Title{}, doc.Nodes[0])
	assert.Equal(t, "BILL OF LADING", doc.Nodes[0].(layout.Title).Text)

	opts := DefaultOptions()
	opts.Title = "STRAIGHT BILL OF LADING"
	doc = Build(sh, opts)
	assert.Equal(t, "STRAIGHT BILL OF LADING", doc.Nodes[0].(layout.Title).Text)
}

func TestBuild_Deterministic(t *testing.T) {
	sh, err := shipment.Parse([]byte(`{
		"ReferenceNumbers": [{"ReferenceNumber": "A", "Type": "PO Number"}],
		"Items": [{"Description": "Steel coils"}]
	}`))
	require.NoError(t, err)

	a := Build(sh, DefaultOptions())
	b := Build(sh, DefaultOptions())
	assert.Equal(t, a, b)
}
