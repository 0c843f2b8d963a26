// Package shipment defines the lenient shipment record model and its decoder.
//
// The model strongly types everything rendering consumes while preserving
// unknown keys in a passthrough Extra bag, so upstream payloads can grow
// fields without breaking this service.
package shipment

// Number holds a numeric field as its original JSON literal so rendering is
// byte-deterministic ("2.5" stays "2.5", "3" stays "3"). The zero value is
// absent and renders as the empty string.
type Number struct {
	raw string
	set bool
}

// NumberOf constructs a set Number from a literal. Intended for tests and
// programmatic construction.
func NumberOf(literal string) Number {
	return Number{raw: literal, set: true}
}

// String returns the original literal, or "" when absent.
func (n Number) String() string {
	return n.raw
}

// IsSet reports whether the field was present in the input.
func (n Number) IsSet() bool {
	return n.set
}

// Fields is the passthrough bag of unknown keys preserved at each level.
type Fields map[string]any

// Shipment is the top-level shipment record.
type Shipment struct {
	Status           *string
	ReferenceNumbers []ReferenceNumber
	ServiceFlags     []ServiceFlag
	Dates            *Dates
	Shipper          *Party
	Consignee        *Party
	Items            []Item
	Payment          *Payment
	Extra            Fields
}

// ReferenceNumber is one entry of the ordered reference sequence.
type ReferenceNumber struct {
	ReferenceNumber string
	Type            string
	IsPrimary       bool
	Extra           Fields
}

// ServiceFlag marks an accessorial service as selected or not.
type ServiceFlag struct {
	ServiceCode string
	IsSelected  bool
	Extra       Fields
}

// Dates carries the optional pickup/drop window timestamps as opaque strings.
type Dates struct {
	EarliestPickupDate *string
	LatestPickupDate   *string
	EarliestDropDate   *string
	LatestDropDate     *string
	Extra              Fields
}

// Contact is the nested contact block of a Party.
type Contact struct {
	Name  *string
	Email *string
	Phone *string
	Extra Fields
}

// Party is a shipper, consignee, or billing address block.
type Party struct {
	Name          *string
	AddressLine1  *string
	AddressLine2  *string
	City          *string
	StateProvince *string
	PostalCode    *string
	CountryCode   *string
	IsResidential *bool
	Comments      *string
	Contact       *Contact
	Extra         Fields
}

// Dimensions holds line-item dimensions.
type Dimensions struct {
	Length Number
	Width  Number
	Height Number
	Uom    *string
	Extra  Fields
}

// FreightClasses holds the NMFC freight class of a line item.
type FreightClasses struct {
	FreightClass Number
	Type         *string
	Extra        Fields
}

// Weights holds a line item weight.
type Weights struct {
	Actual Number
	Uom    *string
	Extra  Fields
}

// Quantities holds a line item quantity.
type Quantities struct {
	Actual Number
	Uom    *string
	Extra  Fields
}

// Item is a single freight line item.
type Item struct {
	Id                *string
	Description       *string
	Dimensions        *Dimensions
	FreightClasses    *FreightClasses
	NmfcCode          *string
	HazardousMaterial *bool
	Weights           *Weights
	Quantities        *Quantities
	Extra             Fields
}

// Payment holds billing information; Address is the bill-to party.
type Payment struct {
	Address *Party
	Extra   Fields
}

// PrimaryReference returns the value of the first reference marked primary,
// falling back to the first reference in the sequence. The boolean is false
// when the sequence is empty.
func (s *Shipment) PrimaryReference() (string, bool) {
	for _, r := range s.ReferenceNumbers {
		if r.IsPrimary {
			return r.ReferenceNumber, true
		}
	}
	if len(s.ReferenceNumbers) > 0 {
		return s.ReferenceNumbers[0].ReferenceNumber, true
	}
	return "", false
}

// SelectedServiceCodes returns the service codes whose IsSelected flag is
// true, in input order, skipping entries with an empty code.
func (s *Shipment) SelectedServiceCodes() []string {
	var codes []string
	for _, f := range s.ServiceFlags {
		if f.IsSelected && f.ServiceCode != "" {
			codes = append(codes, f.ServiceCode)
		}
	}
	return codes
}
