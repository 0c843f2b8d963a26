package shipment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	derrors "git.home.luguber.info/inful/bolgen/internal/errors"
)

// ParseObject decodes raw JSON bytes into a generic object. Numbers are kept
// as their original literals (json.Number) so downstream rendering is
// deterministic.
func ParseObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, derrors.ValidationError("invalid JSON payload").
			WithContext("error", err.Error())
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, derrors.ValidationFailed([]derrors.FieldError{
			{Field: "", Reason: fmt.Sprintf("expected object, got %s", jsonTypeName(raw))},
		})
	}
	return obj, nil
}

// Parse decodes raw JSON bytes into a Shipment.
func Parse(data []byte) (*Shipment, error) {
	obj, err := ParseObject(data)
	if err != nil {
		return nil, err
	}
	return Decode(obj)
}

// Decode maps a parsed JSON object onto a Shipment. Unknown keys at any level
// are preserved in the Extra bags and never fail. Every structurally invalid
// field (wrong type at a known path) is collected, and the returned error is
// a validation error enumerating all of them.
func Decode(raw map[string]any) (*Shipment, error) {
	st := &decodeState{}
	sh := decodeShipment(st, raw)
	if len(st.fields) > 0 {
		return nil, derrors.ValidationFailed(st.fields)
	}
	return sh, nil
}

// decodeState accumulates path-qualified field errors across the whole walk.
type decodeState struct {
	fields []derrors.FieldError
}

func (st *decodeState) add(path, reason string) {
	st.fields = append(st.fields, derrors.FieldError{Field: path, Reason: reason})
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// jsonTypeName names a decoded JSON value for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func (st *decodeState) optString(m map[string]any, key, path string) *string {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		st.add(joinPath(path, key), fmt.Sprintf("expected string, got %s", jsonTypeName(v)))
		return nil
	}
	return &s
}

// reqString is for fields the schema requires (reference values and service
// codes). Absence is a structural error, matching the upstream contract.
func (st *decodeState) reqString(m map[string]any, key, path string) string {
	v, ok := m[key]
	if !ok || v == nil {
		st.add(joinPath(path, key), "field required")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		st.add(joinPath(path, key), fmt.Sprintf("expected string, got %s", jsonTypeName(v)))
		return ""
	}
	return s
}

func (st *decodeState) optBool(m map[string]any, key, path string) *bool {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		st.add(joinPath(path, key), fmt.Sprintf("expected boolean, got %s", jsonTypeName(v)))
		return nil
	}
	return &b
}

// optNumber accepts a JSON number or a numeric string, keeping the original
// literal spelling.
func (st *decodeState) optNumber(m map[string]any, key, path string) Number {
	v, ok := m[key]
	if !ok || v == nil {
		return Number{}
	}
	switch n := v.(type) {
	case json.Number:
		return Number{raw: n.String(), set: true}
	case float64:
		return Number{raw: strconv.FormatFloat(n, 'f', -1, 64), set: true}
	case int:
		return Number{raw: strconv.Itoa(n), set: true}
	case int64:
		return Number{raw: strconv.FormatInt(n, 10), set: true}
	case string:
		if _, err := strconv.ParseFloat(n, 64); err == nil {
			return Number{raw: n, set: true}
		}
	}
	st.add(joinPath(path, key), fmt.Sprintf("expected number, got %s", jsonTypeName(v)))
	return Number{}
}

// object returns the nested object under key, or nil and false when the key
// is absent or null. A non-object value is a structural error.
func (st *decodeState) object(m map[string]any, key, path string) (map[string]any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		st.add(joinPath(path, key), fmt.Sprintf("expected object, got %s", jsonTypeName(v)))
		return nil, false
	}
	return obj, true
}

// list returns the elements under key; absent or null resolves to no
// elements, matching the empty-sequence default of list-typed fields.
func (st *decodeState) list(m map[string]any, key, path string) []any {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		st.add(joinPath(path, key), fmt.Sprintf("expected array, got %s", jsonTypeName(v)))
		return nil
	}
	return items
}

// element asserts that a list element is an object.
func (st *decodeState) element(v any, path string) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		st.add(path, fmt.Sprintf("expected object, got %s", jsonTypeName(v)))
		return nil, false
	}
	return obj, true
}

// extraFields collects the keys not claimed by the typed schema.
func extraFields(m map[string]any, known ...string) Fields {
	var extra Fields
	for k, v := range m {
		if slices.Contains(known, k) {
			continue
		}
		if extra == nil {
			extra = Fields{}
		}
		extra[k] = v
	}
	return extra
}

func decodeShipment(st *decodeState, m map[string]any) *Shipment {
	sh := &Shipment{
		Status:           st.optString(m, "Status", ""),
		ReferenceNumbers: []ReferenceNumber{},
		ServiceFlags:     []ServiceFlag{},
		Items:            []Item{},
		Extra: extraFields(m,
			"Status", "ReferenceNumbers", "ServiceFlags", "Dates",
			"Shipper", "Consignee", "Items", "Payment"),
	}

	for i, v := range st.list(m, "ReferenceNumbers", "") {
		p := fmt.Sprintf("ReferenceNumbers[%d]", i)
		if obj, ok := st.element(v, p); ok {
			sh.ReferenceNumbers = append(sh.ReferenceNumbers, decodeReferenceNumber(st, obj, p))
		}
	}
	for i, v := range st.list(m, "ServiceFlags", "") {
		p := fmt.Sprintf("ServiceFlags[%d]", i)
		if obj, ok := st.element(v, p); ok {
			sh.ServiceFlags = append(sh.ServiceFlags, decodeServiceFlag(st, obj, p))
		}
	}
	if obj, ok := st.object(m, "Dates", ""); ok {
		sh.Dates = decodeDates(st, obj, "Dates")
	}
	if obj, ok := st.object(m, "Shipper", ""); ok {
		sh.Shipper = decodeParty(st, obj, "Shipper")
	}
	if obj, ok := st.object(m, "Consignee", ""); ok {
		sh.Consignee = decodeParty(st, obj, "Consignee")
	}
	for i, v := range st.list(m, "Items", "") {
		p := fmt.Sprintf("Items[%d]", i)
		if obj, ok := st.element(v, p); ok {
			sh.Items = append(sh.Items, decodeItem(st, obj, p))
		}
	}
	if obj, ok := st.object(m, "Payment", ""); ok {
		sh.Payment = decodePayment(st, obj, "Payment")
	}
	return sh
}

func decodeReferenceNumber(st *decodeState, m map[string]any, path string) ReferenceNumber {
	r := ReferenceNumber{
		ReferenceNumber: st.reqString(m, "ReferenceNumber", path),
		Type:            st.reqString(m, "Type", path),
		Extra:           extraFields(m, "ReferenceNumber", "Type", "IsPrimary"),
	}
	if b := st.optBool(m, "IsPrimary", path); b != nil {
		r.IsPrimary = *b
	}
	return r
}

func decodeServiceFlag(st *decodeState, m map[string]any, path string) ServiceFlag {
	f := ServiceFlag{
		ServiceCode: st.reqString(m, "ServiceCode", path),
		Extra:       extraFields(m, "ServiceCode", "IsSelected"),
	}
	if b := st.optBool(m, "IsSelected", path); b != nil {
		f.IsSelected = *b
	}
	return f
}

func decodeDates(st *decodeState, m map[string]any, path string) *Dates {
	return &Dates{
		EarliestPickupDate: st.optString(m, "EarliestPickupDate", path),
		LatestPickupDate:   st.optString(m, "LatestPickupDate", path),
		EarliestDropDate:   st.optString(m, "EarliestDropDate", path),
		LatestDropDate:     st.optString(m, "LatestDropDate", path),
		Extra: extraFields(m,
			"EarliestPickupDate", "LatestPickupDate", "EarliestDropDate", "LatestDropDate"),
	}
}

func decodeContact(st *decodeState, m map[string]any, path string) *Contact {
	return &Contact{
		Name:  st.optString(m, "Name", path),
		Email: st.optString(m, "Email", path),
		Phone: st.optString(m, "Phone", path),
		Extra: extraFields(m, "Name", "Email", "Phone"),
	}
}

func decodeParty(st *decodeState, m map[string]any, path string) *Party {
	p := &Party{
		Name:          st.optString(m, "Name", path),
		AddressLine1:  st.optString(m, "AddressLine1", path),
		AddressLine2:  st.optString(m, "AddressLine2", path),
		City:          st.optString(m, "City", path),
		StateProvince: st.optString(m, "StateProvince", path),
		PostalCode:    st.optString(m, "PostalCode", path),
		CountryCode:   st.optString(m, "CountryCode", path),
		IsResidential: st.optBool(m, "IsResidential", path),
		Comments:      st.optString(m, "Comments", path),
		Extra: extraFields(m,
			"Name", "AddressLine1", "AddressLine2", "City", "StateProvince",
			"PostalCode", "CountryCode", "IsResidential", "Comments", "Contact"),
	}
	if obj, ok := st.object(m, "Contact", path); ok {
		p.Contact = decodeContact(st, obj, joinPath(path, "Contact"))
	}
	return p
}

func decodeDimensions(st *decodeState, m map[string]any, path string) *Dimensions {
	return &Dimensions{
		Length: st.optNumber(m, "Length", path),
		Width:  st.optNumber(m, "Width", path),
		Height: st.optNumber(m, "Height", path),
		Uom:    st.optString(m, "Uom", path),
		Extra:  extraFields(m, "Length", "Width", "Height", "Uom"),
	}
}

func decodeFreightClasses(st *decodeState, m map[string]any, path string) *FreightClasses {
	return &FreightClasses{
		FreightClass: st.optNumber(m, "FreightClass", path),
		Type:         st.optString(m, "Type", path),
		Extra:        extraFields(m, "FreightClass", "Type"),
	}
}

func decodeWeights(st *decodeState, m map[string]any, path string) *Weights {
	return &Weights{
		Actual: st.optNumber(m, "Actual", path),
		Uom:    st.optString(m, "Uom", path),
		Extra:  extraFields(m, "Actual", "Uom"),
	}
}

func decodeQuantities(st *decodeState, m map[string]any, path string) *Quantities {
	return &Quantities{
		Actual: st.optNumber(m, "Actual", path),
		Uom:    st.optString(m, "Uom", path),
		Extra:  extraFields(m, "Actual", "Uom"),
	}
}

func decodeItem(st *decodeState, m map[string]any, path string) Item {
	it := Item{
		Id:                st.optString(m, "Id", path),
		Description:       st.optString(m, "Description", path),
		NmfcCode:          st.optString(m, "NmfcCode", path),
		HazardousMaterial: st.optBool(m, "HazardousMaterial", path),
		Extra: extraFields(m,
			"Id", "Description", "Dimensions", "FreightClasses", "NmfcCode",
			"HazardousMaterial", "Weights", "Quantities"),
	}
	if obj, ok := st.object(m, "Dimensions", path); ok {
		it.Dimensions = decodeDimensions(st, obj, joinPath(path, "Dimensions"))
	}
	if obj, ok := st.object(m, "FreightClasses", path); ok {
		it.FreightClasses = decodeFreightClasses(st, obj, joinPath(path, "FreightClasses"))
	}
	if obj, ok := st.object(m, "Weights", path); ok {
		it.Weights = decodeWeights(st, obj, joinPath(path, "Weights"))
	}
	if obj, ok := st.object(m, "Quantities", path); ok {
		it.Quantities = decodeQuantities(st, obj, joinPath(path, "Quantities"))
	}
	return it
}

func decodePayment(st *decodeState, m map[string]any, path string) *Payment {
	p := &Payment{
		Extra: extraFields(m, "Address"),
	}
	if obj, ok := st.object(m, "Address", path); ok {
		p.Address = decodeParty(st, obj, joinPath(path, "Address"))
	}
	return p
}
