package shipment

// Envelope mirrors the wrapper some clients POST:
//
//	{"endpoint": "...", "email_to": "...", "request": {...}}
//
// Only Request participates in rendering; the other fields are carried for
// logging.
type Envelope struct {
	Endpoint string
	EmailTo  string
	Request  map[string]any
}

// UnwrapEnvelope returns the shipment-shaped object for a request body that
// may or may not be wrapped in an envelope. A body with a "request" key
// holding an object is treated as an envelope; anything else is treated as
// the shipment itself.
func UnwrapEnvelope(raw map[string]any) map[string]any {
	if req, ok := raw["request"].(map[string]any); ok {
		return req
	}
	return raw
}

// ParseEnvelope extracts the envelope metadata from a request body. Request
// is never nil; for a bare shipment body it is the body itself.
func ParseEnvelope(raw map[string]any) Envelope {
	env := Envelope{Request: UnwrapEnvelope(raw)}
	if s, ok := raw["endpoint"].(string); ok {
		env.Endpoint = s
	}
	if s, ok := raw["email_to"].(string); ok {
		env.EmailTo = s
	}
	return env
}

// Lookup walks a nested key path through an untyped map (the Extra
// passthrough bag), returning false when any step is missing or not an
// object. Typed fields should be read from the Shipment struct instead.
func Lookup(m map[string]any, path ...string) (any, bool) {
	var cur any = m
	for _, p := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
