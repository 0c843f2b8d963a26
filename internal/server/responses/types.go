// Package responses defines API response types used by bolgen HTTP handlers.
package responses

// HealthResponse represents the health check API response.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// RenderBase64Response represents the JSON variant of the render endpoint
// for clients unable to consume raw binary.
type RenderBase64Response struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	PDFBase64   string `json:"pdf_base64"`
}
