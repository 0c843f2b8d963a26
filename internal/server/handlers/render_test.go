package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bolgen/internal/bol"
	derrors "git.home.luguber.info/inful/bolgen/internal/errors"
	"git.home.luguber.info/inful/bolgen/internal/metrics"
	"git.home.luguber.info/inful/bolgen/internal/server/responses"
)

func newTestRenderHandlers() *RenderHandlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	adapter := derrors.NewHTTPErrorAdapter(logger)
	return NewRenderHandlers(bol.DefaultOptions(), logger, metrics.NoopRecorder{}, adapter)
}

func postRender(t *testing.T, h *RenderHandlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/render/shipment-confirmation", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleRenderShipmentConfirmation(rec, req)
	return rec
}

func TestHandleRenderShipmentConfirmation_EmptyObject(t *testing.T) {
	h := newTestRenderHandlers()
	rec := postRender(t, h, `{}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="shipment_confirmation_doc.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestHandleRenderShipmentConfirmation_FilenameFromReference(t *testing.T) {
	h := newTestRenderHandlers()
	rec := postRender(t, h, `{
		"ReferenceNumbers": [
			{"ReferenceNumber": "BOL/123 456", "Type": "Pickup Number", "IsPrimary": true}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `inline; filename="shipment_confirmation_BOL123456.pdf"`, rec.Header().Get("Content-Disposition"))
}

func TestHandleRenderShipmentConfirmation_MalformedJSON(t *testing.T) {
	h := newTestRenderHandlers()
	rec := postRender(t, h, `{not json`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var payload derrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "VALIDATION_ERROR", payload.Error)
}

func TestHandleRenderShipmentConfirmation_FieldErrors(t *testing.T) {
	h := newTestRenderHandlers()
	rec := postRender(t, h, `{"Status": 7, "Shipper": {"Name": false}}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var payload derrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "VALIDATION_ERROR", payload.Error)
	require.Len(t, payload.Details, 2)

	fields := []string{payload.Details[0].Field, payload.Details[1].Field}
	assert.Contains(t, fields, "Status")
	assert.Contains(t, fields, "Shipper.Name")
}

func TestHandleRenderShipmentConfirmation_EnvelopeMatchesBare(t *testing.T) {
	h := newTestRenderHandlers()
	bare := `{"Shipper": {"Name": "Acme Widgets"}, "Status": "Booked"}`
	wrapped := `{"endpoint": "render", "email_to": "ops@example.com", "request": ` + bare + `}`

	recBare := postRender(t, h, bare)
	recWrapped := postRender(t, h, wrapped)

	require.Equal(t, http.StatusOK, recBare.Code)
	require.Equal(t, http.StatusOK, recWrapped.Code)
	assert.Equal(t, recBare.Body.Bytes(), recWrapped.Body.Bytes())
}

func TestHandleRenderShipmentConfirmation_NonObjectBody(t *testing.T) {
	h := newTestRenderHandlers()
	rec := postRender(t, h, `[1, 2, 3]`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleRenderShipmentConfirmationBase64(t *testing.T) {
	h := newTestRenderHandlers()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/render/shipment-confirmation/base64", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.HandleRenderShipmentConfirmationBase64(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp responses.RenderBase64Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "shipment_confirmation_doc.pdf", resp.Filename)
	assert.Equal(t, "application/pdf", resp.ContentType)

	pdf, err := base64.StdEncoding.DecodeString(resp.PDFBase64)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BOL-2024_01.v2", "BOL-2024_01.v2"},
		{"a/b\\c:d", "abcd"},
		{`ref"with quotes"`, "refwithquotes"},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeFilename(tc.in), "input %q", tc.in)
	}
}
