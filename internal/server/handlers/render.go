package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"git.home.luguber.info/inful/bolgen/internal/bol"
	derrors "git.home.luguber.info/inful/bolgen/internal/errors"
	"git.home.luguber.info/inful/bolgen/internal/logfields"
	"git.home.luguber.info/inful/bolgen/internal/metrics"
	"git.home.luguber.info/inful/bolgen/internal/render"
	"git.home.luguber.info/inful/bolgen/internal/server/responses"
	"git.home.luguber.info/inful/bolgen/internal/shipment"
)

// maxRequestBody caps the accepted request payload. Shipment records are a
// few KB in practice; 10 MiB leaves generous headroom for extra-field bags.
const maxRequestBody = 10 << 20

const pdfContentType = "application/pdf"

// RenderHandlers serves the shipment confirmation render endpoints.
type RenderHandlers struct {
	opts         bol.Options
	logger       *slog.Logger
	recorder     metrics.Recorder
	errorAdapter *derrors.HTTPErrorAdapter
}

// NewRenderHandlers wires render handlers with assembly options and observability.
func NewRenderHandlers(opts bol.Options, logger *slog.Logger, recorder metrics.Recorder, adapter *derrors.HTTPErrorAdapter) *RenderHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &RenderHandlers{
		opts:         opts,
		logger:       logger,
		recorder:     recorder,
		errorAdapter: adapter,
	}
}

// HandleRenderShipmentConfirmation renders a Bill of Lading PDF and returns
// the document bytes inline.
func (h *RenderHandlers) HandleRenderShipmentConfirmation(w http.ResponseWriter, r *http.Request) {
	pdf, sh, err := h.renderFromRequest(r)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	filename := documentFilename(sh)
	w.Header().Set("Content-Type", pdfContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, werr := w.Write(pdf); werr != nil {
		h.logger.Error("failed writing PDF response body", logfields.Error(werr))
	}
}

// HandleRenderShipmentConfirmationBase64 renders the same document but wraps
// the bytes in a JSON envelope for clients that cannot consume binary bodies.
func (h *RenderHandlers) HandleRenderShipmentConfirmationBase64(w http.ResponseWriter, r *http.Request) {
	pdf, sh, err := h.renderFromRequest(r)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	resp := responses.RenderBase64Response{
		Filename:    documentFilename(sh),
		ContentType: pdfContentType,
		PDFBase64:   base64.StdEncoding.EncodeToString(pdf),
	}
	if werr := writeJSON(w, http.StatusOK, resp); werr != nil {
		h.logger.Error("failed writing base64 render response", logfields.Error(werr))
	}
}

// renderFromRequest runs the full pipeline: read body, unwrap an optional
// request envelope, decode the shipment, assemble the layout and render it.
func (h *RenderHandlers) renderFromRequest(r *http.Request) ([]byte, *shipment.Shipment, error) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		h.recorder.IncRenderOutcome(metrics.ResultValidation)
		return nil, nil, derrors.ValidationError("failed to read request body")
	}
	if len(body) > maxRequestBody {
		h.recorder.IncRenderOutcome(metrics.ResultValidation)
		return nil, nil, derrors.ValidationError("request body exceeds size limit")
	}

	raw, err := shipment.ParseObject(body)
	if err != nil {
		h.recorder.IncRenderOutcome(metrics.ResultValidation)
		return nil, nil, err
	}

	env := shipment.ParseEnvelope(raw)
	sh, err := shipment.Decode(env.Request)
	if err != nil {
		h.recorder.IncRenderOutcome(metrics.ResultValidation)
		return nil, nil, err
	}

	doc := bol.Build(sh, h.opts)
	pdf, err := render.PDF(doc)
	if err != nil {
		h.recorder.IncRenderOutcome(metrics.ResultFault)
		return nil, nil, err
	}

	h.recorder.IncRenderOutcome(metrics.ResultSuccess)
	h.recorder.ObserveRenderDuration(time.Since(start))
	h.recorder.ObserveDocumentBytes(len(pdf))

	ref, _ := sh.PrimaryReference()
	h.logger.Info("rendered shipment confirmation",
		logfields.Reference(ref),
		logfields.Items(len(sh.Items)),
		logfields.Bytes(len(pdf)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
	)
	return pdf, sh, nil
}

// documentFilename derives a download filename from the shipment's primary
// reference, falling back to "doc" when no reference is set.
func documentFilename(sh *shipment.Shipment) string {
	base := "doc"
	if ref, ok := sh.PrimaryReference(); ok && strings.TrimSpace(ref) != "" {
		base = sanitizeFilename(ref)
		if base == "" {
			base = "doc"
		}
	}
	return "shipment_confirmation_" + base + ".pdf"
}

// sanitizeFilename strips everything outside [A-Za-z0-9._-] so reference
// values cannot smuggle header or path characters into Content-Disposition.
func sanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
