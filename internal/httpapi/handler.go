// Package httpapi exposes the session, synthesis, record, and export
// operations over HTTP. Routing is plain net/http; payloads are JSON except
// for direct record downloads.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clogen/internal/export"
	"clogen/internal/session"
	"clogen/pkg/domain"
)

// Handler provides HTTP access to one editing session.
type Handler struct {
	Session *session.Service
	Exports export.Scheduler
}

// NewHandler constructs the API handler.
func NewHandler(svc *session.Service, exports export.Scheduler) *Handler {
	return &Handler{Session: svc, Exports: exports}
}

const emptyBodySentinel = "EOF"

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Session == nil {
		writeError(w, http.StatusInternalServerError, "session not configured")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/api/v1/catalog/attributes":
		h.handleAttributes(w, r)
	case path == "/api/v1/catalog/bloom":
		h.handleBloom(w, r)
	case path == "/api/v1/mapping":
		h.handleMapping(w, r)
	case path == "/api/v1/mapping/reload":
		h.handleReload(w, r)
	case path == "/api/v1/overrides":
		h.handleOverrides(w, r)
	case path == "/api/v1/selection" || strings.HasPrefix(path, "/api/v1/selection/"):
		h.handleSelection(w, r, strings.TrimPrefix(path, "/api/v1/selection"))
	case path == "/api/v1/records/download":
		h.handleDownload(w, r)
	case path == "/api/v1/records" || strings.HasPrefix(path, "/api/v1/records/"):
		h.handleRecords(w, r, strings.TrimPrefix(path, "/api/v1/records"))
	case path == "/api/v1/exports" || strings.HasPrefix(path, "/api/v1/exports/"):
		h.handleExports(w, r, strings.TrimPrefix(path, "/api/v1/exports"))
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleAttributes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"attributes": h.Session.Attributes()})
}

func (h *Handler) handleBloom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	taxonomy := domain.NormalizeTaxonomyDomain(r.URL.Query().Get("domain"))
	writeJSON(w, http.StatusOK, map[string]any{
		"domain": taxonomy,
		"stages": domain.Stages(taxonomy),
	})
}

func (h *Handler) handleMapping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.Session.Available() {
		writeError(w, http.StatusServiceUnavailable, "mapping document not loaded")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": h.Session.Document()})
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	warnings, err := h.Session.Reload(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}

func (h *Handler) handleOverrides(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var doc domain.OverrideDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid override payload")
		return
	}
	if err := h.Session.SaveOverride(r.Context(), doc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

type selectionRequest struct {
	Level    string   `json:"level,omitempty"`
	Domain   string   `json:"domain,omitempty"`
	ID       string   `json:"id,omitempty"`
	IDs      []string `json:"ids,omitempty"`
	Verb     string   `json:"verb,omitempty"`
	Methods  []string `json:"methods,omitempty"`
	BloomLvl string   `json:"bloom_level,omitempty"`
}

func (h *Handler) handleSelection(w http.ResponseWriter, r *http.Request, remainder string) {
	if remainder == "" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"selection": h.Session.Selection(),
			"texts":     h.Session.StatementTexts(),
			"warnings":  h.Session.Warnings(),
		})
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != emptyBodySentinel {
		writeError(w, http.StatusBadRequest, "invalid selection payload")
		return
	}

	switch strings.TrimPrefix(remainder, "/") {
	case "level":
		h.Session.SetLevel(domain.Level(req.Level))
		writeJSON(w, http.StatusOK, map[string]any{"selection": h.Session.Selection()})
	case "taxonomy":
		h.Session.SetTaxonomyDomain(domain.TaxonomyDomain(req.Domain))
		writeJSON(w, http.StatusOK, map[string]any{"selection": h.Session.Selection()})
	case "attribute":
		candidates := h.Session.SetAttribute(req.ID)
		writeJSON(w, http.StatusOK, map[string]any{"objectives": candidates})
	case "objective":
		candidates := h.Session.SetObjective(req.ID)
		writeJSON(w, http.StatusOK, map[string]any{"outcomes": candidates})
	case "outcomes":
		kept := h.Session.SetOutcomes(req.IDs)
		writeJSON(w, http.StatusOK, map[string]any{"outcomes": kept})
	case "bloom":
		verbs := h.Session.SetBloomLevel(req.BloomLvl)
		writeJSON(w, http.StatusOK, map[string]any{"verbs": verbs})
	case "verb":
		h.Session.SetVerb(req.Verb)
		writeJSON(w, http.StatusOK, map[string]any{"selection": h.Session.Selection()})
	case "assessments":
		h.Session.SetAssessmentMethods(req.Methods)
		writeJSON(w, http.StatusOK, map[string]any{"selection": h.Session.Selection()})
	default:
		http.NotFound(w, r)
	}
}

type synthesizeRequest struct {
	Course  string   `json:"course,omitempty"`
	Courses []string `json:"courses,omitempty"`
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request, remainder string) {
	switch {
	case remainder == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"records": h.Session.Records()})
	case remainder == "" && r.Method == http.MethodPost:
		h.handleSynthesize(w, r)
	case remainder == "" && r.Method == http.MethodDelete:
		h.Session.ClearRecords()
		writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
	case strings.HasPrefix(remainder, "/") && r.Method == http.MethodDelete:
		index, err := strconv.Atoi(strings.TrimPrefix(remainder, "/"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid record index")
			return
		}
		if err := h.Session.DeleteRecord(index); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid synthesize payload")
		return
	}

	if len(req.Courses) > 0 {
		records, err := h.Session.SynthesizeBulk(r.Context(), req.Courses)
		if err != nil {
			writeSynthesisError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"records": records})
		return
	}

	if strings.TrimSpace(req.Course) == "" {
		writeError(w, http.StatusBadRequest, "course label required")
		return
	}
	record, err := h.Session.Synthesize(r.Context(), req.Course)
	if err != nil {
		writeSynthesisError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"record": record})
}

func writeSynthesisError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrMissingSelection) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

type exportCreateRequest struct {
	Formats     []string `json:"formats"`
	RequestedBy string   `json:"requested_by,omitempty"`
}

func (h *Handler) handleExports(w http.ResponseWriter, r *http.Request, remainder string) {
	if h.Exports == nil {
		http.NotFound(w, r)
		return
	}

	if remainder == "" {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req exportCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != emptyBodySentinel {
			writeError(w, http.StatusBadRequest, "invalid export payload")
			return
		}
		formats := make([]export.Format, 0, len(req.Formats))
		for _, f := range req.Formats {
			format, ok := export.ParseFormat(f)
			if !ok {
				writeError(w, http.StatusBadRequest, "unsupported export format")
				return
			}
			formats = append(formats, format)
		}
		record, err := h.Exports.Enqueue(r.Context(), export.Input{Formats: formats, RequestedBy: req.RequestedBy})
		if err != nil {
			if errors.Is(err, domain.ErrNoRecords) {
				writeError(w, http.StatusConflict, "no records to export")
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"export": record})
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(remainder, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	record, ok := h.Exports.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "export not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"export": record})
}

// handleDownload renders the session record list synchronously as a file
// attachment, bypassing the async worker.
func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	format := negotiateFormat(r)
	records := h.Session.Records()
	payload, err := encode(format, records)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecords) {
			writeError(w, http.StatusConflict, "no records to export")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	filename := export.Filename(format, timeNow())
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(payload)
}

func encode(format export.Format, records []domain.GeneratedRecord) ([]byte, error) {
	if format == export.FormatJSON {
		return export.EncodeJSON(records)
	}
	return export.EncodeCSV(records)
}

func negotiateFormat(r *http.Request) export.Format {
	if format, ok := export.ParseFormat(r.URL.Query().Get("format")); ok {
		return format
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return export.FormatJSON
	}
	return export.FormatCSV
}

// timeNow is stubbed in tests that assert download filenames.
var timeNow = func() time.Time { return time.Now().UTC() }

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
