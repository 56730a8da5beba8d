package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/cespare/xxhash/v2"
)

// apiRecord exposes the record ID that Record keeps out of its own JSON.
type apiRecord struct {
	ID int `json:"id"`
	directory.Record
}

// RecordsResponse is the body of GET /api/records.
type RecordsResponse struct {
	Criteria directory.Criteria `json:"criteria"`
	Mode     string             `json:"mode"`
	Count    int                `json:"count"`
	Records  []apiRecord        `json:"records"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	State   string `json:"state"`
	Records int    `json:"records"`
}

func toAPIRecords(records []directory.Record) []apiRecord {
	out := make([]apiRecord, len(records))
	for i, r := range records {
		out[i] = apiRecord{ID: r.ID, Record: r}
	}
	return out
}

// requireLoaded answers 503 unless the dataset is loaded. Load failures
// surface only as the fixed load message.
func (s *Server) requireLoaded(w http.ResponseWriter) bool {
	switch s.browser.State() {
	case directory.StateLoaded:
		return true
	case directory.StateLoading:
		w.Header().Set("Retry-After", "1")
		writeJSONStatus(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   directory.LoadingMessage,
			Message: directory.LoadingMessage,
			Code:    "LOADING",
		})
	default:
		writeJSONStatus(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   directory.LoadFailedMessage,
			Message: directory.LoadFailedMessage,
			Code:    directory.MapError(s.browser.Err()).Code,
		})
	}
	return false
}

// handleAPIRecords returns the records matching the URL criteria. It does
// not touch the session.
func (s *Server) handleAPIRecords(w http.ResponseWriter, r *http.Request) {
	if !s.requireLoaded(w) {
		return
	}

	c, _ := criteriaFromQuery(r)
	mode := s.browser.MatchMode()
	etag := recordsETag(s.browser.Store().Fingerprint(), c, mode)
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && strings.Contains(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	results := s.browser.Results(c)
	writeJSON(w, RecordsResponse{
		Criteria: c,
		Mode:     mode.String(),
		Count:    len(results),
		Records:  toAPIRecords(results),
	})
}

// handleAPIRecord returns one record by ID.
func (s *Server) handleAPIRecord(w http.ResponseWriter, r *http.Request) {
	if !s.requireLoaded(w) {
		return
	}

	id, err := parseRecordID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	rec, ok := s.browser.Store().Get(id)
	if !ok {
		s.respondError(w, r, fmt.Errorf("record %d: %w", id, directory.ErrRecordNotFound), http.StatusNotFound)
		return
	}
	writeJSON(w, apiRecord{ID: rec.ID, Record: rec})
}

// handleAPIVocabulary returns the filter vocabulary.
func (s *Server) handleAPIVocabulary(w http.ResponseWriter, r *http.Request) {
	if !s.requireLoaded(w) {
		return
	}
	w.Header().Set("ETag", `"`+s.browser.Store().Fingerprint()+`"`)
	writeJSON(w, s.browser.Vocabulary())
}

// handleHealth reports the load state. A failed load answers 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.browser.State()
	status := http.StatusOK
	if state == directory.StateFailed {
		status = http.StatusServiceUnavailable
	}
	writeJSONStatus(w, status, HealthResponse{
		State:   state.String(),
		Records: s.browser.Store().Len(),
	})
}

// recordsETag combines the dataset fingerprint with the query so a changed
// dataset or query never reuses a cached response.
func recordsETag(fingerprint string, c directory.Criteria, mode directory.MatchMode) string {
	h := xxhash.New()
	for _, part := range []string{c.Text, c.Category, c.Subcategory, mode.String()} {
		_, _ = h.WriteString(part)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf(`"%s-%016x"`, fingerprint, h.Sum64())
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
