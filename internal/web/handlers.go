package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/JonMunkholm/resdir/internal/logging"
	"github.com/JonMunkholm/resdir/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// criteriaParams are the query parameters carrying filter criteria.
var criteriaParams = []string{"q", "category", "subcategory"}

// criteriaFromQuery reads the filter criteria from the URL. ok is false when
// the request carries none of the criteria parameters.
func criteriaFromQuery(r *http.Request) (c directory.Criteria, ok bool) {
	q := r.URL.Query()
	for _, p := range criteriaParams {
		if q.Has(p) {
			ok = true
			break
		}
	}
	c = directory.Criteria{
		Text:        q.Get("q"),
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
	}
	return c.Normalize(), ok
}

// parseRecordID reads the {id} URL parameter.
func parseRecordID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("record id %q: %w", raw, directory.ErrRecordNotFound)
	}
	return id, nil
}

// handleIndex renders the full page. Criteria in the URL replace the
// session's criteria; otherwise the session's criteria are shown.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := session(r)

	var regions templates.Regions
	var err error
	if c, ok := criteriaFromQuery(r); ok {
		err = s.browser.ApplyFilters(ctx, sess, c, &regions)
	} else {
		err = s.browser.ShowList(ctx, sess, &regions)
	}
	if err == nil {
		err = s.browser.ShowDetail(ctx, sess, &regions)
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.renderPage(w, r, sess, regions)
}

// handleResults performs one filter-and-render pass and returns the result
// list fragment. When the visitor's page was rendered while the data was
// loading, the first settled response also swaps in the filter controls so
// the selects gain the vocabulary.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	c, ok := criteriaFromQuery(r)
	if !ok {
		c = sess.Criteria()
	}

	var buf bytes.Buffer
	if err := s.browser.ApplyFilters(r.Context(), sess, c, templates.NewPresenter(&buf)); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if s.browser.State() != directory.StateLoading && sess.TakeStaleFilters() {
		oob := templates.FiltersOOB(sess.Criteria(), s.browser.Vocabulary())
		if err := oob.Render(r.Context(), &buf); err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
	}

	logging.FromContext(r.Context()).Debug("results rendered",
		"text", c.Text,
		"category", c.Category,
		"subcategory", c.Subcategory,
	)
	writeHTML(w, buf.Bytes())
}

// handleSelect selects a record. HTMX requests get the detail fragment,
// everything else the full page.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := session(r)

	id, err := parseRecordID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	if isHTMX(r) {
		var buf bytes.Buffer
		if err := s.browser.Select(ctx, sess, id, templates.NewPresenter(&buf)); err != nil {
			s.respondError(w, r, err, http.StatusNotFound)
			return
		}
		writeHTML(w, buf.Bytes())
		return
	}

	var regions templates.Regions
	if err := s.browser.Select(ctx, sess, id, &regions); err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	if err := s.browser.ShowList(ctx, sess, &regions); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.renderPage(w, r, sess, regions)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, sess *directory.Session, regions templates.Regions) {
	if s.browser.State() == directory.StateLoading {
		sess.MarkStaleFilters()
	}
	page := templates.Page(templates.PageData{
		Criteria:   sess.Criteria(),
		Vocabulary: s.browser.Vocabulary(),
		Results:    regions.Results,
		Detail:     regions.Detail,
	})
	render(w, r, page)
}

// render buffers c so a failed render still produces a clean error response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}
