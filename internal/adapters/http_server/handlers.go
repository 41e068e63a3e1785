package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"homenest/internal/app"
	"homenest/internal/domain"
	"homenest/internal/query"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type Handlers struct {
	Properties *app.PropertyService
	Reviews    *app.ReviewService
	Dashboard  *app.DashboardService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/properties", h.createProperty)
	s.mux.Get("/properties", h.listProperties)
	s.mux.Get("/latest-properties", h.latestProperties)
	s.mux.Get("/my-properties", h.myProperties)
	s.mux.Get("/search", h.searchProperties)
	s.mux.Get("/sort-properties", h.sortProperties)
	s.mux.Get("/properties/{id}", h.getProperty)
	s.mux.Get("/propertyDetails/{id}", h.getProperty)
	s.mux.Patch("/properties/{id}", h.updateProperty)
	s.mux.Delete("/properties/{id}", h.deleteProperty)

	s.mux.Post("/review", h.createReview)
	s.mux.Get("/review/{email}", h.reviewsByReviewer)
	s.mux.Delete("/review/{id}", h.deleteReview)
	s.mux.Get("/reviews/{propertyId}", h.reviewsForProperty)

	s.mux.Get("/dashboard/stats", h.dashboardStats)
	s.mux.Get("/dashboard/charts", h.dashboardCharts)
}

// ---- properties ----

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	var p domain.Property
	if !decodeBody(w, r, &p) {
		return
	}
	id, err := h.Properties.Create(r.Context(), p)
	if err != nil {
		fail(w, r, err, "Failed to add property")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"insertedId": id.Hex()})
}

// listProperties serves the main catalogue. Without a sort parameter the
// newest listings come first; an explicit empty sort keeps store order.
func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := listRequest(r, query.DefaultLimit)
	if !q.Has("sort") {
		req.Sort = query.SortDateNew
	}
	h.writePage(w, r, req, "Failed to fetch properties")
}

func (h *Handlers) latestProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := app.ListRequest{
		Sort:   query.SortDateNew,
		Window: query.ParseWindow("1", q.Get("limit"), query.DefaultLimit),
	}
	h.writePage(w, r, req, "Failed to fetch latest properties")
}

func (h *Handlers) myProperties(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "email query parameter is required")
		return
	}
	req := listRequest(r, query.SearchLimit)
	req.Owner = email
	h.writePage(w, r, req, "Failed to fetch your properties")
}

func (h *Handlers) searchProperties(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, listRequest(r, query.SearchLimit), "Failed to search properties")
}

func (h *Handlers) sortProperties(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, listRequest(r, query.DefaultLimit), "Failed to sort properties")
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	p, err := h.Properties.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err, "Failed to fetch property")
		return
	}
	writeETagJSON(w, r, p)
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	var patch domain.PropertyPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	res, err := h.Properties.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		fail(w, r, err, "Failed to update property")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	n, err := h.Properties.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err, "Failed to delete property")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": n})
}

func (h *Handlers) writePage(w http.ResponseWriter, r *http.Request, req app.ListRequest, detail string) {
	page, err := h.Properties.List(r.Context(), req)
	if err != nil {
		fail(w, r, err, detail)
		return
	}
	writeETagJSON(w, r, page)
}

// listRequest reads the shared listing parameters. Missing or malformed
// values are never errors.
func listRequest(r *http.Request, defLimit int64) app.ListRequest {
	q := r.URL.Query()
	return app.ListRequest{
		Filter: query.FilterParams{
			Category: q.Get("category"),
			City:     q.Get("city"),
			Area:     q.Get("area"),
		},
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Window: query.ParseWindow(q.Get("page"), q.Get("limit"), defLimit),
	}
}

// ---- reviews ----

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var rv domain.Review
	if !decodeBody(w, r, &rv) {
		return
	}
	id, err := h.Reviews.Create(r.Context(), rv)
	if err != nil {
		fail(w, r, err, "Failed to add review")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"insertedId": id.Hex()})
}

func (h *Handlers) reviewsByReviewer(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reviews.ByReviewer(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		fail(w, r, err, "Failed to fetch reviews")
		return
	}
	writeETagJSON(w, r, out)
}

func (h *Handlers) reviewsForProperty(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reviews.ForProperty(r.Context(), chi.URLParam(r, "propertyId"))
	if err != nil {
		fail(w, r, err, "Failed to fetch reviews")
		return
	}
	writeETagJSON(w, r, out)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	n, err := h.Reviews.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err, "Failed to delete review")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": n})
}

// ---- dashboard ----

func (h *Handlers) dashboardStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		fail(w, r, err, "Failed to fetch dashboard stats")
		return
	}
	writeETagJSON(w, r, out)
}

func (h *Handlers) dashboardCharts(w http.ResponseWriter, r *http.Request) {
	out, err := h.Dashboard.Charts(r.Context())
	if err != nil {
		fail(w, r, err, "Failed to fetch dashboard charts data")
		return
	}
	writeETagJSON(w, r, out)
}

// ---- response helpers ----

// fail maps domain errors onto statuses. Anything unrecognised is a store
// failure: it is logged and the client only sees detail.
func fail(w http.ResponseWriter, r *http.Request, err error, detail string) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a 24-character hex string")
	case errors.Is(err, domain.ErrEmptyPatch):
		writeProblem(w, http.StatusBadRequest, "Bad Request", "no fields to update")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", detail)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("malformed JSON body: %v", err))
		return false
	}
	return true
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeETagJSON answers 304 when the client already holds this version.
func writeETagJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "failed to encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("write response body failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}
