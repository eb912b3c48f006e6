package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/devillers/checkin-sub000/internal/app"
	"github.com/devillers/checkin-sub000/internal/domain"
	"github.com/devillers/checkin-sub000/internal/normalize"
)

type Handlers struct {
	Q *app.QueryService
	P *app.PropertyService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/properties", h.createProperty)
	s.mux.Put("/v1/properties/{id}", h.updateProperty)
	s.mux.Get("/v1/properties/{id}", h.getProperty)
	s.mux.Get("/v1/properties", h.listProperties)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeCommandError maps engine failures to 400, unknown ids to 404 and
// everything else to a logged 500.
func writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case normalize.IsValidation(err):
		writeProblem(w, http.StatusBadRequest, "Invalid submission", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
	default:
		log.Error().Err(err).Msg("property command failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func decodeSubmission(r *http.Request) (domain.Submission, error) {
	var sub domain.Submission
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&sub); err != nil {
		return domain.Submission{}, err
	}
	return sub, nil
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

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be a JSON property submission")
		return
	}
	p, err := h.P.CreateProperty(r.Context(), sub, r.Header.Get("X-Actor"))
	if err != nil {
		writeCommandError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/v1/properties/"+p.ID)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("failed to write createProperty body")
	}
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, err := decodeSubmission(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be a JSON property submission")
		return
	}
	p, err := h.P.UpdateProperty(r.Context(), id, sub, r.Header.Get("X-Actor"))
	if err != nil {
		writeCommandError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("failed to write updateProperty body")
	}
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.Q.GetProperty(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
		return
	}

	etag, body := calcETagAndBody(p)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getProperty body")
	}
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	q := domain.PropertiesQuery{Limit: 50}
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}
	if city := r.URL.Query().Get("city"); city != "" {
		q.City = &city
	}
	if ts := r.URL.Query().Get("type"); ts != "" {
		t, ok := domain.ParsePropertyType(ts)
		if !ok {
			writeProblem(w, http.StatusBadRequest, "Invalid type", "unknown property type")
			return
		}
		q.Type = &t
	}

	out, err := h.Q.ListProperties(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("list properties failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listProperties body")
	}
}
