package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/FocuswithJustin/yosina/core/cache"
	yerrors "github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/recipe"
	"github.com/FocuswithJustin/yosina/core/translit"
	"github.com/FocuswithJustin/yosina/internal/logging"
)

// TransliterateRequest is the body of POST /api/transliterate and of each
// WebSocket frame. At most one of Recipe and Pipeline may be set; with
// neither the text is returned unchanged.
type TransliterateRequest struct {
	ID       string         `json:"id,omitempty"`
	Text     string         `json:"text"`
	Recipe   *recipe.Recipe `json:"recipe,omitempty"`
	Pipeline string         `json:"pipeline,omitempty"`
}

// TransliterateResponse is the reply to a TransliterateRequest.
type TransliterateResponse struct {
	ID          string    `json:"id,omitempty"`
	RequestID   string    `json:"requestId,omitempty"`
	Text        string    `json:"text"`
	Fingerprint string    `json:"fingerprint"`
	Error       *APIError `json:"error,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError for plain HTTP replies.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status       string      `json:"status"`
	Version      string      `json:"version"`
	Uptime       string      `json:"uptime"`
	Clients      int         `json:"clients"`
	CachedChains cache.Stats `json:"cachedChains"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // client gone
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respond(w, status, ErrorResponse{Error: &APIError{Code: code, Message: message}})
}

// classify maps an error to an HTTP status and an error code.
func classify(err error) (int, *APIError) {
	var status int
	var code string
	switch {
	case errors.Is(err, yerrors.ErrConflict):
		status, code = http.StatusUnprocessableEntity, "CONFLICT"
	case errors.Is(err, yerrors.ErrInvalidInput):
		status, code = http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, yerrors.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, yerrors.ErrUnsupported):
		status, code = http.StatusNotImplemented, "UNSUPPORTED"
	default:
		status, code = http.StatusInternalServerError, "INTERNAL_ERROR"
	}
	return status, &APIError{Code: code, Message: err.Error()}
}

// chain resolves the chain a request names.
func (s *Server) chain(req *TransliterateRequest) (*translit.Chain, string, error) {
	switch {
	case req.Recipe != nil && req.Pipeline != "":
		return nil, "", yerrors.NewConflict("request", "recipe and pipeline are mutually exclusive")
	case req.Pipeline != "":
		return s.chains.Pipeline(req.Pipeline, s.cfg.Custom)
	case req.Recipe != nil:
		return s.chains.Recipe(*req.Recipe)
	}
	return s.chains.Recipe(recipe.Recipe{})
}

// transliterate runs req and fills in a reply. Failures are reported in
// the reply's Error field.
func (s *Server) transliterate(ctx context.Context, req *TransliterateRequest) (TransliterateResponse, error) {
	resp := TransliterateResponse{ID: req.ID, RequestID: logging.GetRequestID(ctx)}

	chain, fp, err := s.chain(req)
	if err != nil {
		return resp, err
	}
	start := time.Now()
	resp.Text = chain.TransliterateString(req.Text)
	resp.Fingerprint = fp
	logging.Transliterated(ctx, fp, len(req.Text), len(resp.Text), time.Since(start))
	return resp, nil
}

func (s *Server) handleTransliterate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req TransliterateRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	resp, err := s.transliterate(r.Context(), &req)
	if err != nil {
		status, apiErr := classify(err)
		logging.WarnContext(r.Context(), "transliterate failed", "error", err, "status", status)
		respond(w, status, ErrorResponse{Error: apiErr})
		return
	}
	respond(w, http.StatusOK, resp)
}

func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string][]string{"stages": translit.KindNames()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, HealthInfo{
		Status:       "ok",
		Version:      s.cfg.Version,
		Uptime:       time.Since(s.started).Round(time.Second).String(),
		Clients:      s.hub.Count(),
		CachedChains: s.chains.Stats(),
	})
}
