package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"

	"github.com/rogerio-castellano/appointment-tracker/internal/booking"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
	"github.com/rogerio-castellano/appointment-tracker/internal/validator"
)

const maxBodyBytes = 1 << 20

type ValidationErrors struct {
	Errors []validator.FieldError `json:"errors"`
}

// readJSON decodes the request body into data. The body may be the object
// itself or, Rails style, wrap it under key ({"product": {...}}).
func readJSON(w http.ResponseWriter, r *http.Request, key string, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return errors.New("body must be a single valid json value")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return errors.New("body must be a json object")
	}
	if wrapped := root.Get(key); wrapped.IsObject() {
		body = []byte(wrapped.Raw)
	}

	if err := json.NewDecoder(bytes.NewReader(body)).Decode(data); err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}
	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	out, err := json.Marshal(data)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to encode response", slog.Any("error", err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.logger.WarnContext(r.Context(), "failed to write response", slog.Any("error", err))
	}
}

func (s *Server) writeValidation(w http.ResponseWriter, r *http.Request, errs []validator.FieldError) {
	s.writeJSON(w, r, http.StatusUnprocessableEntity, ValidationErrors{Errors: errs})
}

// validate runs the struct rules on req and writes a 422 when they fail.
func (s *Server) validate(w http.ResponseWriter, r *http.Request, req any) bool {
	err := s.validator.Validate(req)
	if err == nil {
		return true
	}
	if fields := validator.Fields(err); fields != nil {
		s.writeValidation(w, r, fields)
		return false
	}
	s.writeError(w, r, err, "")
	return false
}

// writeError maps repository and booking errors to a response. what names the
// resource in not-found and conflict messages.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, what string) {
	if be, ok := booking.AsError(err); ok {
		switch be.Kind {
		case booking.KindInvalid:
			s.writeValidation(w, r, []validator.FieldError{{Field: be.Field, Description: be.Message}})
		case booking.KindNotFound:
			http.Error(w, be.Message, http.StatusNotFound)
		case booking.KindConflict:
			http.Error(w, be.Message, http.StatusConflict)
		default:
			http.Error(w, be.Message, http.StatusInternalServerError)
		}
		return
	}

	switch {
	case repo.IsNotFound(err):
		http.Error(w, what+" not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrDuplicatedValueUnique):
		http.Error(w, what+" already exists", http.StatusConflict)
	case errors.Is(err, repo.ErrInUse):
		http.Error(w, what+" is in use", http.StatusConflict)
	case errors.Is(err, repo.ErrInvalidReference):
		s.writeValidation(w, r, []validator.FieldError{{Description: "references a record that does not exist"}})
	case errors.Is(err, repo.ErrInvalidQuantityChange):
		http.Error(w, "stock cannot be negative", http.StatusConflict)
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID")
	}
	return id, nil
}

func queryInt(q url.Values, name string) (*int, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", name)
	}
	return &v, nil
}

func queryFloat(q url.Values, name string) (*float64, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", name)
	}
	return &v, nil
}

func queryBool(q url.Values, name string) (*bool, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", name)
	}
	return &v, nil
}

func queryTime(q url.Values, name string) (*time.Time, error) {
	s := q.Get(name)
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date format", name)
	}
	return &t, nil
}

// pagination reads offset and limit, rejecting a negative offset and a
// non-positive limit.
func pagination(q url.Values) (offset, limit *int, err error) {
	if offset, err = queryInt(q, "offset"); err != nil {
		return nil, nil, err
	}
	if limit, err = queryInt(q, "limit"); err != nil {
		return nil, nil, err
	}
	if limit != nil && *limit <= 0 {
		return nil, nil, errors.New("limit must be greater than zero")
	}
	if offset != nil && *offset < 0 {
		return nil, nil, errors.New("offset must be zero or positive")
	}
	return offset, limit, nil
}
