package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"grocery/internal/domain"
	"grocery/internal/export"
	"grocery/internal/models"
)

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var in models.ItemCreate
	if !s.decodeBody(w, r, &in) {
		return
	}

	item, err := s.items.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, s.cfg.HTTP.CreateStatus, item)
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	var filter *bool
	query := r.URL.Query()
	if query.Has("purchased") {
		purchased := models.ParseBoolQuery(query.Get("purchased"))
		filter = &purchased
	}

	items, err := s.items.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := s.items.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch models.ItemPatch
	if !s.decodeBody(w, r, &patch) {
		return
	}

	item, err := s.items.Update(r.Context(), id, patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := s.items.Toggle(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.items.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleExportItems(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.items.Export(r.Context(), &buf); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="shopping-list.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *HTTPServer) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.HTTP.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err == nil {
		// The body must hold exactly one JSON value.
		if extra := dec.Decode(&json.RawMessage{}); extra != io.EOF {
			err = errTrailingData
			if extra != nil {
				err = extra
			}
		}
	}
	if err == nil {
		return true
	}

	var (
		maxErr  *http.MaxBytesError
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		vErr := &models.ValidationError{Field: typeErr.Field, Reason: "must be " + jsonKind(typeErr.Type)}
		writeJSON(w, http.StatusUnprocessableEntity, validationBody{
			Error:  vErr.Error(),
			Field:  vErr.Field,
			Reason: vErr.Reason,
		})
	default:
		writeError(w, http.StatusUnprocessableEntity, "invalid JSON body")
	}
	return false
}

var errTrailingData = errors.New("unexpected data after JSON body")

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "of a different type"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	default:
		return "of a different type"
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody{
			Error:  fmt.Sprintf("invalid id: %q is not an integer", raw),
			Field:  "id",
			Reason: "must be an integer",
		})
		return 0, false
	}
	return id, true
}

type validationBody struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// writeServiceError maps domain and validation errors onto status codes.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody{
			Error:  vErr.Error(),
			Field:  vErr.Field,
			Reason: vErr.Reason,
		})
	case errors.Is(err, models.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, domain.ErrConstraintViolation):
		writeError(w, http.StatusUnprocessableEntity, "item violates store constraints")
	default:
		s.logger.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", RequestID(r.Context())).
			Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
