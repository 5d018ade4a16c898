// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/recipebox/internal/logging"
	"github.com/tomtom215/recipebox/internal/models"
	"github.com/tomtom215/recipebox/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// sanitizeLogValue escapes control characters to prevent log injection.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes response as JSON. Responses are per-user and never cached.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes an error envelope and logs err, when present, with the
// request's logger.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}
	respondJSON(w, status, models.Failure(code, message, nil))
}

// respondValidationError writes a VALIDATION_ERROR with per-field details.
func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	details := map[string]interface{}{"fields": apiErr.Fields}
	respondJSON(w, http.StatusBadRequest, models.Failure(apiErr.Code, apiErr.Message, details))
}

// respondEngineError maps an engine error onto the error envelope.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, _ := classifyError(err)
	var logErr error
	if status >= http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		logErr = err
	}
	respondError(w, r, status, code, publicMessage(status, err), logErr)
}

// decodeJSON decodes a bounded request body into dst and validates it.
// It writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		message := "Invalid JSON body: " + err.Error()
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			message = "Request body is required"
		case errors.As(err, &maxErr):
			message = fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit)
		}
		respondError(w, r, http.StatusBadRequest, CodeValidationError, message, nil)
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		respondValidationError(w, verr)
		return false
	}
	return true
}

// userIDParam returns the validated {userID} path parameter.
func userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	return pathParam(w, r, "userID", func(id string) pathIDs { return pathIDs{UserID: id} })
}

// recipeIDParam returns the validated {recipeID} path parameter.
func recipeIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	return pathParam(w, r, "recipeID", func(id string) pathIDs { return pathIDs{RecipeID: id} })
}

func pathParam(w http.ResponseWriter, r *http.Request, name string, wrap func(string) pathIDs) (string, bool) {
	id := chi.URLParam(r, name)
	if id == "" {
		respondError(w, r, http.StatusBadRequest, CodeValidationError, name+" is required", nil)
		return "", false
	}
	ids := wrap(id)
	if verr := validation.ValidateStruct(&ids); verr != nil {
		respondValidationError(w, verr)
		return "", false
	}
	return id, true
}
