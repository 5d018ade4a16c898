// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/recipebox/internal/recommend"
	"github.com/tomtom215/recipebox/internal/validation"
)

// API error codes.
const (
	CodeValidationError     = validation.CodeValidationError
	CodeInvalidActivityType = "INVALID_ACTIVITY_TYPE"
	CodeInvalidFeedbackType = "INVALID_FEEDBACK_TYPE"
	CodePersistenceError    = "PERSISTENCE_ERROR"
	CodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	CodeNotFound            = "NOT_FOUND"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeRequestCanceled     = "REQUEST_CANCELED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Write outcomes for the activity write counter.
const (
	resultOK          = "ok"
	resultInvalid     = "invalid"
	resultPersistence = "persistence_error"
	resultError       = "error"
)

// Write kinds for the activity write counter.
const (
	kindActivity = "activity"
	kindFeedback = "feedback"
)

// classifyError maps engine errors to an HTTP status, an API code and the
// write-counter result.
func classifyError(err error) (status int, code, result string) {
	switch {
	case errors.Is(err, recommend.ErrInvalidActivityType):
		return http.StatusBadRequest, CodeInvalidActivityType, resultInvalid
	case errors.Is(err, recommend.ErrInvalidFeedbackType):
		return http.StatusBadRequest, CodeInvalidFeedbackType, resultInvalid
	case errors.Is(err, recommend.ErrInvalidIdentifier),
		errors.Is(err, recommend.ErrUnsupportedMetadata):
		return http.StatusBadRequest, CodeValidationError, resultInvalid
	case errors.Is(err, recommend.ErrPersistence):
		return http.StatusServiceUnavailable, CodePersistenceError, resultPersistence
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, CodeRequestCanceled, resultError
	default:
		return http.StatusInternalServerError, CodeInternalError, resultError
	}
}

// publicMessage hides internal error text for server-side failures.
func publicMessage(status int, err error) string {
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusServiceUnavailable:
		if errors.Is(err, recommend.ErrPersistence) {
			return "The activity store is unavailable; the write was not recorded"
		}
		return "The request was canceled before it completed"
	default:
		return "Internal server error"
	}
}
