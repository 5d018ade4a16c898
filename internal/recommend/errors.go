// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import "errors"

// Caller-contract violations. Unknown users and recipes are not errors; they
// produce empty results or zero scores.
var (
	// ErrInvalidActivityType is returned for activity type names outside the enum.
	ErrInvalidActivityType = errors.New("invalid activity type")

	// ErrInvalidFeedbackType is returned for feedback type names outside the enum.
	ErrInvalidFeedbackType = errors.New("invalid feedback type")

	// ErrInvalidIdentifier is returned when a user or recipe ID is empty.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrUnsupportedMetadata is returned when metadata holds a non-primitive value.
	ErrUnsupportedMetadata = errors.New("unsupported metadata value")
)

// ErrPersistence marks a write that the backing store did not acknowledge.
// The in-memory log is left unchanged when it is returned.
var ErrPersistence = errors.New("activity log persistence failed")
