// Package apperr holds sentinel errors shared across service boundaries.
package apperr

import "errors"

var ErrNotFound = errors.New("not found")
