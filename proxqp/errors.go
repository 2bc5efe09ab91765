// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxqp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a proxqp.Error, letting callers branch on failure mode
// without string-matching Error().
type Kind int

const (
	// InvalidDimensions: H, A, C, g, b, l or u have inconsistent shapes.
	InvalidDimensions Kind = iota
	// InvalidBounds: some l[i] > u[i].
	InvalidBounds
	// FactorizationBreakdown: returned by Solve when its context is already
	// done before the solve starts. A zero pivot in the KKT factorization is
	// not reported through this kind; it ends the solve with status
	// PrimalInfeasible in Results.Info.
	FactorizationBreakdown
)

func (k Kind) String() string {
	switch k {
	case InvalidDimensions:
		return "invalid dimensions"
	case InvalidBounds:
		return "invalid bounds"
	case FactorizationBreakdown:
		return "factorization breakdown"
	default:
		return "unknown"
	}
}

// Error is the typed error every exported proxqp operation returns on
// failure. Wrapping is done with github.com/pkg/errors so callers that
// need it can still unwrap or print a stack via errors.Cause.
type Error struct {
	Kind Kind
	err  error
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, err: errors.Errorf(format, args...)}
}

func wrapError(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, err: errors.WithMessage(err, msg)}
}

func (e *Error) Error() string { return fmt.Sprintf("proxqp: %s: %v", e.Kind, e.err) }

func (e *Error) Unwrap() error { return e.err }
