// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package sign

import (
	"context"

	"github.com/gogama/queryx/request"
)

// A Signer adds an authentication signature to a query descriptor,
// mutating its headers in place. The descriptor's credential handle,
// service, region, URL and body must all be final when Sign is called:
// the executing client signs immediately before each send, after any
// redirect rewrite or credential refresh.
//
// Implementations of Signer must be safe for concurrent use by multiple
// goroutines (each call operates on its own descriptor).
type Signer interface {
	Sign(ctx context.Context, q *request.Query) error
}

// The SignerFunc type is an adapter to allow the use of ordinary
// functions as signers.
type SignerFunc func(ctx context.Context, q *request.Query) error

// Sign calls f(ctx, q).
func (f SignerFunc) Sign(ctx context.Context, q *request.Query) error {
	return f(ctx, q)
}

// An Error is a signing failure. Signing failures are fatal: the
// executing client aborts the call without consuming further attempts,
// since a request that cannot be signed cannot ever be sent.
type Error struct {
	// Cause is the underlying error from the signer.
	Cause error
}

func (e *Error) Error() string {
	return "queryx/sign: " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}
