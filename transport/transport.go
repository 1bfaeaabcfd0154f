// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gogama/queryx/request"
)

// A Transport sends a query descriptor and returns the raw response or
// an error. Implementations must be safe for concurrent use by multiple
// goroutines.
//
// Transports are responsible for timeout enforcement: the executing
// client sets no deadlines of its own beyond the query's context.
type Transport interface {
	Send(ctx context.Context, q *request.Query) (*Response, error)
}

// The Func type is an adapter to allow the use of ordinary functions as
// transports. It is chiefly useful for simulating sends in tests.
type Func func(ctx context.Context, q *request.Query) (*Response, error)

// Send calls f(ctx, q).
func (f Func) Send(ctx context.Context, q *request.Query) (*Response, error) {
	return f(ctx, q)
}

// A Response is the raw result of a successful exchange (any 2XX
// status).
type Response struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Header contains the response headers.
	Header http.Header

	// Body is the fully buffered response body. It is nil when the
	// query requested a stream.
	Body []byte

	// Stream is the unread response body, set only when the query's
	// ReturnStream flag was true. The caller owns the stream and must
	// close it.
	Stream io.ReadCloser
}

// An Error is a failed exchange, carrying whatever HTTP-level detail
// was available when the send failed.
type Error struct {
	// StatusCode is the HTTP status code of the error response, or 0
	// if the failure occurred before any response was received (a pure
	// transport fault).
	StatusCode int

	// Header contains the response headers, if a response was
	// received.
	Header http.Header

	// Body is the error response body, if one was received and read.
	Body []byte

	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("queryx/transport: send failed: %v", e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("queryx/transport: status %d: %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("queryx/transport: status %d", e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the error was caused by a timeout, in the
// manner of net.Error.
func (e *Error) Timeout() bool {
	return Categorize(e.Cause) == Timeout
}
