// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package queryx

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/queryx/decode"
	"github.com/gogama/queryx/fault"
	"github.com/gogama/queryx/request"
	"github.com/gogama/queryx/transport"
)

// An Execution represents the state of a single query execution.
//
// When a query execution is requested, an Execution is created for it.
// The Execution is updated as the execution progresses, for example
// when a send concludes or a retry is needed, and is visible to event
// handlers at each plug-in point.
//
// Event handlers may set values on an Execution using its SetValue
// method and read them back using the Value method. They should treat
// the structure's exported fields as read-only, as the execution state
// is vital to the correct functioning of the retry loop.
type Execution struct {
	// Query specifies the query being executed. It is never nil. The
	// executing client mutates the query in place between attempts:
	// after a redirect its URL differs from the one it was built with,
	// and after a credential refresh its Credentials is a new handle.
	Query *request.Query

	// Start is the start time of the query execution. It is assigned a
	// non-zero value when the execution starts, and this value remains
	// constant thereafter.
	Start time.Time

	// End is the end time of the query execution. It contains the zero
	// value until the execution ends, when it is set to the current
	// time.
	End time.Time

	// Attempt is the zero-based number of the current attempt. It is
	// set to zero on the initial attempt, one on the first retry, and
	// so on.
	Attempt int

	// Sends is the count of requests actually sent so far. It differs
	// from Attempt+1 only when an attempt fails before its send, for
	// example on a signing failure.
	Sends int

	// Response is the raw transport response from the most recent
	// send, when the send returned one. It is nil if the most recent
	// send ended in an error.
	Response *transport.Response

	// Result is the decoded result of a successful execution. It is
	// nil until the execution succeeds.
	Result *decode.Result

	// Exception is the classified service error from the most recent
	// failed send, or nil. While the execution is in flight the
	// exception fluctuates as attempts fail and are retried; once the
	// execution ends it holds the terminal exception, if any.
	Exception *fault.Exception

	// Err is the error from the most recent attempt, or nil. Once the
	// execution ends, Err is the same error value returned by the
	// client's executing method.
	Err error

	// invocationID identifies the execution across all of its
	// attempts. It is sent as the Amz-Sdk-Invocation-Id header.
	invocationID string

	// data contains arbitrary handler data, via Value and SetValue.
	data context.Context
}

// StatusCode returns the HTTP status code of the most recent send's
// response. If no response was received, whether because no send has
// concluded yet or because the send failed without a response, 0 is
// returned.
func (e *Execution) StatusCode() int {
	if e.Response != nil {
		return e.Response.StatusCode
	}
	if e.Exception != nil {
		return e.Exception.StatusCode
	}
	return 0
}

// Header returns the HTTP response headers of the most recent send's
// response, or nil if no response was received.
//
// A nil return value is always safe for read-only operations, since
// http.Header is a map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}
	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started. If the return
// value is true, Start is a non-zero time indicating the execution
// start time.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended. If the return value
// is true, End is a non-zero time and there will be no further changes
// to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// SetValue allows event handlers to store arbitrary data in the query
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to
// avoid collisions between different event handlers putting data into
// the same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
