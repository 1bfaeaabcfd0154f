// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gogama/queryx/request"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as cookies and auth) configured on the HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// HTTP is a Transport that sends queries over an HTTPDoer. Its zero
// value is a valid configuration using http.DefaultClient and no
// per-attempt timeout.
//
// HTTP buffers the whole response body unless the query's ReturnStream
// flag is set, in which case the successful response exposes the unread
// body as Response.Stream and the caller owns it.
//
// The HTTPDoer must not follow redirects itself: redirect statuses must
// surface as errors so the executing client can rewrite the query URL
// and re-sign. The default doer satisfies this; a custom http.Client
// must be configured with a CheckRedirect function that returns
// http.ErrUseLastResponse.
type HTTP struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, a default client is used which shares the
	// standard library's default transport but does not follow
	// redirects.
	HTTPDoer HTTPDoer

	// Timeout is the per-attempt timeout. Zero means no per-attempt
	// timeout; the query's own context still applies.
	Timeout time.Duration
}

// Send performs one HTTP exchange for the query in its current state.
func (t *HTTP) Send(ctx context.Context, q *request.Query) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cancel := func() {}
	if t.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
	}

	resp, err := t.doer().Do(q.ToRequest(ctx))
	if err != nil {
		cancel()
		return nil, &Error{Cause: err}
	}

	if q.ReturnStream && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		// The stream outlives this call, so the attempt timeout is
		// released when the caller closes it.
		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Stream:     &cancelReadCloser{body: resp.Body, cancel: cancel},
		}, nil
	}
	defer cancel()

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Header: resp.Header, Cause: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}, nil
	}
	return nil, &Error{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Cause:      errors.New(http.StatusText(resp.StatusCode)),
	}
}

// defaultClient never follows a redirect, so a 301, 302 or 307 reaches
// the executing client as an *Error instead of being replayed by
// net/http as an unsigned request at the new location.
var defaultClient = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func (t *HTTP) doer() HTTPDoer {
	if t.HTTPDoer == nil {
		return defaultClient
	}
	return t.HTTPDoer
}

type cancelReadCloser struct {
	body   io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Read(p []byte) (int, error) {
	return c.body.Read(p)
}

func (c *cancelReadCloser) Close() error {
	err := c.body.Close()
	c.cancel()
	return err
}
