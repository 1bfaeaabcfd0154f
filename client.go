// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package queryx

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gogama/queryx/credential"
	"github.com/gogama/queryx/decode"
	"github.com/gogama/queryx/endpoint"
	"github.com/gogama/queryx/fault"
	"github.com/gogama/queryx/request"
	"github.com/gogama/queryx/retry"
	"github.com/gogama/queryx/sign"
	"github.com/gogama/queryx/transport"
)

const (
	// DefaultAttempts is the total send budget of one query execution:
	// the initial attempt plus all retries, whatever their cause, may
	// not exceed it.
	DefaultAttempts = 3

	// DefaultUserAgent is the User-Agent header value sent when the
	// client and the query both leave it unset.
	DefaultUserAgent = "gogama/queryx"
)

var (
	emptyHandlers = HandlerGroup{}
	defaultHTTP   = transport.HTTP{}
	nopLogger     = zerolog.Nop()
)

// A Client executes query descriptors against AWS-style cloud
// services. Its zero value is a valid configuration.
//
// The zero value client sends with a default transport.HTTP, signs
// with sign.Default (Signature Version 4), waits between retries per
// retry.DefaultWaiter, makes no more than DefaultAttempts sends per
// execution, and has no credential provider, so the query must carry
// its own credential handle.
//
// Client instances should be reused instead of created as needed,
// since the underlying transport typically caches TCP connections.
// Client is safe for concurrent use by multiple goroutines, provided
// each goroutine executes its own Query: the client mutates the
// descriptor in place between attempts.
//
// A Client is higher-level than a Transport. The Transport sends one
// request and reports what happened; Client turns that into a
// completed call:
//
// • it obtains a credential handle from the Provider when the query
// has none, or when the query's handle has expired;
//
// • it signs the query immediately before every send, so redirects and
// refreshed credentials are always covered by a valid signature;
//
// • it follows cross-region redirects by rewriting the query URL and
// resending;
//
// • it retries failed sends within the attempt budget, waiting between
// attempts per the Waiter;
//
// • it decodes the successful response by content type into a
// decode.Result; and
//
// • it invokes user-provided handler functions at designated plug-in
// points within the attempt loop, allowing new features to be mixed in
// from outside libraries.
type Client struct {
	// Transport specifies the mechanics of sending one request and
	// receiving one response.
	//
	// If Transport is nil, a default transport.HTTP is used.
	Transport transport.Transport
	// Signer computes the authentication signature of each attempt.
	//
	// If Signer is nil, sign.Default is used.
	Signer sign.Signer
	// Credentials obtains credential handles for queries that carry
	// none, and fresh handles when a service reports the current one
	// expired. Wrap the provider in a credential.Cache to share
	// handles across executions.
	//
	// If Credentials is nil, the query's own handle is used as is, and
	// a credential-expiry error consumes attempts until the budget is
	// exhausted.
	Credentials credential.Provider
	// Endpoint resolves service and region to an endpoint URL for
	// queries built by the Action method.
	//
	// If Endpoint is nil, endpoint.Default is used.
	Endpoint endpoint.Resolver
	// Region is the region queries built by the Action method are
	// addressed to. An empty region targets global endpoints.
	Region string
	// Waiter decides how long to wait before each retry.
	//
	// If Waiter is nil, retry.DefaultWaiter is used.
	Waiter retry.Waiter
	// Attempts is the total send budget of one execution.
	//
	// If Attempts is zero, DefaultAttempts is used.
	Attempts int
	// UserAgent is the User-Agent header value set on queries that
	// have none.
	//
	// If UserAgent is empty, DefaultUserAgent is used.
	UserAgent string
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a query execution.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives debug diagnostics when Debug is positive.
	//
	// If Logger is nil, diagnostics are discarded.
	Logger *zerolog.Logger
	// Debug sets the diagnostic verbosity: 0 is silent, 1 logs a one
	// line summary of each send, 2 adds the outcome of each attempt.
	Debug int
}

// Do executes a query and returns the decoded result, following the
// credential, signing, retry and redirect policy set on Client.
//
// The result returned is the result of the final send made during the
// execution. An error is returned if the final send failed, or if the
// execution failed before any send could be made (for example, if the
// query could not be signed). A non-2xx status on the final send
// surfaces as a *fault.Exception; a signing failure as a *sign.Error;
// an undecodable success response as a *decode.MalformedError; and a
// cancelled context as the context's error.
//
// Do mutates the query in place: after it returns, the query's URL
// reflects any redirect followed, its Credentials any refresh
// performed, and its Header the signature of the final attempt. A
// Query should therefore not be executed by two goroutines at once.
//
// If the returned error is nil, the returned result is non-nil and
// holds the decoded payload, or the unread body stream when the query
// set ReturnStream.
func (c *Client) Do(q *request.Query) (*decode.Result, error) {
	e := Execution{
		Query: q,
	}

	tr := c.transport()
	waiter := c.waiter()
	attempts := c.Attempts
	if attempts == 0 {
		attempts = DefaultAttempts
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

	ctx := q.Context()

	for {
		if err := c.prepare(ctx, &e); err != nil {
			e.Err = err
			break
		}
		c.logAttempt(&e)
		handlers.run(BeforeAttempt, &e)

		resp, err := tr.Send(ctx, q)
		e.Sends++

		if err == nil {
			e.Response = resp
			result := decode.NewResult(resp)
			if derr := result.Decode(q.Action()); derr != nil {
				e.Err = derr
				c.logOutcome(&e)
				handlers.run(AfterAttempt, &e)
				break
			}
			e.Result = result
			c.logOutcome(&e)
			handlers.run(AfterAttempt, &e)
			break
		}

		redirect := c.classify(&e, err)
		c.logOutcome(&e)
		handlers.run(AfterAttempt, &e)

		if ctxErr := ctx.Err(); ctxErr != nil {
			e.Err = ctxErr
			break
		}
		if e.Sends >= attempts {
			if redirect {
				// Out of budget with the redirect unfollowed: surface
				// the redirect response as the terminal exception.
				e.Exception = fault.Translate(err)
				e.Err = e.Exception
			}
			break
		}
		if e.Err != nil && !retryable(e.Err) {
			break
		}
		if !redirect {
			if werr := sleepCtx(ctx, waiter.Wait(e.Attempt)); werr != nil {
				e.Err = werr
				break
			}
		}

		e.Attempt++
		e.Response = nil
		e.Exception = nil
		e.Err = nil
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return e.Result, e.Err
}

// Action builds a Query-protocol call and executes it, in one step.
// The query is built with the client's Endpoint and Region, the given
// action merged into params under the "Action" key, and the same
// semantics as request.BuildWithContext.
func (c *Client) Action(ctx context.Context, service, apiVersion, action string, params map[string]string) (*decode.Result, error) {
	merged := make(map[string]string, len(params)+1)
	for k, v := range params {
		merged[k] = v
	}
	merged["Action"] = action
	seed := &request.Query{Region: c.Region}
	q, err := request.BuildWithContext(ctx, c.Endpoint, seed, service, apiVersion, merged)
	if err != nil {
		return nil, err
	}
	return c.Do(q)
}

// prepare brings the query to a signable state for the next attempt:
// headers refreshed against the current URL, a live credential handle
// installed, and the signature computed over the final bytes.
func (c *Client) prepare(ctx context.Context, e *Execution) error {
	q := e.Query
	if q.URL == nil {
		return &request.InvalidParameterError{Name: "URL", Reason: "query has no URL"}
	}

	if q.Header == nil {
		q.Header = make(http.Header)
	}
	if q.Header.Get("User-Agent") == "" {
		ua := c.UserAgent
		if ua == "" {
			ua = DefaultUserAgent
		}
		q.Header.Set("User-Agent", ua)
	}
	if e.invocationID == "" {
		e.invocationID = uuid.NewString()
	}
	q.Header.Set("Amz-Sdk-Invocation-Id", e.invocationID)
	q.Header.Set("Host", q.URL.Host)

	if c.Credentials != nil && (q.Credentials == nil || q.Credentials.Expired()) {
		creds, err := c.Credentials.Retrieve(ctx)
		if err != nil {
			return err
		}
		q.Credentials = creds
	}

	return c.signer().Sign(ctx, q)
}

// classify maps a send error onto the execution state and reports
// whether it was a redirect signal. Redirects rewrite the query URL;
// credential-expiry exceptions expire the query's handle so the next
// prepare installs a fresh one. Every other error becomes the
// execution's current exception.
func (c *Client) classify(e *Execution, err error) (redirect bool) {
	q := e.Query
	if loc, ok := fault.Redirect(err); ok {
		if rerr := q.Redirect(loc); rerr != nil {
			e.Err = rerr
			return false
		}
		return true
	}

	ex := fault.Translate(err)
	if ex.Expired() && q.Credentials != nil {
		q.Credentials.Expire()
	}
	e.Exception = ex
	e.Err = ex
	return false
}

// retryable reports whether the execution's current error may be
// retried. Signing never happened for this error (classify only sees
// send errors), so the unretryable cases are the fatal decode and
// redirect-rewrite failures, which carry types other than
// *fault.Exception.
func retryable(err error) bool {
	_, ok := err.(*fault.Exception)
	return ok
}

func (c *Client) transport() transport.Transport {
	if c.Transport != nil {
		return c.Transport
	}
	return &defaultHTTP
}

func (c *Client) signer() sign.Signer {
	if c.Signer != nil {
		return c.Signer
	}
	return sign.Default
}

func (c *Client) waiter() retry.Waiter {
	if c.Waiter != nil {
		return c.Waiter
	}
	return retry.DefaultWaiter
}

func (c *Client) logger() *zerolog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return &nopLogger
}

func (c *Client) logAttempt(e *Execution) {
	if c.Debug < 1 {
		return
	}
	q := e.Query
	evt := c.logger().Debug().
		Str("service", q.Service).
		Str("action", q.Action()).
		Str("url", q.URL.String()).
		Int("attempt", e.Attempt)
	// Name-suffixed parameters identify the resource the call targets,
	// for example DomainName or QueueName.
	for k, v := range q.Params {
		if strings.HasSuffix(k, "Name") {
			evt = evt.Str(k, v)
		}
	}
	evt.Msg("sending query")
}

func (c *Client) logOutcome(e *Execution) {
	if c.Debug < 2 {
		return
	}
	evt := c.logger().Debug().
		Int("attempt", e.Attempt).
		Int("status", e.StatusCode())
	if e.Err != nil {
		evt = evt.Err(e.Err)
	}
	evt.Msg("query attempt concluded")
}

// sleepCtx waits for the backoff duration, or until the context is
// done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
