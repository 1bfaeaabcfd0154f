// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"

	"github.com/gogama/queryx/credential"
	"github.com/gogama/queryx/endpoint"
)

var (
	template, _ = http.NewRequest("POST", "", nil)
)

const (
	nilCtxMsg = "queryx/request: nil context"

	// ContentType is the content type set on every built query. The
	// builder owns this header; callers may not override it through
	// the builder interface.
	ContentType = "application/x-www-form-urlencoded; charset=utf-8"
)

// An InvalidParameterError reports malformed builder input. It is fatal
// and never retried: the call fails before any request is constructed.
type InvalidParameterError struct {
	// Name identifies the offending input (a parameter key, or the
	// builder argument name).
	Name string

	// Reason describes what is wrong with the input.
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("queryx/request: invalid parameter %q: %s", e.Name, e.Reason)
}

// A Query contains the canonical representation of one pending service
// call: the HTTP verb, the target URL, the headers and parameters to
// send, the encoded body derived from the parameters, and the
// credential handle the call is signed with.
//
// The executing client mutates a Query in place between retry attempts.
// Two invariants hold throughout: URL and Resource are always rewritten
// together (see Redirect), and Body is always the deterministic encoding
// of Params at the time of signing (see SetParam and EncodeParams).
//
// Like an http.Request, a Query has a context which controls the whole
// call, including every retry attempt. Use WithContext to change it.
type Query struct {
	// Method specifies the HTTP method. Queries constructed by Build
	// always use POST; construct a Query with New, or directly, for
	// other verbs.
	Method string

	// Service is the service identifier the call is addressed to and
	// signed for, for example "sdb".
	Service string

	// Region is the region the call is addressed to and signed for.
	// An empty region targets the service's global endpoint.
	Region string

	// Resource is the URL path of the call. It defaults to "/" and is
	// kept consistent with URL at all times.
	Resource string

	// URL is the fully qualified endpoint plus resource.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent. The
	// executing client refreshes the Host and User-Agent headers
	// before every signature, and the signer adds its authentication
	// headers here.
	Header http.Header

	// Params contains the query parameters. Modify Params via SetParam,
	// or call EncodeParams after editing the map directly, so that Body
	// stays consistent.
	Params map[string]string

	// Body is the encoded request body: the URL-encoded serialization
	// of Params with keys in lexicographic order. Equal parameter maps
	// always produce byte-identical bodies, which keeps signatures
	// reproducible.
	Body []byte

	// Credentials is the credential handle the call is signed with.
	// It is exclusively owned by this Query for the duration of one
	// call, and is replaced wholesale by the executing client when it
	// expires.
	Credentials *credential.Credentials

	// ReturnStream, when true, instructs the transport to leave the
	// response body unread and hand back a stream instead of a
	// buffered byte slice.
	ReturnStream bool

	// ctx controls the whole call. It should only be modified by
	// copying the whole Query using WithContext.
	ctx context.Context
}

// Build wraps BuildWithContext using the background context.
func Build(r endpoint.Resolver, seed *Query, service, apiVersion string, params map[string]string) (*Query, error) {
	return BuildWithContext(context.Background(), r, seed, service, apiVersion, params)
}

// BuildWithContext constructs a Query-protocol POST request descriptor.
//
// The seed supplies call-level defaults (typically Region, and Resource
// or URL when they differ from the endpoint root); a nil seed is
// treated as empty. Resource defaults to "/". The URL is the resolved
// endpoint for (service, seed.Region) plus the resource, unless the
// seed already carries a URL, in which case the resource is aligned to
// the URL's path. A nil resolver falls back to endpoint.Default.
//
// If apiVersion is non-empty, the "Version" parameter is set to it,
// overwriting any caller-supplied value. The Content-Type header is
// always set to ContentType. Body is the sorted URL-encoded
// serialization of the final parameter map.
//
// Build performs no network I/O. An empty service or an empty parameter
// key fails fast with an *InvalidParameterError.
func BuildWithContext(ctx context.Context, r endpoint.Resolver, seed *Query, service, apiVersion string, params map[string]string) (*Query, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if service == "" {
		return nil, &InvalidParameterError{Name: "service", Reason: "must not be empty"}
	}

	q := new(Query)
	if seed != nil {
		*q = *seed
	}
	q.ctx = ctx
	q.Method = "POST"
	q.Service = service
	if q.Resource == "" {
		q.Resource = "/"
	}

	q.Header = q.Header.Clone()
	if q.Header == nil {
		q.Header = make(http.Header)
	}
	q.Header.Set("Content-Type", ContentType)

	q.Params = make(map[string]string, len(params)+1)
	for k, v := range params {
		if k == "" {
			return nil, &InvalidParameterError{Name: k, Reason: "empty parameter key"}
		}
		q.Params[k] = v
	}
	if apiVersion != "" {
		q.Params["Version"] = apiVersion
	}

	if q.URL == nil {
		if r == nil {
			r = endpoint.Default
		}
		base, err := r.Resolve(service, q.Region)
		if err != nil {
			return nil, err
		}
		u, err := urlpkg.Parse(base + q.Resource)
		if err != nil {
			return nil, err
		}
		u.Host = removeEmptyPort(u.Host)
		q.URL = u
	} else {
		u := *q.URL
		u.Host = removeEmptyPort(u.Host)
		q.URL = &u
		if u.Path != "" {
			q.Resource = u.Path
		}
	}

	q.EncodeParams()
	return q, nil
}

// New constructs a bare Query for a verb other than POST, for example a
// GET whose response will be streamed. The method must be a valid HTTP
// token; an empty method means GET. No parameters are encoded and no
// endpoint resolution is performed: url must be fully qualified.
func New(method, url string) (*Query, error) {
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("queryx/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	resource := u.Path
	if resource == "" {
		resource = "/"
	}
	return &Query{
		Method:   method,
		Resource: resource,
		URL:      u,
		Header:   make(http.Header),
	}, nil
}

// Context returns the query's context. The context controls
// cancellation of the whole call, across all retry attempts. To change
// the context, use WithContext.
//
// The returned context is always non-nil; it defaults to the background
// context.
func (q *Query) Context() context.Context {
	if q.ctx != nil {
		return q.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of q with its context changed to
// ctx, which must be non-nil.
func (q *Query) WithContext(ctx context.Context) *Query {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	q2 := new(Query)
	*q2 = *q
	q2.ctx = ctx
	return q2
}

// SetParam sets a single parameter and re-encodes Body, keeping the
// body consistent with the parameter map.
func (q *Query) SetParam(key, value string) {
	if q.Params == nil {
		q.Params = make(map[string]string)
	}
	q.Params[key] = value
	q.EncodeParams()
}

// Param returns the value of the named parameter, or the empty string
// if the parameter is not set.
func (q *Query) Param(key string) string {
	return q.Params[key]
}

// Action returns the value of the "Action" parameter, the conventional
// operation name of a Query-protocol call.
func (q *Query) Action() string {
	return q.Params["Action"]
}

// EncodeParams recomputes Body from Params. The encoding is the
// standard URL encoding with keys in lexicographic order, so equal
// parameter maps always yield byte-identical bodies.
//
// Call EncodeParams after editing Params directly; SetParam calls it
// automatically.
func (q *Query) EncodeParams() {
	vals := make(urlpkg.Values, len(q.Params))
	for k, v := range q.Params {
		vals.Set(k, v)
	}
	q.Body = []byte(vals.Encode())
}

// Redirect rewrites the query to target location, keeping URL and
// Resource consistent with each other. A relative location is resolved
// against the current URL. The executing client calls Redirect when a
// send fails with a redirect status carrying a Location header.
func (q *Query) Redirect(location string) error {
	u, err := urlpkg.Parse(location)
	if err != nil {
		return err
	}
	if !u.IsAbs() {
		if q.URL == nil {
			return fmt.Errorf("queryx/request: relative redirect %q without base URL", location)
		}
		u = q.URL.ResolveReference(u)
	}
	u.Host = removeEmptyPort(u.Host)
	q.URL = u
	if u.Path == "" {
		q.Resource = "/"
	} else {
		q.Resource = u.Path
	}
	return nil
}

// ToRequest creates an HTTP request corresponding to the query in its
// current state. The context of the new request is set to ctx, which
// may not be nil.
//
// The returned request shares the query's Header map, so signers that
// mutate the request's headers update the descriptor as well.
func (q *Query) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = q.Method
	r.URL = q.URL
	r.Header = q.Header
	if len(q.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(q.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(q.Body)), nil
		}
		r.ContentLength = int64(len(q.Body))
	}
	r.Host = q.Header.Get("Host")
	return r
}
