// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gogama/queryx/transport"
)

// A MalformedError reports a decoding failure on an ostensibly
// successful response. It is fatal and never retried: the HTTP exchange
// itself succeeded, so retrying cannot help.
type MalformedError struct {
	// ContentType is the Content-Type header value that selected the
	// decoder.
	ContentType string

	// Cause is the underlying syntax error.
	Cause error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("queryx/decode: malformed %s response: %v", e.ContentType, e.Cause)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}

// A Result is a successful response together with its decoded payload.
type Result struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Header contains the response headers.
	Header http.Header

	// Body is the raw response body. It is nil when the response was
	// streamed.
	Body []byte

	// Stream is the unread response body of a streamed call. It is nil
	// unless the query asked for a stream. The caller owns the stream
	// and must close it.
	Stream io.ReadCloser

	// Payload is the decoded payload. Its Kind is KindNone until
	// Decode runs, and stays KindNone if the body was empty or the
	// response was streamed.
	Payload Payload
}

// NewResult wraps a raw transport response in an undecoded Result.
func NewResult(resp *transport.Response) *Result {
	return &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
		Stream:     resp.Stream,
	}
}

// Decode populates the result's payload from its body, dispatching on
// the Content-Type header by case-sensitive suffix match:
//
// • a type ending in "/xml" decodes into a generic XML element tree;
//
// • a type ending in "/x-amz-json-1.0" decodes into a generic JSON
// value, with no envelope unwrapping;
//
// • any other type ending in "json" decodes into a generic JSON value
// and is then unwrapped from the conventional envelope
// [action+"Response"][action+"Result"] when both keys are present. When
// either is absent the outer document is kept, as not every JSON
// service follows the convention;
//
// • anything else is carried through as raw bytes.
//
// An empty body leaves the result unchanged regardless of content type.
// Decode is applied exactly once: a Result whose payload is already
// populated is left alone. An XML or JSON syntax error returns a
// *MalformedError.
func (r *Result) Decode(action string) error {
	if r.Payload.Kind != KindNone {
		return nil
	}
	if len(r.Body) == 0 {
		return nil
	}

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasSuffix(ct, "/xml"):
		n, err := parseXML(r.Body)
		if err != nil {
			return &MalformedError{ContentType: ct, Cause: err}
		}
		r.Payload = Payload{Kind: KindXML, XML: n}
	case strings.HasSuffix(ct, "/x-amz-json-1.0"):
		v, err := parseJSON(r.Body)
		if err != nil {
			return &MalformedError{ContentType: ct, Cause: err}
		}
		r.Payload = Payload{Kind: KindJSON, JSON: v}
	case strings.HasSuffix(ct, "json"):
		v, err := parseJSON(r.Body)
		if err != nil {
			return &MalformedError{ContentType: ct, Cause: err}
		}
		r.Payload = Payload{Kind: KindJSON, JSON: unwrap(v, action)}
	default:
		r.Payload = Payload{Kind: KindRaw, Raw: r.Body}
	}
	return nil
}

// unwrap peels the conventional [action+"Response"][action+"Result"]
// envelope off a decoded JSON document. If either key is absent the
// outer document is returned unchanged.
func unwrap(v interface{}, action string) interface{} {
	if action == "" {
		return v
	}
	outer, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	resp, ok := outer[action+"Response"].(map[string]interface{})
	if !ok {
		return v
	}
	result, ok := resp[action+"Result"]
	if !ok {
		return v
	}
	return result
}
