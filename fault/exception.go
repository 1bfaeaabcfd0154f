// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gogama/queryx/transport"
)

// An Exception is a structured service error: the terminal result of a
// call whose attempts were exhausted without success. It carries enough
// structure (kind, message, status) for the caller to act on.
type Exception struct {
	// Kind is the service error code, for example "InvalidParameterValue"
	// or "ExpiredToken". For failures without a service error body,
	// Kind names the failure category ("Timeout", "ConnectionReset",
	// "ConnectionRefused", "RequestError", or the HTTP status text).
	Kind string

	// Message is the human-readable error message, passed through
	// verbatim from the service when one was provided.
	Message string

	// StatusCode is the HTTP status of the error response, or 0 if the
	// failure occurred before any response was received.
	StatusCode int

	// RequestID is the service-assigned request identifier, when the
	// error response carried one.
	RequestID string
}

func (e *Exception) Error() string {
	var b strings.Builder
	b.WriteString("queryx/fault: ")
	b.WriteString(e.Kind)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.RequestID != "" {
		b.WriteString(" request id ")
		b.WriteString(e.RequestID)
	}
	return b.String()
}

// Expired reports whether the exception is a credential-expiry signal.
// The executing client treats an expired exception as recoverable:
// it marks the descriptor's credentials expired and retries with a
// fresh handle.
func (e *Exception) Expired() bool {
	switch e.Kind {
	case "ExpiredToken", "ExpiredTokenException", "RequestExpired":
		return true
	}
	return false
}

// Redirect reports whether err is a redirect signal: a send failure
// with status 301, 302 or 307 carrying a Location header. When it is,
// Redirect returns the target location. A redirect signal is
// recoverable and never surfaced to the caller: the executing client
// rewrites the query URL and retries.
func Redirect(err error) (location string, ok bool) {
	var te *transport.Error
	if !errors.As(err, &te) {
		return "", false
	}
	switch te.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect:
	default:
		return "", false
	}
	loc := te.Header.Get("Location")
	if loc == "" {
		return "", false
	}
	return loc, true
}

// Translate converts a raw send error into an Exception. An error that
// already is an Exception is returned as is.
//
// For failures carrying a response, the service error code and message
// are parsed from the error body, accepting both the XML shape
// (<Code> and <Message>, possibly nested under <Error>) and the JSON
// shape (__type and message). When the body yields no code, the Kind
// falls back to the HTTP status text with spaces removed, or, for
// status-less transport faults, to the transience category of the
// underlying error.
func Translate(err error) *Exception {
	var ex *Exception
	if errors.As(err, &ex) {
		return ex
	}

	var te *transport.Error
	if !errors.As(err, &te) {
		return &Exception{Kind: "RequestError", Message: err.Error()}
	}

	x := &Exception{
		StatusCode: te.StatusCode,
		RequestID:  requestID(te.Header),
	}
	if code, msg, ok := parseErrorBody(te.Body); ok {
		x.Kind = code
		x.Message = msg
		return x
	}

	if te.StatusCode == 0 {
		switch transport.Categorize(te) {
		case transport.Timeout:
			x.Kind = "Timeout"
		case transport.ConnReset:
			x.Kind = "ConnectionReset"
		case transport.ConnRefused:
			x.Kind = "ConnectionRefused"
		default:
			x.Kind = "RequestError"
		}
		if te.Cause != nil {
			x.Message = te.Cause.Error()
		}
		return x
	}

	x.Kind = strings.ReplaceAll(http.StatusText(te.StatusCode), " ", "")
	if x.Kind == "" {
		x.Kind = fmt.Sprintf("HTTP%d", te.StatusCode)
	}
	if len(te.Body) > 0 {
		x.Message = string(te.Body)
	} else if te.Cause != nil {
		x.Message = te.Cause.Error()
	}
	return x
}

// xmlError matches the three XML error shapes seen in the wild: flat
// (<Response><Code/><Message/>), singly nested
// (<ErrorResponse><Error><Code/>...), and doubly nested
// (<Response><Errors><Error><Code/>...). xml.Unmarshal accepts any
// root element name.
type xmlError struct {
	Code     string `xml:"Code"`
	Message  string `xml:"Message"`
	ErrCode  string `xml:"Error>Code"`
	ErrMsg   string `xml:"Error>Message"`
	ErrsCode string `xml:"Errors>Error>Code"`
	ErrsMsg  string `xml:"Errors>Error>Message"`
}

type jsonError struct {
	Type     string `json:"__type"`
	Message  string `json:"message"`
	Message2 string `json:"Message"`
}

func parseErrorBody(body []byte) (code, msg string, ok bool) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", "", false
	}

	if strings.HasPrefix(trimmed, "<") {
		var xe xmlError
		if err := xml.Unmarshal(body, &xe); err != nil {
			return "", "", false
		}
		switch {
		case xe.ErrsCode != "":
			return xe.ErrsCode, xe.ErrsMsg, true
		case xe.ErrCode != "":
			return xe.ErrCode, xe.ErrMsg, true
		case xe.Code != "":
			return xe.Code, xe.Message, true
		}
		return "", "", false
	}

	if strings.HasPrefix(trimmed, "{") {
		var je jsonError
		if err := json.Unmarshal(body, &je); err != nil {
			return "", "", false
		}
		if je.Type == "" {
			return "", "", false
		}
		// JSON services qualify the code as "namespace#Code".
		if i := strings.LastIndex(je.Type, "#"); i >= 0 {
			je.Type = je.Type[i+1:]
		}
		msg = je.Message
		if msg == "" {
			msg = je.Message2
		}
		return je.Type, msg, true
	}

	return "", "", false
}

func requestID(h http.Header) string {
	if h == nil {
		return ""
	}
	if id := h.Get("X-Amzn-Requestid"); id != "" {
		return id
	}
	return h.Get("X-Amz-Request-Id")
}
