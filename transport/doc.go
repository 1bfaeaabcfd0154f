// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transport defines the capability that performs the actual
// network exchange for a query descriptor, and an implementation of it
// over any net/http compatible client.
//
// A Transport returns a *Response for a 2XX exchange and an error
// otherwise. When the failure carries HTTP-level detail (a status code,
// response headers, an error body), the error is a *Error exposing that
// detail for classification by the executing client: redirect handling
// and service error translation both read it.
package transport
