// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package fault classifies failed sends. Translate converts a raw send
// error into a structured Exception carrying an error kind, a message,
// and the HTTP status when one was received, parsing the XML and JSON
// error body shapes used by Query-protocol services. Redirect
// recognizes the recoverable redirect signal, and Exception.Expired
// recognizes the recoverable credential-expiry signal; both drive the
// executing client's retry decisions.
package fault
