// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package decode normalizes successful responses by content type.
//
// A Result wraps the raw response; its Decode method inspects the
// Content-Type header and populates the tagged Payload with exactly one
// of a generic XML element tree, a generic JSON value, or the raw body
// bytes. JSON responses following the Query-protocol convention are
// additionally unwrapped from their Action+"Response"/"Result" envelope
// on a best-effort basis.
//
// Decoding is applied exactly once per response: calling Decode on an
// already decoded Result is a no-op.
package decode
