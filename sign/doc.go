// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package sign defines the capability that adds an authentication
// signature to a query descriptor, and an implementation of it using
// AWS Signature Version 4.
//
// Signers mutate the descriptor's headers in place, so a query can be
// re-signed on every attempt after the executing client has refreshed
// the Host header and, if necessary, the credential handle. A signing
// failure is fatal and never retried.
package sign
