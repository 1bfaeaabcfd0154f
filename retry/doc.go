// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry controls how long the executing client waits between
// attempts.
//
// Whether a failed attempt is retried at all is decided by the client's
// error classification, not by this package: redirects and expired
// credentials are always retried while the shared attempt budget lasts,
// and signing or decoding failures never are. What this package
// provides is the backoff, through the Waiter interface.
//
// Use NewFixedWaiter or NewExpWaiter to construct a waiter, or rely on
// DefaultWaiter, a jittered exponential backoff suitable for most
// callers.
package retry
