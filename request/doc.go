// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package request provides the Query descriptor, the canonical mutable
// representation of one pending service call, and the builder that
// constructs Query-protocol POST requests from an action parameter map.
//
// A Query is created once, by Build or New, and then mutated in place
// by the executing client across retry attempts: headers are refreshed
// before each signature, the URL and resource are rewritten together on
// redirect, and the credential handle is replaced wholesale on expiry.
// A Query is not safe for concurrent use; execute one call at a time
// per descriptor.
package request
