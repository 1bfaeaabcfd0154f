// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package endpoint resolves a service identifier and region into the
// base URL the request builder uses to construct the query URL.
//
// The Default resolver follows the AWS endpoint naming convention.
// Install a custom Resolver, or use Fixed, to point the builder at a
// non-standard endpoint such as a local emulator.
package endpoint
