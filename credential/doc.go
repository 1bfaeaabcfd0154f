// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package credential provides the credential handle attached to a query
// descriptor, the Provider capability used to obtain fresh credentials,
// and a concurrency-safe Cache that replaces the cached handle wholesale
// when it expires.
//
// The Chain provider resolves credentials from the standard AWS chain
// (environment, shared config files, IMDS, SSO) via the aws-sdk-go-v2
// configuration loader. The Static provider holds fixed credentials and
// is mainly useful in tests.
package credential
