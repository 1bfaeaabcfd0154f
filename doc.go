// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package queryx executes Query-protocol calls against AWS-style cloud
services: it signs a request descriptor, sends it, recovers from
redirects and expired credentials, and normalizes the response by
content type.

Construct a descriptor with the builder in the request subpackage and
execute it with a Client:

	q, err := request.Build(nil, &request.Query{Region: "us-east-1"},
		"sdb", "2009-04-15", map[string]string{
			"Action":     "ListDomains",
			"MaxNumberOfDomains": "100",
		})
	if err != nil {
		...
	}
	client := &queryx.Client{
		Credentials: credential.NewCache(credential.NewChain("us-east-1")),
	}
	result, err := client.Do(q)

The zero value Client is valid: it sends with a default HTTP transport,
signs with Signature Version 4, and retries up to DefaultAttempts times
with jittered exponential backoff. The Action method bundles building
and executing for the common case.

A Client recovers from two error families without caller involvement.
A redirect response (301, 302 or 307 with a Location header) rewrites
the descriptor's URL and retries immediately. A credential-expiry error
(the ExpiredToken family) marks the descriptor's credential handle
expired, so the next attempt signs with a fresh handle from the
client's Provider. Both recoveries draw on the same attempt budget as
ordinary retries.

Subpackages supply the capability interfaces the Client composes:
endpoint (service to URL resolution), credential (credential handles,
providers, caching), request (descriptor and builder), sign (request
signing), transport (sending), fault (error classification), decode
(response normalization) and retry (inter-attempt backoff). Each
capability is an interface, so any stage can be replaced in tests or
extended by outside libraries.
*/
package queryx
