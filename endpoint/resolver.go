// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

import (
	"errors"
	"fmt"
	"strings"
)

// A Resolver maps a service identifier and a region to the base URL of
// the service endpoint. The returned base URL must be absolute and must
// not end in a slash, as the request builder concatenates the resource
// path directly onto it.
//
// Implementations of Resolver must be safe for concurrent use by
// multiple goroutines.
type Resolver interface {
	Resolve(service, region string) (string, error)
}

// The ResolverFunc type is an adapter to allow the use of ordinary
// functions as endpoint resolvers. If f is a function with the
// appropriate signature, ResolverFunc(f) is a Resolver that calls f.
type ResolverFunc func(service, region string) (string, error)

// Resolve calls f(service, region).
func (f ResolverFunc) Resolve(service, region string) (string, error) {
	return f(service, region)
}

// Default resolves endpoints using the AWS naming convention: the base
// URL for service s in region r is https://s.r.amazonaws.com, and an
// empty region resolves to the global endpoint https://s.amazonaws.com.
var Default Resolver = ResolverFunc(defaultResolve)

func defaultResolve(service, region string) (string, error) {
	if service == "" {
		return "", errors.New("queryx/endpoint: empty service")
	}
	if region == "" {
		return fmt.Sprintf("https://%s.amazonaws.com", service), nil
	}
	return fmt.Sprintf("https://%s.%s.amazonaws.com", service, region), nil
}

// Fixed constructs a Resolver that resolves every service and region
// to the same base URL. A trailing slash on baseURL is removed.
//
// Use Fixed to target a single known endpoint, for example a local
// service emulator or a private gateway.
func Fixed(baseURL string) Resolver {
	base := strings.TrimSuffix(baseURL, "/")
	return ResolverFunc(func(string, string) (string, error) {
		if base == "" {
			return "", errors.New("queryx/endpoint: empty base URL")
		}
		return base, nil
	})
}
