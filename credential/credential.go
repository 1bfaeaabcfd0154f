// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package credential

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Credentials is the opaque credential handle owned by a query
// descriptor for the duration of one call.
//
// A Credentials value is never partially mutated once issued: when it
// expires, the whole handle is replaced by a fresh one obtained from a
// Provider. The only post-construction state change is the expired
// flag, which is atomic and monotonic (once expired, always expired).
type Credentials struct {
	// AccessKeyID is the public component of the credential pair.
	AccessKeyID string

	// SecretAccessKey is the secret component of the credential pair.
	SecretAccessKey string

	// SessionToken is the session token accompanying temporary
	// credentials. It is empty for long-lived credentials.
	SessionToken string

	// Expires is the known expiry time of the credentials. The zero
	// time means no known expiry.
	Expires time.Time

	expired atomic.Bool
}

// Expire marks the credentials expired. The orchestrator calls Expire
// when a service rejects a request with a credential-expiry error, so
// that the next attempt obtains a fresh handle.
func (c *Credentials) Expire() {
	c.expired.Store(true)
}

// Expired reports whether the credentials have been marked expired or
// have passed their known expiry time.
func (c *Credentials) Expired() bool {
	if c.expired.Load() {
		return true
	}
	return !c.Expires.IsZero() && time.Now().After(c.Expires)
}

// A Provider obtains a fresh credential handle.
//
// Implementations of Provider must be safe for concurrent use by
// multiple goroutines. Retrieve must return a newly issued handle, or
// a cached one that is not expired; it must never return a handle that
// already reports Expired.
type Provider interface {
	Retrieve(ctx context.Context) (*Credentials, error)
}

// The ProviderFunc type is an adapter to allow the use of ordinary
// functions as credential providers.
type ProviderFunc func(ctx context.Context) (*Credentials, error)

// Retrieve calls f(ctx).
func (f ProviderFunc) Retrieve(ctx context.Context) (*Credentials, error) {
	return f(ctx)
}

// Static constructs a Provider that issues the same fixed credentials
// on every call. Each Retrieve returns a distinct handle, so expiring
// one call's handle does not poison another's.
func Static(accessKeyID, secretAccessKey, sessionToken string) Provider {
	return ProviderFunc(func(context.Context) (*Credentials, error) {
		return &Credentials{
			AccessKeyID:     accessKeyID,
			SecretAccessKey: secretAccessKey,
			SessionToken:    sessionToken,
		}, nil
	})
}

// A Cache wraps a Provider and shares one credential handle across
// calls until it expires.
//
// Cache is safe for concurrent use. Readers always observe either the
// previous handle or the replacement, never a half-updated one, because
// replacement swaps the handle pointer wholesale under the write lock.
type Cache struct {
	provider Provider
	lock     sync.RWMutex
	creds    *Credentials
}

// NewCache constructs a Cache over the given provider.
func NewCache(p Provider) *Cache {
	if p == nil {
		panic("queryx/credential: nil provider")
	}
	return &Cache{provider: p}
}

// Retrieve returns the cached credential handle, refreshing it from the
// underlying provider if there is none yet or the cached handle has
// expired.
func (c *Cache) Retrieve(ctx context.Context) (*Credentials, error) {
	c.lock.RLock()
	creds := c.creds
	c.lock.RUnlock()
	if creds != nil && !creds.Expired() {
		return creds, nil
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	if c.creds != nil && !c.creds.Expired() {
		return c.creds, nil
	}
	creds, err := c.provider.Retrieve(ctx)
	if err != nil {
		return nil, err
	}
	c.creds = creds
	return creds, nil
}
