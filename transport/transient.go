// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"syscall"
)

// A Transience is the transience category of an error, as reported by
// Categorize. Transience feeds status-less error classification: a
// timeout or connection-level fault is named by its category, while
// NotTransient faults surface under a generic kind.
type Transience int

const (
	// NotTransient indicates any error without a recognized transient
	// cause.
	NotTransient Transience = iota
	// Timeout indicates a client-side timeout: the error, or one of
	// its wrapped causes, has a Timeout() method that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (POSIX ECONNREFUSED). This can happen while a service on the
	// remote host is starting or restarting.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// TCP connection (POSIX ECONNRESET).
	ConnReset
)

// Categorize returns the transience category of the given error,
// examining wrapped causes as well as the error itself. A nil error
// categorizes as NotTransient.
//
// Categorize never consults a Temporary() method, as its semantics are
// not well defined.
func Categorize(err error) Transience {
	if err == nil {
		return NotTransient
	}

	var ht hasTimeout
	if errors.As(err, &ht) && ht.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	return NotTransient
}

type hasTimeout interface {
	Timeout() bool
}
