// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package queryx

import (
	"github.com/gogama/queryx/decode"
	"github.com/gogama/queryx/request"
)

// A Doer executes query descriptors. Doer is implemented by *Client,
// and is the interface to depend on when a component only needs to
// execute queries and should not care how.
type Doer interface {
	Do(q *request.Query) (*decode.Result, error)
}

// DefaultClient is the zero value Client used by the package-level Do
// function.
var DefaultClient = &Client{}

// Do executes a query using DefaultClient.
func Do(q *request.Query) (*decode.Result, error) {
	return DefaultClient.Do(q)
}
