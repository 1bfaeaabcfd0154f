// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"testing"

	"github.com/gogama/queryx/endpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		q, err := Build(nil, &Query{Region: "us-east-1"}, "sdb", "2009-04-15", map[string]string{
			"Action": "ListDomains",
		})
		require.NoError(t, err)
		assert.Equal(t, "POST", q.Method)
		assert.Equal(t, "sdb", q.Service)
		assert.Equal(t, "/", q.Resource)
		assert.Equal(t, "https://sdb.us-east-1.amazonaws.com/", q.URL.String())
		assert.Equal(t, ContentType, q.Header.Get("Content-Type"))
		assert.Equal(t, "2009-04-15", q.Params["Version"])
		assert.Equal(t, "Action=ListDomains&Version=2009-04-15", string(q.Body))
	})
	t.Run("Nil seed", func(t *testing.T) {
		q, err := Build(nil, nil, "iam", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "https://iam.amazonaws.com/", q.URL.String())
		assert.Equal(t, "/", q.Resource)
		assert.Empty(t, q.Body)
	})
	t.Run("Version overwrites caller value", func(t *testing.T) {
		q, err := Build(nil, nil, "sdb", "2009-04-15", map[string]string{
			"Version": "1999-01-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "2009-04-15", q.Params["Version"])
	})
	t.Run("Empty version leaves caller value", func(t *testing.T) {
		q, err := Build(nil, nil, "sdb", "", map[string]string{
			"Version": "1999-01-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "1999-01-01", q.Params["Version"])
	})
	t.Run("Content-Type not overridable via seed", func(t *testing.T) {
		seed := &Query{Header: http.Header{"Content-Type": []string{"text/plain"}}}
		q, err := Build(nil, seed, "sdb", "", nil)
		require.NoError(t, err)
		assert.Equal(t, ContentType, q.Header.Get("Content-Type"))
		// The seed's header map is cloned, not aliased.
		assert.Equal(t, "text/plain", seed.Header.Get("Content-Type"))
	})
	t.Run("Deterministic body", func(t *testing.T) {
		params := map[string]string{
			"Zebra":  "1",
			"Action": "PutAttributes",
			"Alpha":  "two words",
		}
		a, err := Build(nil, nil, "sdb", "2009-04-15", params)
		require.NoError(t, err)
		b, err := Build(nil, nil, "sdb", "2009-04-15", params)
		require.NoError(t, err)
		assert.Equal(t, a.Body, b.Body)
		assert.Equal(t, "Action=PutAttributes&Alpha=two+words&Version=2009-04-15&Zebra=1", string(a.Body))
	})
	t.Run("Seed resource", func(t *testing.T) {
		q, err := Build(nil, &Query{Region: "us-west-2", Resource: "/v1"}, "svc", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "/v1", q.Resource)
		assert.Equal(t, "https://svc.us-west-2.amazonaws.com/v1", q.URL.String())
	})
	t.Run("Seed URL aligns resource", func(t *testing.T) {
		seed, err := New("POST", "http://localhost:8000/inner")
		require.NoError(t, err)
		q, err := Build(nil, seed, "svc", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "/inner", q.Resource)
		assert.Equal(t, "http://localhost:8000/inner", q.URL.String())
	})
	t.Run("Custom resolver", func(t *testing.T) {
		q, err := Build(endpoint.Fixed("http://localhost:8000"), nil, "svc", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/", q.URL.String())
	})
	t.Run("Empty service", func(t *testing.T) {
		_, err := Build(nil, nil, "", "", nil)
		var ipe *InvalidParameterError
		require.ErrorAs(t, err, &ipe)
		assert.Equal(t, "service", ipe.Name)
	})
	t.Run("Empty parameter key", func(t *testing.T) {
		_, err := Build(nil, nil, "sdb", "", map[string]string{"": "x"})
		var ipe *InvalidParameterError
		require.ErrorAs(t, err, &ipe)
	})
	t.Run("Nil context", func(t *testing.T) {
		_, err := BuildWithContext(nil, nil, nil, "sdb", "", nil) //nolint:staticcheck
		assert.EqualError(t, err, nilCtxMsg)
	})
}

func TestNew(t *testing.T) {
	t.Run("Empty method means GET", func(t *testing.T) {
		q, err := New("", "https://example.com/thing")
		require.NoError(t, err)
		assert.Equal(t, "GET", q.Method)
		assert.Equal(t, "/thing", q.Resource)
	})
	t.Run("Invalid method", func(t *testing.T) {
		_, err := New("YIKES\n", "https://example.com")
		assert.Error(t, err)
	})
	t.Run("Empty path defaults resource", func(t *testing.T) {
		q, err := New("GET", "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "/", q.Resource)
	})
	t.Run("Empty port removed", func(t *testing.T) {
		q, err := New("GET", "https://example.com:/x")
		require.NoError(t, err)
		assert.Equal(t, "example.com", q.URL.Host)
	})
}

func TestSetParam(t *testing.T) {
	q, err := Build(nil, nil, "sdb", "2009-04-15", map[string]string{"Action": "ListDomains"})
	require.NoError(t, err)
	q.SetParam("MaxNumberOfDomains", "10")
	assert.Equal(t, "Action=ListDomains&MaxNumberOfDomains=10&Version=2009-04-15", string(q.Body))

	// Direct edits require an explicit re-encode.
	q.Params["Action"] = "CreateDomain"
	q.EncodeParams()
	assert.Equal(t, "Action=CreateDomain&MaxNumberOfDomains=10&Version=2009-04-15", string(q.Body))
}

func TestSetParamNilMap(t *testing.T) {
	q := &Query{}
	q.SetParam("Action", "ListDomains")
	assert.Equal(t, "Action=ListDomains", string(q.Body))
	assert.Equal(t, "ListDomains", q.Action())
	assert.Equal(t, "ListDomains", q.Param("Action"))
	assert.Equal(t, "", q.Param("Missing"))
}

func TestRedirect(t *testing.T) {
	t.Run("Absolute", func(t *testing.T) {
		q, err := Build(nil, &Query{Region: "us-east-1"}, "sdb", "", nil)
		require.NoError(t, err)
		require.NoError(t, q.Redirect("https://sdb.us-west-2.amazonaws.com/other"))
		assert.Equal(t, "https://sdb.us-west-2.amazonaws.com/other", q.URL.String())
		assert.Equal(t, "/other", q.Resource)
	})
	t.Run("Absolute without path", func(t *testing.T) {
		q, err := Build(nil, nil, "sdb", "", nil)
		require.NoError(t, err)
		require.NoError(t, q.Redirect("https://x"))
		assert.Equal(t, "/", q.Resource)
	})
	t.Run("Relative", func(t *testing.T) {
		q, err := Build(nil, &Query{Region: "us-east-1"}, "sdb", "", nil)
		require.NoError(t, err)
		require.NoError(t, q.Redirect("/moved"))
		assert.Equal(t, "https://sdb.us-east-1.amazonaws.com/moved", q.URL.String())
		assert.Equal(t, "/moved", q.Resource)
	})
	t.Run("Relative without base", func(t *testing.T) {
		q := &Query{}
		assert.Error(t, q.Redirect("/moved"))
	})
}

func TestContext(t *testing.T) {
	q := &Query{}
	assert.Same(t, context.Background(), q.Context())

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	q2 := q.WithContext(ctx)
	assert.NotSame(t, q, q2)
	assert.Same(t, ctx, q2.Context())
	assert.Same(t, context.Background(), q.Context())

	assert.Panics(t, func() { q.WithContext(nil) }) //nolint:staticcheck
}

func TestToRequest(t *testing.T) {
	q, err := Build(nil, &Query{Region: "us-east-1"}, "sdb", "2009-04-15", map[string]string{"Action": "ListDomains"})
	require.NoError(t, err)
	q.Header.Set("Host", q.URL.Host)

	r := q.ToRequest(context.Background())
	assert.Equal(t, "POST", r.Method)
	assert.Equal(t, q.URL, r.URL)
	assert.Equal(t, "sdb.us-east-1.amazonaws.com", r.Host)
	assert.Equal(t, int64(len(q.Body)), r.ContentLength)

	// Header map is shared so signing through the request mutates the
	// descriptor.
	r.Header.Set("Authorization", "AWS4-HMAC-SHA256 ...")
	assert.Equal(t, "AWS4-HMAC-SHA256 ...", q.Header.Get("Authorization"))

	body, err := r.GetBody()
	require.NoError(t, err)
	b := make([]byte, len(q.Body))
	_, err = body.Read(b)
	require.NoError(t, err)
	assert.Equal(t, q.Body, b)
}
