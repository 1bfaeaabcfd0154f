// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package queryx

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gogama/queryx/fault"
	"github.com/gogama/queryx/transport"
)

func TestExecutionStatusCode(t *testing.T) {
	e := &Execution{}
	assert.Equal(t, 0, e.StatusCode())

	e.Exception = &fault.Exception{Kind: "Throttling", StatusCode: 400}
	assert.Equal(t, 400, e.StatusCode())

	e.Response = &transport.Response{StatusCode: 200}
	assert.Equal(t, 200, e.StatusCode())
}

func TestExecutionHeader(t *testing.T) {
	e := &Execution{}
	assert.Nil(t, e.Header())
	assert.Equal(t, "", e.Header().Get("Content-Type"))

	h := make(http.Header)
	h.Set("Content-Type", "text/xml")
	e.Response = &transport.Response{StatusCode: 200, Header: h}
	assert.Equal(t, "text/xml", e.Header().Get("Content-Type"))
}

func TestExecutionLifecycle(t *testing.T) {
	e := &Execution{}
	assert.False(t, e.Started())
	assert.False(t, e.Ended())
	assert.Equal(t, time.Duration(0), e.Duration())

	e.Start = time.Now().Add(-time.Second)
	assert.True(t, e.Started())
	assert.False(t, e.Ended())
	assert.Greater(t, e.Duration(), time.Duration(0))

	e.End = e.Start.Add(2 * time.Second)
	assert.True(t, e.Ended())
	assert.Equal(t, 2*time.Second, e.Duration())
}

type testKey struct{}

func TestExecutionValue(t *testing.T) {
	e := &Execution{}
	assert.Nil(t, e.Value(testKey{}))

	e.SetValue(testKey{}, "hello")
	assert.Equal(t, "hello", e.Value(testKey{}))

	e.SetValue(testKey{}, "goodbye")
	assert.Equal(t, "goodbye", e.Value(testKey{}))
}
