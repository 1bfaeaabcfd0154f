// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package queryx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerGroupPushBackNil(t *testing.T) {
	g := &HandlerGroup{}
	assert.Panics(t, func() {
		g.PushBack(BeforeAttempt, nil)
	})
}

func TestHandlerGroupRunOrder(t *testing.T) {
	var order []int
	g := &HandlerGroup{}
	for i := 0; i < 3; i++ {
		i := i
		g.PushBack(AfterAttempt, HandlerFunc(func(_ Event, _ *Execution) {
			order = append(order, i)
		}))
	}

	g.run(AfterAttempt, &Execution{})

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestHandlerGroupRunOtherEvent(t *testing.T) {
	called := false
	g := &HandlerGroup{}
	g.PushBack(BeforeAttempt, HandlerFunc(func(_ Event, _ *Execution) {
		called = true
	}))

	g.run(AfterAttempt, &Execution{})

	assert.False(t, called)
}

func TestHandlerGroupRunEmpty(t *testing.T) {
	g := &HandlerGroup{}
	assert.NotPanics(t, func() {
		g.run(AfterExecutionEnd, &Execution{})
	})
}

func TestHandlerFunc(t *testing.T) {
	var gotEvt Event
	var gotExec *Execution
	f := HandlerFunc(func(evt Event, e *Execution) {
		gotEvt = evt
		gotExec = e
	})
	e := &Execution{}

	f.Handle(BeforeExecutionStart, e)

	assert.Equal(t, BeforeExecutionStart, gotEvt)
	assert.Same(t, e, gotExec)
}
