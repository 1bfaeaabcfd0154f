// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package queryx

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// query execution starts.
	//
	// When Client fires BeforeExecutionStart, the execution is non-nil
	// but the only field that has been set is the query.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each send
	// during the query execution.
	//
	// When Client fires BeforeAttempt, the query has been prepared and
	// signed: its headers, body and credentials are in the exact state
	// that will go on the wire. Handlers that modify the query at this
	// point will invalidate its signature.
	BeforeAttempt
	// AfterAttempt identifies the event that occurs after each send is
	// concluded, regardless of whether it concluded successfully.
	//
	// When Client fires AfterAttempt, exactly one of the execution's
	// result or error fields is set. AfterAttempt fires before the
	// client decides whether to retry.
	AfterAttempt
	// AfterExecutionEnd identifies the event that occurs after the
	// query execution ends.
	//
	// When Client fires AfterExecutionEnd, the execution is in the same
	// state it was in after the final send (and last AfterAttempt
	// event) except that the end time is set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttempt",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// query execution by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttempt,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
