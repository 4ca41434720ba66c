// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package tracetest provides utility functions for testing trace generators.
//
package tracetest

import (
	"testing"

	"github.com/db47h/bitstep"
	"github.com/pkg/errors"
)

// Check verifies the shape of a successful trace: it is not empty, contains
// no error step, every step has a title and only the last step is final.
//
func Check[S bitstep.Stepper](t testing.TB, steps []S) {
	t.Helper()

	if len(steps) == 0 {
		t.Fatal("empty trace")
	}
	for i, s := range steps {
		h := s.Header()
		if h.Err != nil {
			t.Fatalf("step %d: unexpected error step: %v", i, h.Err)
		}
		if h.Title == "" {
			t.Errorf("step %d: empty title", i)
		}
		if last := i == len(steps)-1; h.Final != last {
			t.Errorf("step %d: Final = %v, expected %v", i, h.Final, last)
		}
	}
}

// CheckError verifies that steps is a single error step whose cause is err.
//
func CheckError[S bitstep.Stepper](t testing.TB, steps []S, err error) {
	t.Helper()

	if len(steps) != 1 {
		t.Fatalf("expected a single error step, got %d steps", len(steps))
	}
	h := steps[0].Header()
	if h.Err == nil {
		t.Fatal("expected an error step")
	}
	if h.Final {
		t.Error("error step marked final")
	}
	if c := errors.Cause(h.Err); c != err {
		t.Fatalf("expected error %v, got %v", err, h.Err)
	}
}
