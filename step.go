// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitstep

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Invalid input errors. Generators never return them directly: they are
// carried, wrapped with details, by a single error step. Use errors.Cause to
// compare.
//
var (
	ErrDivideByZero  = errors.New("division by zero")
	ErrOutOfRange    = errors.New("value out of range")
	ErrInvalidNumber = errors.New("invalid number")
	ErrWidth         = errors.New("unsupported bit width")
)

// Info is the header common to all trace steps.
//
type Info struct {
	// Short label.
	Title string
	// Prose explanation of what happens at this step.
	Desc string
	// Formula or operand detail.
	Detail string
	// Tags naming the active sub-units. Viewers select on them.
	Active []string
	// Final is set on the terminal step of a trace.
	Final bool
	// Err is non nil only for the invalid input sentinel step. Other fields of
	// an error step must not be trusted.
	Err error
}

// Header returns i. It allows generic code to access the header of any step
// type embedding Info.
//
func (i Info) Header() Info { return i }

// IsError returns true if i is an invalid input sentinel.
//
func (i Info) IsError() bool { return i.Err != nil }

// Stepper is implemented by all step types.
//
type Stepper interface {
	Header() Info
}

// Active is a convenience function that returns a fresh tag slice.
//
func Active(tags ...string) []string {
	return slices.Clone(tags)
}

// ErrorInfo builds the header of an invalid input step.
//
func ErrorInfo(title string, err error) Info {
	return Info{
		Title:  title,
		Desc:   err.Error(),
		Active: []string{"error"},
		Err:    err,
	}
}

// Final returns the last step in steps and true if it is marked final.
//
func Final[S Stepper](steps []S) (S, bool) {
	var zero S
	if len(steps) == 0 {
		return zero, false
	}
	last := steps[len(steps)-1]
	return last, last.Header().Final
}

// Failed returns the error carried by a single step error trace, or nil.
//
func Failed[S Stepper](steps []S) error {
	if len(steps) != 1 {
		return nil
	}
	return steps[0].Header().Err
}
