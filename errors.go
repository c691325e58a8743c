package netscope

import (
	"fmt"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables. Because they are usually wrapped with
// the name of the offending Group or Layer, they should be compared with errors.Cause().
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned or panicked.
var (
	ErrEmptyGroup      = Error{"Group has no children"}
	ErrTooManyInputs   = Error{"Too many inputs given, at most one is accepted"}
	ErrAlreadyRealized = Error{"Input has already been realized"}
	ErrInvalidBranch   = Error{"Branches can only be added to the root"}
	ErrGroupFrozen     = Error{"Group has already been invoked, its children can't be changed"}
	ErrNoInput         = Error{"No input given to operate on"}
	ErrNoBackend       = Error{"No backend has been set for the tree"}

	ErrRegisterNilReturn = Error{"Function return is nil"}
	ErrRegisterDuplicate = Error{"Name has already been registered"}
)

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// ConstructionError is given for malformed arguments while building a tree, such as a
// non-positive dimension or a value that can't be added to a Group.
type ConstructionError struct {
	Name   string
	Reason string
}

func (err ConstructionError) Error() string {
	return fmt.Sprintf("Can't construct %s: %s", err.Name, err.Reason)
}

// ShapeMismatchError is given when a value doesn't have the shape that was fixed for it earlier,
// either by a previous invocation or by a declared Input shape. Shapes are never coerced.
type ShapeMismatchError struct {
	Name     string
	Expected Shape
	Actual   Shape
}

func (err ShapeMismatchError) Error() string {
	return fmt.Sprintf("Shape mismatch in %s: expected %v, got %v", err.Name, []int(err.Expected), []int(err.Actual))
}

// UnknownInterconnectError is given when a Group has a Mode that is not one of the five
// recognized combination modes.
type UnknownInterconnectError struct {
	Mode Mode
}

func (err UnknownInterconnectError) Error() string {
	return fmt.Sprintf("Unknown interconnect type %v", err.Mode)
}
