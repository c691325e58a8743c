package netscope

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Shape is the list of dimensions of a Value. A dimension of -1 is unknown, as is the case for
// the leading dimension of an Input with no group shape.
type Shape []int

// Unknown marks a dimension whose size is not fixed until a value is realized.
const Unknown int = -1

// Copy returns a copy of the Shape. The copy of a nil Shape is nil.
func (s Shape) Copy() Shape {
	if s == nil {
		return nil
	}

	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// Size returns the number of values a Shape describes. Size returns -1 if any dimension is
// unknown. The size of an empty (scalar) Shape is 1.
func (s Shape) Size() int {
	size := 1
	for _, d := range s {
		if d < 0 {
			return -1
		}
		size *= d
	}

	return size
}

// IsKnown returns whether or not every dimension of the Shape is known
func (s Shape) IsKnown() bool {
	return s.Size() >= 0
}

// Compatible returns whether or not the two Shapes could describe the same value. Unknown
// dimensions in either Shape match any size. A nil Shape (unknown rank) is compatible with
// everything.
func (s Shape) Compatible(other Shape) bool {
	if s == nil || other == nil {
		return true
	}

	if len(s) != len(other) {
		return false
	}

	for i := range s {
		if s[i] >= 0 && other[i] >= 0 && s[i] != other[i] {
			return false
		}
	}

	return true
}

// Equal returns whether or not both Shapes have exactly the same dimensions
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}

	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}

	return true
}

// String renders the Shape as it appears in structure strings. A single dimension is printed
// bare ("10"), anything else in brackets ("[28,28]"). Unknown dimensions are printed as "?".
func (s Shape) String() string {
	if s == nil {
		return "None"
	}

	dims := make([]string, len(s))
	for i, d := range s {
		if d < 0 {
			dims[i] = "?"
		} else {
			dims[i] = strconv.Itoa(d)
		}
	}

	if len(dims) == 1 {
		return dims[0]
	}

	return "[" + strings.Join(dims, ",") + "]"
}

// checkDims returns a ConstructionError if any of the dimensions are not positive
func checkDims(name, what string, s Shape) error {
	for i, d := range s {
		if d < 1 {
			return ConstructionError{name, fmt.Sprintf("%s dimension %d is not positive (%d)", what, i, d)}
		}
	}

	return nil
}

// DType is the element type of the values produced by a Backend
type DType int8

const (
	// the zero value is left unset so that Inputs can inherit the dtype of their tree
	Float32 DType = iota + 1
	Float64
)

// DefaultDType is used by trees that are not given one explicitly
const DefaultDType = Float32

func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "DType(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDType returns the DType with the given name: "float32" or "float64".
func ParseDType(s string) (DType, error) {
	switch s {
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	default:
		return 0, errors.Errorf("Unknown dtype %q", s)
	}
}
