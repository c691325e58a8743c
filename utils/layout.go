package utils

// Layout maps between the points of an n-dimensional array and their indexes in a flat,
// row-major slice: the last dimension varies fastest.
//
// The fields are public so that Layouts can be inspected, but they should not be altered once
// the Layout has been made.
type Layout struct {
	// the size of each dimension
	Dims []int

	// the distance in the flat slice between neighbours along each dimension.
	// Strides[len-1] = 1
	Strides []int
}

// NewLayout returns the Layout of an array with the given dimensions, which must all be positive.
// A Layout with no dimensions describes a single value.
func NewLayout(dims []int) *Layout {
	l := &Layout{
		Dims:    append([]int{}, dims...),
		Strides: make([]int, len(dims)),
	}

	stride := 1
	for i := len(dims) - 1; i >= 0; i-- {
		l.Strides[i] = stride
		stride *= dims[i]
	}

	return l
}

// Size returns the number of values in the array
func (l *Layout) Size() int {
	if len(l.Dims) == 0 {
		return 1
	}

	return l.Strides[0] * l.Dims[0]
}

// Index returns the flat index of the point, which is assumed to be in bounds
func (l *Layout) Index(point []int) int {
	var index int
	for i, p := range point {
		index += p * l.Strides[i]
	}

	return index
}

// Point returns the point at the flat index, which is assumed to be in bounds
func (l *Layout) Point(index int) []int {
	p := make([]int, len(l.Dims))
	for i := range p {
		p[i] = index / l.Strides[i]
		index %= l.Strides[i]
	}

	return p
}

// Outer returns the number of values in the dimensions before axis, and Inner the number of
// values in the dimensions after it. Together with Dims[axis], they split the array into
// Outer blocks of Dims[axis] runs, each Inner values long.
func (l *Layout) Outer(axis int) int {
	n := 1
	for _, d := range l.Dims[:axis] {
		n *= d
	}

	return n
}

// Inner returns the number of values in the dimensions after axis; see Outer.
func (l *Layout) Inner(axis int) int {
	return l.Strides[axis]
}
