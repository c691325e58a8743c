package netscope

import (
	"github.com/pkg/errors"
)

// InputOption sets an optional property of an Input
type InputOption func(*Input) error

// GroupShape sets the leading dimensions of the Input, which come before the sample shape
func GroupShape(shape ...int) InputOption {
	return func(in *Input) error {
		return in.SetGroupShape(shape)
	}
}

// InputDType sets the element type of the Input. Without it, the Input takes the dtype of the
// tree it is added to.
func InputDType(d DType) InputOption {
	return func(in *Input) error {
		if d != Float32 && d != Float64 {
			return ConstructionError{in.name, "unknown dtype " + d.String()}
		}

		in.dtype = d
		return nil
	}
}

// InputName sets the name that the Input's placeholder is declared with. The default is "Input".
func InputName(name string) InputOption {
	return func(in *Input) error {
		if name == "" {
			return ConstructionError{"Input", "name can't be empty"}
		}

		in.name = name
		return nil
	}
}

// NewInput returns a new Input with the given per-example shape. A nil sample shape means that the
// shape is left to whatever is fed to the placeholder. Every dimension of the sample shape must
// be positive.
func NewInput(sample Shape, opts ...InputOption) (*Input, error) {
	in := &Input{name: "Input"}
	if err := checkDims(in.name, "sample", sample); err != nil {
		return nil, err
	}
	in.sampleShape = sample.Copy()

	for _, o := range opts {
		if err := o(in); err != nil {
			return nil, err
		}
	}

	return in, nil
}

// SetGroupShape sets the leading dimensions of the Input. A nil shape leaves a single unknown
// leading dimension. The group shape can't be changed after the Input is realized.
func (in *Input) SetGroupShape(shape Shape) error {
	if in.handle != nil {
		return errors.Wrapf(ErrAlreadyRealized, "Can't set group shape of %q", in.name)
	} else if err := checkDims(in.name, "group", shape); err != nil {
		return err
	}

	in.groupShape = shape.Copy()
	return nil
}

// Name returns the name of the Input's placeholder
func (in *Input) Name() string {
	return in.name
}

// SampleShape returns the per-example shape of the Input
func (in *Input) SampleShape() Shape {
	return in.sampleShape.Copy()
}

// GroupShape returns the leading dimensions of the Input, which may be nil
func (in *Input) GroupShape() Shape {
	return in.groupShape.Copy()
}

// DType returns the element type of the Input. It is zero until the Input has been added to a
// Group, unless it was set explicitly.
func (in *Input) DType() DType {
	return in.dtype
}

// InputShape returns the full shape of the Input: the group shape followed by the sample shape.
// Without a group shape, the leading dimension is Unknown. Without a sample shape, InputShape
// returns nil.
func (in *Input) InputShape() Shape {
	if in.sampleShape == nil {
		return nil
	} else if in.groupShape == nil {
		return append(Shape{Unknown}, in.sampleShape...)
	}

	return append(in.groupShape.Copy(), in.sampleShape...)
}

// Realized returns whether or not Realize has been called successfully
func (in *Input) Realized() bool {
	return in.handle != nil
}

// Handle returns the realized placeholder of the Input, or nil if it hasn't been realized
func (in *Input) Handle() Value {
	return in.handle
}

// SingleStep returns the realized placeholder with all of its leading dimensions folded into one,
// for use by sequence models that process one step at a time. It is nil until the Input is
// realized, or if there is no sample shape.
func (in *Input) SingleStep() Value {
	return in.singleStep
}

// Realize declares the Input's placeholder with the Backend and returns it. Realize can only be
// called once; calling it again gives ErrAlreadyRealized.
func (in *Input) Realize(b Backend) (Value, error) {
	if in.handle != nil {
		return nil, errors.Wrapf(ErrAlreadyRealized, "Can't realize %q", in.name)
	} else if b == nil {
		return nil, errors.Wrapf(ErrNoBackend, "Can't realize %q", in.name)
	}

	dtype := in.dtype
	if dtype == 0 {
		dtype = DefaultDType
	}

	h, err := b.Placeholder(in.name, in.InputShape(), dtype)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't declare placeholder %q", in.name)
	}

	var single Value
	if in.sampleShape != nil {
		if single, err = b.Reshape(h, append(Shape{Unknown}, in.sampleShape...)); err != nil {
			return nil, errors.Wrapf(err, "Couldn't make single-step view of %q", in.name)
		}
	}

	in.handle = h
	in.singleStep = single
	in.dtype = dtype
	return h, nil
}
