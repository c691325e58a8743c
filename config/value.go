package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// guardedValue wraps the typed pflag.Value of a setting, applying the Config's rules before every
// change
type guardedValue struct {
	inner pflag.Value
	e     *entry
}

func (v *guardedValue) String() string {
	return v.inner.String()
}

func (v *guardedValue) Type() string {
	return v.inner.Type()
}

func (v *guardedValue) Set(s string) error {
	f := v.e.flag

	if v.e.frozen {
		// compare in the value's own form, so that "1" and "1.0" are the same float
		cur := v.inner.String()
		if err := v.inner.Set(s); err != nil {
			return errors.Wrapf(err, "Invalid value %q", s)
		}

		if next := v.inner.String(); next != cur {
			v.inner.Set(cur)
			return errors.Errorf("Config %s has been frozen to %s", f.Name, cur)
		}
		return nil
	}

	if f.Enum != nil {
		var ok bool
		for _, e := range f.Enum {
			if s == e {
				ok = true
				break
			}
		}

		if !ok {
			return errors.Errorf("Can't set %q for enum config %s, must be one of %v", s, f.Name, f.Enum)
		}
	}

	if f.Validate != nil {
		if err := f.Validate(s); err != nil {
			return errors.Wrapf(err, "Invalid value for config %s", f.Name)
		}
	}

	if err := v.inner.Set(s); err != nil {
		return errors.Wrapf(err, "Invalid value %q", s)
	}

	if f.Key == KeyWhenSet {
		v.e.isKey = true
	}

	return nil
}
