// Package extract turns loosely typed WMI property values into typed record
// fields. A Field describes one key: its target type, whether it must be
// present, the value used when it is absent and an optional enum decoding.
//
// Extraction never panics. Every outcome is either a decoded value, the
// field's declared default, or a *FieldError telling the caller to discard
// the whole record.
package extract

import (
	"errors"
	"fmt"

	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

var (
	// ErrMissing is wrapped by FieldError when a required key is absent.
	ErrMissing = errors.New("required field missing")

	// ErrConvert is wrapped by FieldError when a present value cannot be
	// converted to the field's type.
	ErrConvert = errors.New("field conversion failed")
)

// FieldError reports which key aborted a record.
type FieldError struct {
	Key string
	Raw any
	Err error
}

func (e *FieldError) Error() string {
	if e.Raw == nil {
		return fmt.Sprintf("field %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("field %s (raw %v): %v", e.Key, e.Raw, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Field describes how one property becomes a value of type T. Fields are
// built once per collector and are safe to share.
type Field[T any] struct {
	// Key is the WMI property name.
	Key string
	// Required makes an absent key abort the record.
	Required bool
	// Lenient returns Default when a present value fails conversion.
	Lenient bool
	// Default is returned for absent optional keys.
	Default T

	convert func(raw any) (T, error)
	post    func(T) T
}

// New declares a field with a custom conversion.
func New[T any](key string, def T, convert func(raw any) (T, error)) Field[T] {
	return Field[T]{Key: key, Default: def, convert: convert}
}

// Req returns a copy of f that must be present.
func (f Field[T]) Req() Field[T] {
	f.Required = true
	return f
}

// Or returns a copy of f with a different default.
func (f Field[T]) Or(def T) Field[T] {
	f.Default = def
	return f
}

// Tolerant returns a copy of f that falls back to its default when the
// present value cannot be converted.
func (f Field[T]) Tolerant() Field[T] {
	f.Lenient = true
	return f
}

// Then returns a copy of f that passes successfully converted values
// through fn.
func (f Field[T]) Then(fn func(T) T) Field[T] {
	f.post = fn
	return f
}

// String declares an optional string field defaulting to "".
func String(key string) Field[string] {
	return New(key, "", ToString)
}

// Int declares an optional 32-bit integer field defaulting to -1.
func Int(key string) Field[int] {
	return New(key, -1, ToInt)
}

// Int64 declares an optional 64-bit integer field defaulting to -1.
func Int64(key string) Field[int64] {
	return New(key, int64(-1), ToInt64)
}

// Bool declares a nullable boolean: nil when absent or unparseable.
func Bool(key string) Field[*bool] {
	return New(key, (*bool)(nil), func(raw any) (*bool, error) {
		b, err := ToBool(raw)
		if err != nil {
			return nil, err
		}
		return &b, nil
	}).Tolerant()
}

// Enum declares an integer-coded field decoded through lookup. Codes the
// lookup does not know decode to unmapped rather than failing.
func Enum[E ~int](key string, lookup func(int) (E, bool), unmapped E) Field[E] {
	return New(key, unmapped, func(raw any) (E, error) {
		n, err := ToInt(raw)
		if err != nil {
			return unmapped, err
		}
		if e, ok := lookup(n); ok {
			return e, nil
		}
		return unmapped, nil
	})
}

// Get extracts f from bag.
func Get[T any](bag wmiquery.PropertyBag, f Field[T]) (T, error) {
	raw, ok := bag.Get(f.Key)
	if !ok {
		if f.Required {
			return f.Default, &FieldError{Key: f.Key, Err: ErrMissing}
		}
		return f.Default, nil
	}

	v, err := f.convert(raw)
	if err != nil {
		if f.Lenient {
			return f.Default, nil
		}
		return f.Default, &FieldError{Key: f.Key, Raw: raw, Err: fmt.Errorf("%w: %w", ErrConvert, err)}
	}

	if f.post != nil {
		v = f.post(v)
	}
	return v, nil
}

// Decoder extracts many fields from one bag and keeps the first error, so
// record decoders can be written as a flat list of assignments followed by
// a single Err check.
type Decoder struct {
	bag wmiquery.PropertyBag
	err error
}

// NewDecoder returns a Decoder reading from bag.
func NewDecoder(bag wmiquery.PropertyBag) *Decoder {
	return &Decoder{bag: bag}
}

// Err returns the first extraction error, if any.
func (d *Decoder) Err() error { return d.err }

// Value extracts f. After the first failure it returns f's default without
// reading the bag.
func Value[T any](d *Decoder, f Field[T]) T {
	if d.err != nil {
		return f.Default
	}
	v, err := Get(d.bag, f)
	if err != nil {
		d.err = err
	}
	return v
}
