package chromepdf

import (
	"encoding/json"
	"fmt"
)

// Opt holds a value that may be unset. The zero Opt is unset, which is
// distinct from a set zero value such as false, 0 or "".
type Opt[T any] struct {
	value T
	set   bool
}

// Some returns a set Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// None returns an unset Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the held value and whether it is set.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is held.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// OrElse returns the held value, or def when unset.
func (o Opt[T]) OrElse(def T) T {
	if !o.set {
		return def
	}
	return o.value
}

// IsZero reports whether o is unset, so that `json:",omitzero"` drops it.
func (o Opt[T]) IsZero() bool {
	return !o.set
}

// MarshalJSON encodes the held value, or null when unset.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o Opt[T]) String() string {
	if !o.set {
		return "<unset>"
	}
	return fmt.Sprint(o.value)
}
