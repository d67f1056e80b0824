package binfield

import "fmt"

// Spec is the uniform mechanism by which a field attribute (length, count,
// condition, switch key, default, override) may be a literal, a sibling
// field name, or a callable taking the context (or no arguments at all).
// It corresponds to the tagged variant
// FieldSpec<T> ∈ {Literal(T), SiblingRef(name), Fn0(() → T), Fn1(Context → T)}
// described by the design notes: a single Resolve(ctx) gives every variant a
// uniform entry point, so fields never need to type-switch on how an
// attribute was declared.
type Spec[T any] struct {
	hasLit bool
	lit    T
	ref    string
	fn0    func() T
	fn1    func(*Context) T
}

// Lit wraps a literal value.
func Lit[T any](v T) Spec[T] { return Spec[T]{hasLit: true, lit: v} }

// Ref declares a reference to a sibling field by name.
func Ref[T any](name string) Spec[T] { return Spec[T]{ref: name} }

// Func declares a callable that is invoked with the current context.
func Func[T any](f func(*Context) T) Spec[T] { return Spec[T]{fn1: f} }

// Func0 declares a callable that takes no arguments.
func Func0[T any](f func() T) Spec[T] { return Spec[T]{fn0: f} }

// IsZero reports whether the spec was left unset (the attribute is absent).
func (s Spec[T]) IsZero() bool {
	return !s.hasLit && s.ref == "" && s.fn0 == nil && s.fn1 == nil
}

// RefName returns the sibling field name this spec references, if it is a
// SiblingRef variant.
func (s Spec[T]) RefName() (string, bool) {
	return s.ref, s.ref != ""
}

// Resolve evaluates the spec against ctx: literals are returned as-is,
// sibling names are looked up in ctx, and callables are invoked.
func (s Spec[T]) Resolve(ctx *Context) (T, error) {
	var zero T
	switch {
	case s.hasLit:
		return s.lit, nil
	case s.ref != "":
		v, err := ctx.Get(s.ref)
		if err != nil {
			return zero, err
		}
		t, err := coerce[T](v)
		if err != nil {
			return zero, fmt.Errorf("%w: sibling %q: %v", ErrConfig, s.ref, err)
		}
		return t, nil
	case s.fn1 != nil:
		return s.fn1(ctx), nil
	case s.fn0 != nil:
		return s.fn0(), nil
	default:
		return zero, nil
	}
}

// coerce adapts a dynamically-typed context value to the statically-typed
// T a Spec[T] expects, covering the numeric/bool/bytes conversions that
// commonly cross field boundaries (e.g. an IntegerField parsed as uint64
// feeding a Spec[int] length).
func coerce[T any](v any) (T, error) {
	var zero T
	if t, ok := v.(T); ok {
		return t, nil
	}
	switch any(zero).(type) {
	case int:
		n, err := asInt64(v)
		if err != nil {
			return zero, err
		}
		return any(int(n)).(T), nil
	case int64:
		n, err := asInt64(v)
		if err != nil {
			return zero, err
		}
		return any(n).(T), nil
	case uint64:
		n, err := asInt64(v)
		if err != nil {
			return zero, err
		}
		return any(uint64(n)).(T), nil
	case bool:
		b, err := asBool(v)
		if err != nil {
			return zero, err
		}
		return any(b).(T), nil
	}
	return zero, fmt.Errorf("cannot use value of type %T as %T", v, zero)
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case []byte:
		return int64(len(n)), nil
	default:
		return 0, fmt.Errorf("value of type %T is not numeric", v)
	}
}

// truthy implements the source's truthiness rule for ConditionalField: not
// the numeric zero, not the empty sequence, not the sentinel absent value. A
// non-empty byte string (including a single null byte) is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case Absent:
		return false
	case bool:
		return t
	case []byte:
		return len(t) > 0
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case []Value:
		return len(t) > 0
	case []EnumMember:
		return len(t) > 0
	default:
		n, err := asInt64(v)
		if err == nil {
			return n != 0
		}
		return true
	}
}

func asBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	default:
		return truthy(t), nil
	}
}
