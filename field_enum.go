package binfield

import "fmt"

// EnumMember is one decoded enumeration value: its backing integer and its
// symbolic name, mirroring the teacher's own nmea.EnumValue shape.
type EnumMember struct {
	Name  string
	Value uint64
}

// Enumeration is a set of name<->integer bindings. When FlagSet is true,
// integer values combine by bitwise OR and EnumField decomposes them into
// their constituent members instead of a single match.
type Enumeration struct {
	Name          string
	Members       []EnumMember
	FlagSet       bool
	AllowUnknown  bool
}

func (e *Enumeration) byValue(v uint64) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Value == v {
			return m, true
		}
	}
	return EnumMember{}, false
}

func (e *Enumeration) byName(name string) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}

// EnumField maps an integer produced by BaseField to one (or, for a
// flag-set, several) EnumMember.
type EnumField struct {
	noDefault
	noOverride

	BaseField Field
	Enum      *Enumeration
}

func NewEnum(base Field, enum *Enumeration) *EnumField {
	return &EnumField{BaseField: base, Enum: enum}
}

func (f *EnumField) Parse(bs *BitStream, ctx *Context) (Value, error) {
	raw, err := f.BaseField.Parse(bs, ctx)
	if err != nil {
		return nil, err
	}
	n, err := asInt64(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: enum base field must produce an integer", ErrConfig)
	}
	v := uint64(n)

	if f.Enum.FlagSet {
		var members []EnumMember
		var matched uint64
		for _, m := range f.Enum.Members {
			if m.Value != 0 && v&m.Value == m.Value {
				members = append(members, m)
				matched |= m.Value
			}
		}
		if v&^matched != 0 && !f.Enum.AllowUnknown {
			return nil, fmt.Errorf("%w: bits 0x%x not covered by enumeration %s", ErrEnumNotFound, v&^matched, f.Enum.Name)
		}
		return members, nil
	}

	m, ok := f.Enum.byValue(v)
	if !ok {
		if f.Enum.AllowUnknown {
			return EnumMember{Name: "", Value: v}, nil
		}
		return nil, fmt.Errorf("%w: value %d not in enumeration %s", ErrEnumNotFound, v, f.Enum.Name)
	}
	return m, nil
}

func (f *EnumField) Write(bs *BitStream, ctx *Context, value Value) error {
	var raw uint64
	switch v := value.(type) {
	case EnumMember:
		raw = v.Value
	case []EnumMember:
		for _, m := range v {
			raw |= m.Value
		}
	case string:
		m, ok := f.Enum.byName(v)
		if !ok {
			return fmt.Errorf("%w: name %q not in enumeration %s", ErrEnumNotFound, v, f.Enum.Name)
		}
		raw = m.Value
	default:
		n, err := asInt64(value)
		if err != nil {
			return fmt.Errorf("%w: cannot write %T as enum value", ErrConfig, value)
		}
		raw = uint64(n)
	}
	return f.BaseField.Write(bs, ctx, raw)
}
