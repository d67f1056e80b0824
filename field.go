package binfield

// Value is the dynamically-typed result of parsing, or the input to
// writing, one field. Concrete field types document which Go type they
// produce: []byte, string, int64/uint64, float64, bool, an enum member, a
// []Value for arrays, a *Record for nested records, or Absent.
type Value = any

// Absent is the value of a ConditionalField whose condition evaluated to
// false at parse time: the field consumed no bytes and carries no data.
type Absent struct{}

// Field is the capability set every field primitive satisfies: parse a
// value from a stream, write a value to a stream, optionally supply a
// default for an unset attribute, and optionally override the value just
// before write (including engine-installed auto-overrides).
type Field interface {
	// Parse reads this field's value from bs using ctx to resolve any
	// sibling references the field's configuration needs.
	Parse(bs *BitStream, ctx *Context) (Value, error)
	// Write emits value to bs using ctx to resolve sibling references.
	Write(bs *BitStream, ctx *Context, value Value) error
	// Default supplies a value for a record attribute left unset at
	// construction time. ok is false when the field has no default.
	Default(ctx *Context) (value Value, ok bool, err error)
	// Override computes the value to write in place of the record's
	// stored attribute, just before Write. ok is false when neither an
	// explicit nor an auto-installed override applies.
	Override(ctx *Context, current Value) (value Value, ok bool, err error)
}

// noDefault is embedded by fields with no meaningful default value.
type noDefault struct{}

func (noDefault) Default(*Context) (Value, bool, error) { return nil, false, nil }

// noOverride is embedded by fields that never support an override hook
// (fields that cannot be the target of an auto-override wiring).
type noOverride struct{}

func (noOverride) Override(*Context, Value) (Value, bool, error) { return nil, false, nil }

// overrideSlot is embedded by fields that can serve as the target of an
// auto-override (typically length/count carriers such as IntegerField,
// BitField and the VLQ field). An explicitly configured override always
// takes precedence over an engine-installed auto-override.
type overrideSlot struct {
	explicit func(ctx *Context) (Value, error)
	auto     func(ctx *Context) (Value, error)
}

// setExplicitOverride installs an explicit override hook, pre-empting any
// auto-override the schema would otherwise wire onto this field.
func (o *overrideSlot) setExplicitOverride(fn func(ctx *Context) (Value, error)) {
	o.explicit = fn
}

func (o *overrideSlot) hasExplicitOverride() bool { return o.explicit != nil }

func (o *overrideSlot) setAutoOverride(fn func(ctx *Context) (Value, error)) {
	o.auto = fn
}

func (o *overrideSlot) Override(ctx *Context, _ Value) (Value, bool, error) {
	switch {
	case o.explicit != nil:
		v, err := o.explicit(ctx)
		return v, true, err
	case o.auto != nil:
		v, err := o.auto(ctx)
		return v, true, err
	default:
		return nil, false, nil
	}
}

// overridable is implemented by fields that can be the target of an
// engine-installed auto-override.
type overridable interface {
	Field
	setAutoOverride(fn func(ctx *Context) (Value, error))
	hasExplicitOverride() bool
}

// autoOverrideSource is implemented by fields whose length/count attribute
// may reference a sibling field by name, triggering the engine to install a
// synthetic override on that sibling at schema-construction time.
type autoOverrideSource interface {
	// autoOverrideTarget returns the sibling field name this field (named
	// ownName) references for its length/count, and a function computing
	// that sibling's value from ownName's pending (pre-override) value.
	autoOverrideTarget(ownName string) (targetName string, compute func(ctx *Context) (Value, error), ok bool)
}
