package binfield

// ConditionalField parses/writes BaseField only when Condition evaluates
// truthy. Truthiness follows the source's rule: not the numeric zero, not
// the empty sequence, not the absent sentinel — notably a non-empty byte
// string (including a single null byte) is true. When false, Parse yields
// Absent{} without consuming any bytes, and Write emits nothing.
type ConditionalField struct {
	noDefault
	noOverride

	BaseField Field
	Condition Spec[any]
}

func NewConditional(base Field, condition Spec[any]) *ConditionalField {
	return &ConditionalField{BaseField: base, Condition: condition}
}

func (f *ConditionalField) Parse(bs *BitStream, ctx *Context) (Value, error) {
	cond, err := f.Condition.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if !truthy(cond) {
		return Absent{}, nil
	}
	return f.BaseField.Parse(bs, ctx)
}

func (f *ConditionalField) Write(bs *BitStream, ctx *Context, value Value) error {
	cond, err := f.Condition.Resolve(ctx)
	if err != nil {
		return err
	}
	if !truthy(cond) {
		return nil
	}
	return f.BaseField.Write(bs, ctx, value)
}
