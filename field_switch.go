package binfield

import "fmt"

// SwitchField resolves Switch to a key and dispatches parse/write to the
// matching entry in Cases, falling back to Other when the key is absent
// from Cases, or failing with ErrSwitchNoMatch when Other is also unset.
type SwitchField struct {
	noDefault
	noOverride

	Cases  map[any]Field
	Switch Spec[any]
	Other  Field
}

func NewSwitch(switchOn Spec[any], cases map[any]Field) *SwitchField {
	return &SwitchField{Cases: cases, Switch: switchOn}
}

func (f *SwitchField) resolve(ctx *Context) (Field, error) {
	key, err := f.Switch.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	// An EnumField'd switch key dispatches by the enum member's symbolic
	// name, not the EnumMember struct value itself.
	if m, ok := key.(EnumMember); ok {
		key = m.Name
	}
	if field, ok := f.Cases[key]; ok {
		return field, nil
	}
	if f.Other != nil {
		return f.Other, nil
	}
	return nil, fmt.Errorf("%w: key %v", ErrSwitchNoMatch, key)
}

func (f *SwitchField) Parse(bs *BitStream, ctx *Context) (Value, error) {
	field, err := f.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return field.Parse(bs, ctx)
}

func (f *SwitchField) Write(bs *BitStream, ctx *Context, value Value) error {
	field, err := f.resolve(ctx)
	if err != nil {
		return err
	}
	return field.Write(bs, ctx, value)
}
