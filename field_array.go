package binfield

import (
	"errors"
	"fmt"
)

// ArrayField repeats BaseField either Count times, or until Length bytes
// are consumed (a negative Length means read-until-end: the array ends
// cleanly when the stream ends at an element boundary, while mid-element
// exhaustion propagates as a real failure).
// Exactly one of Count or Length must be configured.
type ArrayField struct {
	noDefault
	overrideSlot

	BaseField Field
	Count     Spec[int]
	Length    Spec[int]
}

func NewArrayByCount(base Field, count Spec[int]) *ArrayField {
	return &ArrayField{BaseField: base, Count: count}
}

func NewArrayByLength(base Field, length Spec[int]) *ArrayField {
	return &ArrayField{BaseField: base, Length: length}
}

func (f *ArrayField) Parse(bs *BitStream, ctx *Context) (Value, error) {
	switch {
	case !f.Count.IsZero() && !f.Length.IsZero():
		return nil, fmt.Errorf("%w: ArrayField cannot combine Count and Length", ErrConfig)
	case !f.Count.IsZero():
		return f.parseByCount(bs, ctx)
	case !f.Length.IsZero():
		return f.parseByLength(bs, ctx)
	default:
		return nil, fmt.Errorf("%w: ArrayField needs Count or Length", ErrConfig)
	}
}

func (f *ArrayField) parseByCount(bs *BitStream, ctx *Context) (Value, error) {
	count, err := f.Count.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, count)
	for i := 0; i < count; i++ {
		v, err := f.BaseField.Parse(bs, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *ArrayField) parseByLength(bs *BitStream, ctx *Context) (Value, error) {
	length, err := f.Length.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return f.parseUntilEnd(bs, ctx)
	}
	sub, err := bs.ReadBytes(length)
	if err != nil {
		return nil, err
	}
	subStream := NewBitReader(sub)
	out := make([]Value, 0)
	for !subStream.AtEnd() {
		v, err := f.BaseField.Parse(subStream, ctx)
		if err != nil {
			if errors.Is(err, ErrStreamExhausted) {
				// the bound had bytes left but not enough for a whole
				// element: a non-dividing length, not clean exhaustion.
				return nil, ErrTrailingBytes
			}
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *ArrayField) parseUntilEnd(bs *BitStream, ctx *Context) (Value, error) {
	out := make([]Value, 0)
	for {
		if bs.AtEnd() {
			return out, nil
		}
		v, err := f.BaseField.Parse(bs, ctx)
		if err != nil {
			// the AtEnd check above already ends the array at an element
			// boundary, so an ErrStreamExhausted here arose mid-element
			// and propagates like any other error.
			return nil, err
		}
		out = append(out, v)
	}
}

func (f *ArrayField) Write(bs *BitStream, ctx *Context, value Value) error {
	list, ok := value.([]Value)
	if !ok {
		return fmt.Errorf("%w: ArrayField expects []Value, got %T", ErrConfig, value)
	}
	for _, v := range list {
		if err := f.BaseField.Write(bs, ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// autoOverrideTarget mirrors BytesField's: Count-by-name auto-populates the
// named sibling with the array's element count at write time.
func (f *ArrayField) autoOverrideTarget(ownName string) (string, func(ctx *Context) (Value, error), bool) {
	name, ok := f.Count.RefName()
	if !ok {
		return "", nil, false
	}
	return name, func(ctx *Context) (Value, error) {
		raw, _ := ctx.pendingValue(ownName)
		list, ok := raw.([]Value)
		if !ok {
			return nil, fmt.Errorf("%w: ArrayField expects []Value, got %T", ErrConfig, raw)
		}
		return int64(len(list)), nil
	}, true
}
