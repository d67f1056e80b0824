package binfield

import "fmt"

// StructureField nests a complete sub-record schema. When Length is set, a
// bounded sub-stream of that many bytes is carved out of the parent: any
// unread tail is discarded on read, and the nested record must fit within
// Length bytes on write (zero-padded or an error, per Strict).
type StructureField struct {
	noDefault
	noOverride

	Nested *Schema
	// Length, when >= 0, caps the nested record to this many bytes.
	Length int
	Strict bool
}

func NewStructure(nested *Schema) *StructureField {
	return &StructureField{Nested: nested, Length: -1, Strict: true}
}

func (f *StructureField) Parse(bs *BitStream, ctx *Context) (Value, error) {
	if f.Length < 0 {
		rec, err := f.Nested.Parse(bs, ctx)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	sub, err := bs.ReadBytes(f.Length)
	if err != nil {
		return nil, err
	}
	subStream := NewBitReader(sub)
	rec, err := f.Nested.Parse(subStream, ctx)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (f *StructureField) Write(bs *BitStream, ctx *Context, value Value) error {
	rec, ok := value.(*Record)
	if !ok {
		return fmt.Errorf("%w: StructureField expects *Record, got %T", ErrConfig, value)
	}
	if f.Length < 0 {
		return f.Nested.Write(bs, ctx, rec)
	}
	sub := NewBitWriter()
	if err := f.Nested.Write(sub, ctx, rec); err != nil {
		return err
	}
	sub.RealignWrite(0)
	body := sub.Bytes()
	if len(body) > f.Length {
		if f.Strict {
			return ErrWriteOverflow
		}
		body = body[:f.Length]
	} else if len(body) < f.Length {
		padded := make([]byte, f.Length)
		copy(padded, body)
		body = padded
	}
	return bs.WriteBytes(body)
}
