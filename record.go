package binfield

import "fmt"

// FieldEntry pairs a field name with its codec. A Schema is an ordered list
// of FieldEntry; names are unique within a record.
type FieldEntry struct {
	Name  string
	Field Field
}

// F is a convenience constructor for a FieldEntry.
func F(name string, field Field) FieldEntry {
	return FieldEntry{Name: name, Field: field}
}

// Schema is an ordered, immutable record layout: a declared field list plus
// the auto-override wiring the engine installs at construction time.
type Schema struct {
	Name      string
	ByteOrder ByteOrder
	Fields    []FieldEntry

	index map[string]int
}

// NewSchema builds an immutable schema from an ordered field list and wires
// the auto-override protocol: any field whose length/count references a
// sibling by name installs a synthetic override on that sibling, unless the
// sibling already has an explicit override.
func NewSchema(name string, byteOrder ByteOrder, fields ...FieldEntry) *Schema {
	s := &Schema{
		Name:      name,
		ByteOrder: byteOrder,
		Fields:    fields,
		index:     make(map[string]int, len(fields)),
	}
	for i, fe := range fields {
		s.index[fe.Name] = i
	}
	s.wireAutoOverrides()
	return s
}

func (s *Schema) wireAutoOverrides() {
	for _, fe := range s.Fields {
		src, ok := fe.Field.(autoOverrideSource)
		if !ok {
			continue
		}
		targetName, compute, ok := src.autoOverrideTarget(fe.Name)
		if !ok {
			continue
		}
		idx, found := s.index[targetName]
		if !found {
			continue
		}
		target, ok := s.Fields[idx].Field.(overridable)
		if !ok || target.hasExplicitOverride() {
			continue
		}
		target.setAutoOverride(compute)
	}
}

// FieldByName returns the field registered under name, if any.
func (s *Schema) FieldByName(name string) (Field, bool) {
	idx, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.Fields[idx].Field, true
}

// Record is one assembled instance of a Schema: a set of named field
// values. Records are produced by Schema.Parse or by Schema.New, and
// consumed by Schema.Write.
type Record struct {
	Schema *Schema
	Values map[string]Value
}

// New constructs a record from explicit field values. Fields left unset
// resolve lazily to their field's default at write time.
func (s *Schema) New(values map[string]Value) *Record {
	cloned := make(map[string]Value, len(values))
	for k, v := range values {
		cloned[k] = v
	}
	return &Record{Schema: s, Values: cloned}
}

// Get returns a field's value and whether it was present.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Set assigns a field's value.
func (r *Record) Set(name string, v Value) {
	r.Values[name] = v
}

// Parse parses a complete record from bs in the schema's declared field
// order, storing each field's value into a fresh Context (chained to
// parent, used by nested StructureFields) as it goes so later fields can
// resolve earlier ones by name.
func (s *Schema) Parse(bs *BitStream, parent *Context) (*Record, error) {
	ctx := newContext(parent)
	ctx.set(recordByteOrderKey, s.ByteOrder)
	values := make(map[string]Value, len(s.Fields))
	for _, fe := range s.Fields {
		v, err := fe.Field.Parse(bs, ctx)
		if err != nil {
			return nil, pathErr(s.Name, fe.Name, err)
		}
		ctx.set(fe.Name, v)
		values[fe.Name] = v
	}
	return &Record{Schema: s, Values: values}, nil
}

// Write serializes r in the schema's declared field order:
//  1. every field's final pre-override value is resolved (the record's
//     stored attribute, or the field's default if unset);
//  2. auto-overrides computed from a dependent field's pending value (step
//     1's result, independent of write order) are layered in;
//  3. each field's own Override hook is applied and the field is written,
//     storing the written value into the context for later fields.
func (s *Schema) Write(bs *BitStream, parent *Context, r *Record) error {
	ctx := newContext(parent)
	ctx.set(recordByteOrderKey, s.ByteOrder)

	pending := make(map[string]Value, len(s.Fields))
	for _, fe := range s.Fields {
		v, ok := r.Values[fe.Name]
		if !ok {
			d, hasDefault, err := fe.Field.Default(ctx)
			if err != nil {
				return pathErr(s.Name, fe.Name, err)
			}
			if hasDefault {
				v = d
			}
		}
		pending[fe.Name] = v
	}
	ctx.pending = pending

	for _, fe := range s.Fields {
		v := pending[fe.Name]
		if ov, has, err := fe.Field.Override(ctx, v); err != nil {
			return pathErr(s.Name, fe.Name, err)
		} else if has {
			v = ov
		}
		if err := fe.Field.Write(bs, ctx, v); err != nil {
			return pathErr(s.Name, fe.Name, err)
		}
		ctx.set(fe.Name, v)
	}
	return nil
}

// ParseBytes is a convenience entry point: parse a full top-level record (no
// parent context) from data, returning the record and the number of bytes
// consumed.
func (s *Schema) ParseBytes(data []byte) (*Record, int, error) {
	bs := NewBitReader(data)
	rec, err := s.Parse(bs, nil)
	if err != nil {
		return nil, bs.Tell(), err
	}
	if bs.BitOffset() != 0 {
		return nil, bs.Tell(), pathErr(s.Name, "<record>", fmt.Errorf("%w: trailing bit offset %d", ErrMisalignedBits, bs.BitOffset()))
	}
	return rec, bs.Tell(), nil
}

// WriteBytes is a convenience entry point: serialize a full top-level
// record (no parent context) and return the produced bytes.
func (s *Schema) WriteBytes(r *Record) ([]byte, error) {
	bs := NewBitWriter()
	if err := s.Write(bs, nil, r); err != nil {
		return nil, err
	}
	bs.RealignWrite(0)
	return bs.Bytes(), nil
}
