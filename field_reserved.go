package binfield

// ReservedField marks a fixed-width bit span whose contents carry no
// semantic value: a reserved or spare range in a wire format. Grounded on
// canboat's FieldTypeReserved/FieldTypeSpare and the
// DecodeReservedFields/DecodeSpareFields toggles that let a caller choose
// whether to surface the raw bits or discard them.
//
// By default the span is skipped on Parse (the record attribute is set to
// Absent{}) and filled with zero bits on Write. Setting Decode surfaces the raw
// bits as a uint64 so a caller who needs to inspect a reserved range
// (vendor-specific use, protocol debugging) still can.
type ReservedField struct {
	noDefault
	noOverride

	// Length is the span width in bits.
	Length int
	// Decode, when true, surfaces the span as a uint64 value instead of
	// Absent{}.
	Decode bool
	// Fill is written back when Decode is false; defaults to zero bits.
	Fill uint64
}

// NewReserved creates a skipped ReservedField of the given bit width.
func NewReserved(lengthBits int) *ReservedField {
	return &ReservedField{Length: lengthBits}
}

func (f *ReservedField) Parse(bs *BitStream, _ *Context) (Value, error) {
	v, err := bs.ReadBits(f.Length)
	if err != nil {
		return nil, err
	}
	if f.Decode {
		return v, nil
	}
	return Absent{}, nil
}

func (f *ReservedField) Write(bs *BitStream, _ *Context, value Value) error {
	fill := f.Fill
	if f.Decode {
		if n, err := asInt64(value); err == nil {
			fill = uint64(n)
		}
	}
	return bs.WriteBits(fill, f.Length)
}

func (f *ReservedField) Default(_ *Context) (Value, bool, error) {
	if f.Decode {
		return nil, false, nil
	}
	return Absent{}, true, nil
}
