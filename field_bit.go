package binfield

// BitField reads/writes Length bits MSB-first as an unsigned integer. If
// Realign is set, the stream is advanced to the next byte boundary after
// read (discarding remaining bits) or after write (zero-padding).
type BitField struct {
	noDefault
	overrideSlot

	Length  int
	Realign bool
}

func NewBit(length int) *BitField { return &BitField{Length: length} }

func (f *BitField) Parse(bs *BitStream, _ *Context) (Value, error) {
	v, err := bs.ReadBits(f.Length)
	if err != nil {
		return nil, err
	}
	if f.Realign {
		bs.RealignRead()
	}
	return v, nil
}

func (f *BitField) Write(bs *BitStream, _ *Context, value Value) error {
	n, err := asInt64(value)
	if err != nil {
		return err
	}
	if err := bs.WriteBits(uint64(n), f.Length); err != nil {
		return err
	}
	if f.Realign {
		bs.RealignWrite(0)
	}
	return nil
}
