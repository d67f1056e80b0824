package binfield

import "fmt"

// IntegerField reads/writes a fixed-width two's-complement or unsigned
// integer. Length is in bytes. ByteOrder, if ByteOrderUnspecified, inherits
// the enclosing record's default; ErrConfig if neither is set.
type IntegerField struct {
	noDefault
	overrideSlot

	Length    int
	ByteOrder ByteOrder
	Signed    bool

	// SentinelAware, when set, surfaces the "no data / out of range /
	// reserved" trio of errors for the all-ones / all-ones-minus-one /
	// all-ones-minus-two bit patterns, a widely used binary-protocol
	// convention (see ErrValueNoData and friends). Off by default; does
	// not change the base contract in spec.md §4.6.
	SentinelAware bool
}

// These sentinels implement the SentinelAware convention described above.
var (
	ErrValueNoData     = fmt.Errorf("binfield: %w: field has no data", ErrConfig)
	ErrValueOutOfRange = fmt.Errorf("binfield: %w: field value is out of range", ErrConfig)
	ErrValueReserved   = fmt.Errorf("binfield: %w: field value is reserved", ErrConfig)
)

func NewInteger(length int, order ByteOrder, signed bool) *IntegerField {
	return &IntegerField{Length: length, ByteOrder: order, Signed: signed}
}

// recordByteOrderKey is the well-known context entry Schema.Parse/Write set
// to the record's default byte order, so IntegerField/StructField can
// inherit it when their own ByteOrder is left ByteOrderUnspecified.
const recordByteOrderKey = "__record_byte_order__"

func (f *IntegerField) Parse(bs *BitStream, ctx *Context) (Value, error) {
	order, err := resolveByteOrder(f.ByteOrder, recordOrderOf(ctx))
	if err != nil {
		return nil, err
	}
	buf, err := bs.ReadBytes(f.Length)
	if err != nil {
		return nil, err
	}
	raw := getUint(buf, order)
	if f.SentinelAware && f.Length > 0 {
		bits := uint(f.Length * 8)
		max := ^uint64(0)
		if bits < 64 {
			max = (uint64(1) << bits) - 1
		}
		if f.Signed {
			// signed sentinels are the top three values of the positive
			// half of the range (e.g. 0x7F/0x7E/0x7D for a signed byte),
			// not the unsigned all-ones pattern: matches the teacher's
			// decodeVariableInt halving its mask for a signed field.
			max >>= 1
		}
		switch raw {
		case max:
			return nil, ErrValueNoData
		case max - 1:
			return nil, ErrValueOutOfRange
		case max - 2:
			return nil, ErrValueReserved
		}
	}
	if !f.Signed {
		return raw, nil
	}
	bits := uint(f.Length * 8)
	signBit := uint64(1) << (bits - 1)
	if raw&signBit != 0 && bits < 64 {
		raw |= ^uint64(0) << bits
	}
	return int64(raw), nil
}

func (f *IntegerField) Write(bs *BitStream, ctx *Context, value Value) error {
	order, err := resolveByteOrder(f.ByteOrder, recordOrderOf(ctx))
	if err != nil {
		return err
	}
	n, err := asInt64(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	bits := uint(f.Length * 8)
	if f.Signed {
		min := -(int64(1) << (bits - 1))
		max := (int64(1) << (bits - 1)) - 1
		if bits >= 64 {
			min, max = minInt64, maxInt64
		}
		if n < min || n > max {
			return ErrOverflow
		}
	} else {
		if n < 0 {
			return ErrOverflow
		}
		var max uint64 = ^uint64(0)
		if bits < 64 {
			max = (uint64(1) << bits) - 1
		}
		if uint64(n) > max {
			return ErrOverflow
		}
	}
	buf := make([]byte, f.Length)
	putUint(buf, order, uint64(n))
	return bs.WriteBytes(buf)
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)
