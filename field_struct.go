package binfield

import (
	"fmt"
	"math"
)

// StructKind names one of the fixed C-struct-style scalar formats a
// StructField maps to, mirroring the format-character table of spec.md
// §4.9 (itself modeled on the source's struct.pack format characters).
type StructKind int

const (
	KindChar StructKind = iota
	KindInt8
	KindUint8
	KindBool
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat16
	KindFloat32
	KindFloat64
)

var structKindWidth = map[StructKind]int{
	KindChar: 1, KindInt8: 1, KindUint8: 1, KindBool: 1,
	KindInt16: 2, KindUint16: 2, KindFloat16: 2,
	KindInt32: 4, KindUint32: 4, KindFloat32: 4,
	KindInt64: 8, KindUint64: 8, KindFloat64: 8,
}

// StructField maps a fixed format token to its byte width and binary
// layout: two's complement for signed integers, IEEE-754 for floats. When
// Multibyte is set the parsed value is a []Value tuple of Count scalars
// instead of a single scalar.
type StructField struct {
	noDefault
	overrideSlot

	Kind      StructKind
	ByteOrder ByteOrder
	Multibyte bool
	Count     int // only meaningful when Multibyte is set
}

func NewStruct(kind StructKind, order ByteOrder) *StructField {
	return &StructField{Kind: kind, ByteOrder: order}
}

func (f *StructField) width() int { return structKindWidth[f.Kind] }

func (f *StructField) Parse(bs *BitStream, ctx *Context) (Value, error) {
	count := 1
	if f.Multibyte {
		count = f.Count
	}
	out := make([]Value, 0, count)
	for i := 0; i < count; i++ {
		v, err := f.parseOne(bs, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if !f.Multibyte {
		return out[0], nil
	}
	return out, nil
}

func (f *StructField) parseOne(bs *BitStream, ctx *Context) (Value, error) {
	order, err := resolveByteOrder(f.ByteOrder, recordOrderOf(ctx))
	if err != nil {
		return nil, err
	}
	buf, err := bs.ReadBytes(f.width())
	if err != nil {
		return nil, err
	}
	raw := getUint(buf, order)
	switch f.Kind {
	case KindBool:
		return raw != 0, nil
	case KindChar, KindUint8, KindUint16, KindUint32, KindUint64:
		return raw, nil
	case KindInt8, KindInt16, KindInt32, KindInt64:
		bits := uint(f.width() * 8)
		signBit := uint64(1) << (bits - 1)
		if raw&signBit != 0 && bits < 64 {
			raw |= ^uint64(0) << bits
		}
		return int64(raw), nil
	case KindFloat32:
		return float64(math.Float32frombits(uint32(raw))), nil
	case KindFloat64:
		return math.Float64frombits(raw), nil
	case KindFloat16:
		return float64(float16ToFloat32(uint16(raw))), nil
	default:
		return nil, fmt.Errorf("%w: unknown struct kind %d", ErrConfig, f.Kind)
	}
}

func (f *StructField) Write(bs *BitStream, ctx *Context, value Value) error {
	values, ok := value.([]Value)
	if !ok {
		values = []Value{value}
	}
	for _, v := range values {
		if err := f.writeOne(bs, ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *StructField) writeOne(bs *BitStream, ctx *Context, value Value) error {
	order, err := resolveByteOrder(f.ByteOrder, recordOrderOf(ctx))
	if err != nil {
		return err
	}
	var raw uint64
	switch f.Kind {
	case KindBool:
		b, _ := value.(bool)
		if b {
			raw = 1
		}
	case KindFloat32:
		fl, err := asFloat64(value)
		if err != nil {
			return err
		}
		raw = uint64(math.Float32bits(float32(fl)))
	case KindFloat64:
		fl, err := asFloat64(value)
		if err != nil {
			return err
		}
		raw = math.Float64bits(fl)
	case KindFloat16:
		fl, err := asFloat64(value)
		if err != nil {
			return err
		}
		raw = uint64(float32ToFloat16(float32(fl)))
	default:
		n, err := asInt64(value)
		if err != nil {
			return err
		}
		raw = uint64(n)
	}
	buf := make([]byte, f.width())
	putUint(buf, order, raw)
	return bs.WriteBytes(buf)
}

func recordOrderOf(ctx *Context) ByteOrder {
	if v, err := ctx.Get(recordByteOrderKey); err == nil {
		if bo, ok := v.(ByteOrder); ok {
			return bo
		}
	}
	return ByteOrderUnspecified
}

func asFloat64(v Value) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		i, err := asInt64(v)
		if err != nil {
			return 0, fmt.Errorf("%w: value of type %T is not a float", ErrConfig, v)
		}
		return float64(i), nil
	}
}

// float16ToFloat32 converts an IEEE-754 binary16 value to float32.
func float16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & 0x1F
	frac := uint32(h) & 0x3FF
	var bits uint32
	switch exp {
	case 0:
		if frac == 0 {
			bits = sign << 31
		} else {
			// subnormal
			for frac&0x400 == 0 {
				frac <<= 1
				exp--
			}
			exp++
			frac &= 0x3FF
			bits = (sign << 31) | ((exp + 112) << 23) | (frac << 13)
		}
	case 0x1F:
		bits = (sign << 31) | (0xFF << 23) | (frac << 13)
	default:
		bits = (sign << 31) | ((exp + 112) << 23) | (frac << 13)
	}
	return math.Float32frombits(bits)
}

// float32ToFloat16 converts a float32 to IEEE-754 binary16, saturating to
// infinity on overflow.
func float32ToFloat16(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xFF) - 112
	frac := bits & 0x7FFFFF
	switch {
	case exp <= 0:
		return sign
	case exp >= 0x1F:
		return sign | 0x7C00
	default:
		return sign | uint16(exp<<10) | uint16(frac>>13)
	}
}
