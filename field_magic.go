package binfield

import (
	"bytes"
	"fmt"
)

// MagicField is a fixed, required byte sequence used as a format sentinel.
// Parse fails with ErrMagicMismatch if the stream bytes differ; write always
// emits the configured magic regardless of the supplied value (the value is
// only checked against the magic when Strict is set).
type MagicField struct {
	noOverride

	Magic  []byte
	Strict bool
}

// NewMagic creates a MagicField for the given fixed byte sequence, strict
// by default (the usual case: a format sentinel should never silently
// accept a mismatched value on write).
func NewMagic(magic []byte) *MagicField {
	return &MagicField{Magic: append([]byte(nil), magic...), Strict: true}
}

func (f *MagicField) Parse(bs *BitStream, _ *Context) (Value, error) {
	b, err := bs.ReadBytes(len(f.Magic))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(b, f.Magic) {
		return nil, fmt.Errorf("%w: got % x, want % x", ErrMagicMismatch, b, f.Magic)
	}
	return append([]byte(nil), b...), nil
}

func (f *MagicField) Write(bs *BitStream, _ *Context, value Value) error {
	if f.Strict {
		if b, ok := value.([]byte); ok && !bytes.Equal(b, f.Magic) {
			return fmt.Errorf("%w: value % x does not equal magic % x", ErrMagicMismatch, b, f.Magic)
		}
	}
	return bs.WriteBytes(f.Magic)
}

func (f *MagicField) Default(*Context) (Value, bool, error) {
	return append([]byte(nil), f.Magic...), true, nil
}
