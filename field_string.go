package binfield

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// TextEncoding names the supported text encodings for StringField.
type TextEncoding int

const (
	EncodingUTF8 TextEncoding = iota
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingASCII
)

// ErrorMode controls how encode/decode failures are handled.
type ErrorMode int

const (
	// ErrorStrict fails with ErrEncoding on any invalid byte sequence,
	// except that unpaired UTF-16 surrogates decode to U+FFFD without error.
	ErrorStrict ErrorMode = iota
	// ErrorReplace substitutes U+FFFD for invalid sequences on decode, and
	// '?' for each non-ASCII byte when encoding ASCII; a schema
	// using ErrorReplace is, per spec.md Invariant 5, not guaranteed to
	// round-trip byte-exact.
	ErrorReplace
)

// StringField decodes/encodes a Unicode string over an inner BytesField,
// holding it by composition (not subclassing) per the design notes: it
// applies decode/encode hooks around whatever byte span the inner field
// reads or writes.
type StringField struct {
	noOverride

	Bytes    BytesField
	Encoding TextEncoding
	Errors   ErrorMode
}

// NewString creates a StringField defaulting to UTF-8, strict errors.
func NewString() *StringField {
	return &StringField{Bytes: BytesField{Strict: true}, Encoding: EncodingUTF8, Errors: ErrorStrict}
}

func (f *StringField) Parse(bs *BitStream, ctx *Context) (Value, error) {
	raw, err := f.Bytes.Parse(bs, ctx)
	if err != nil {
		return nil, err
	}
	return f.toPython(raw.([]byte))
}

func (f *StringField) Write(bs *BitStream, ctx *Context, value Value) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: StringField expects string, got %T", ErrConfig, value)
	}
	raw, err := f.fromPython(s)
	if err != nil {
		return err
	}
	return f.Bytes.Write(bs, ctx, raw)
}

func (f *StringField) Default(ctx *Context) (Value, bool, error) {
	return "", true, nil
}

// autoOverrideTarget delegates to the inner BytesField so `StringField{
// Bytes: BytesField{Length: Ref[int]("len")}}` auto-populates `len` the same
// way a raw BytesField would, encoding the string first.
func (f *StringField) autoOverrideTarget(ownName string) (string, func(ctx *Context) (Value, error), bool) {
	name, ok := f.Bytes.Length.RefName()
	if !ok {
		return "", nil, false
	}
	return name, func(ctx *Context) (Value, error) {
		raw, _ := ctx.pendingValue(ownName)
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: StringField expects string, got %T", ErrConfig, raw)
		}
		encoded, err := f.fromPython(s)
		if err != nil {
			return nil, err
		}
		return int64(len(encoded)), nil
	}, true
}

func (f *StringField) toPython(raw []byte) (string, error) {
	switch f.Encoding {
	case EncodingUTF16LE, EncodingUTF16BE:
		return decodeUTF16(raw, f.Encoding == EncodingUTF16BE)
	case EncodingASCII:
		var sb strings.Builder
		for _, b := range raw {
			if b > 0x7F {
				if f.Errors == ErrorStrict {
					return "", fmt.Errorf("%w: byte 0x%02x is not valid ASCII", ErrEncoding, b)
				}
				sb.WriteRune(utf8.RuneError)
				continue
			}
			sb.WriteByte(b)
		}
		return sb.String(), nil
	default: // EncodingUTF8
		if !utf8.Valid(raw) {
			if f.Errors == ErrorStrict {
				return "", fmt.Errorf("%w: invalid UTF-8 sequence", ErrEncoding)
			}
			return strings.ToValidUTF8(string(raw), "�"), nil
		}
		return string(raw), nil
	}
}

func (f *StringField) fromPython(s string) ([]byte, error) {
	switch f.Encoding {
	case EncodingUTF16LE, EncodingUTF16BE:
		return encodeUTF16(s, f.Encoding == EncodingUTF16BE), nil
	case EncodingASCII:
		b := make([]byte, len(s))
		for i := 0; i < len(s); i++ {
			if s[i] > 0x7F {
				if f.Errors == ErrorStrict {
					return nil, fmt.Errorf("%w: rune at byte %d is not valid ASCII", ErrEncoding, i)
				}
				b[i] = '?'
				continue
			}
			b[i] = s[i]
		}
		return b, nil
	default:
		return []byte(s), nil
	}
}

func decodeUTF16(raw []byte, big bool) (string, error) {
	if len(raw)%2 != 0 {
		return "", fmt.Errorf("%w: odd-length UTF-16 byte span", ErrEncoding)
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		if big {
			units[i] = uint16(raw[2*i])<<8 | uint16(raw[2*i+1])
		} else {
			units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
		}
	}
	return string(utf16.Decode(units)), nil
}

func encodeUTF16(s string, big bool) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		if big {
			out[2*i] = byte(u >> 8)
			out[2*i+1] = byte(u)
		} else {
			out[2*i] = byte(u)
			out[2*i+1] = byte(u >> 8)
		}
	}
	return out
}
