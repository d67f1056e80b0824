package binfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1: [len: U8, val: Bytes(length='len')]
func TestSchema_LengthByName_RoundTrip(t *testing.T) {
	schema := NewSchema("scenario1", ByteOrderUnspecified,
		F("len", NewInteger(1, BigEndian, false)),
		F("val", &BytesField{Length: Ref[int]("len"), Strict: true}),
	)

	data := []byte{0x06, '1', '2', '3', '4', '5', '6'}
	rec, n, err := schema.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, uint64(6), rec.Values["len"])
	assert.Equal(t, []byte("123456"), rec.Values["val"])

	// write back without supplying len: the engine auto-populates it from
	// val's byte length.
	out := schema.New(map[string]Value{"val": []byte("123456")})
	written, err := schema.WriteBytes(out)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

// Scenario 2: [foo: Bytes(terminator=\0), bar: Bytes(terminator=\r\n)]
func TestSchema_TwoTerminatedStrings(t *testing.T) {
	schema := NewSchema("scenario2", ByteOrderUnspecified,
		F("foo", &StringField{Bytes: BytesField{Terminator: []byte{0}, Strict: true}, Encoding: EncodingUTF8}),
		F("bar", &StringField{Bytes: BytesField{Terminator: []byte("\r\n"), Strict: true}, Encoding: EncodingUTF8}),
	)

	data := []byte("hello\x00world\r\n")
	rec, n, err := schema.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, "hello", rec.Values["foo"])
	assert.Equal(t, "world", rec.Values["bar"])

	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

// Scenario 3: [count: U8, items: Array(Bytes(terminator=\0), count='count')]
func TestSchema_ArrayByCount_AutoOverride(t *testing.T) {
	inner := &StringField{Bytes: BytesField{Terminator: []byte{0}, Strict: true}}
	schema := NewSchema("scenario3", ByteOrderUnspecified,
		F("count", NewInteger(1, BigEndian, false)),
		F("items", NewArrayByCount(inner, Ref[int]("count"))),
	)

	data := []byte{0x02, 'h', 'e', 'l', 'l', 'o', 0, 'w', 'o', 'r', 'l', 'd', 0}
	rec, n, err := schema.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, uint64(2), rec.Values["count"])
	assert.Equal(t, []Value{"hello", "world"}, rec.Values["items"])

	out := schema.New(map[string]Value{"items": []Value{"hello", "world"}})
	written, err := schema.WriteBytes(out)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

// Scenario 4: [foo: Bits(5, realign=true), bar: Bytes(length=1)]
func TestSchema_BitFieldRealign(t *testing.T) {
	schema := NewSchema("scenario4", ByteOrderUnspecified,
		F("foo", &BitField{Length: 5, Realign: true}),
		F("bar", &BytesField{Length: Lit(1), Strict: true}),
	)

	data := []byte{0b1010_1000, 0xFF}
	rec, n, err := schema.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, uint64(21), rec.Values["foo"])
	assert.Equal(t, []byte{0xFF}, rec.Values["bar"])

	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

// Scenario 5: [type: U8 enum{1:A,2:B}, body: Switch(switch='type', cases={A:U16be, B:Bytes(length=3)})]
func TestSchema_EnumSwitch(t *testing.T) {
	enum := &Enumeration{Name: "msgType", Members: []EnumMember{{Name: "A", Value: 1}, {Name: "B", Value: 2}}}
	schema := NewSchema("scenario5", ByteOrderUnspecified,
		F("type", NewEnum(NewInteger(1, BigEndian, false), enum)),
		F("body", NewSwitch(Ref[any]("type"), map[any]Field{
			"A": NewInteger(2, BigEndian, false),
			"B": &StringField{Bytes: BytesField{Length: Lit(3), Strict: true}},
		})),
	)

	data := []byte{0x02, 'a', 'b', 'c'}
	rec, n, err := schema.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, EnumMember{Name: "B", Value: 2}, rec.Values["type"])
	assert.Equal(t, "abc", rec.Values["body"])

	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

// Scenario 6: [n: VLQ] on `81 00` -> {n:128}; write 128 yields `81 00`.
func TestSchema_VLQ(t *testing.T) {
	schema := NewSchema("scenario6", ByteOrderUnspecified, F("n", NewVLQ()))

	data := []byte{0x81, 0x00}
	rec, n, err := schema.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, uint64(128), rec.Values["n"])

	written, err := schema.WriteBytes(schema.New(map[string]Value{"n": int64(128)}))
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestSchema_NegativeLengthArray_ReadsToEnd(t *testing.T) {
	schema := NewSchema("arr-until-end", ByteOrderUnspecified,
		F("items", NewArrayByLength(NewInteger(1, BigEndian, false), Lit(-1))),
	)
	data := []byte{1, 2, 3}
	rec, n, err := schema.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []Value{uint64(1), uint64(2), uint64(3)}, rec.Values["items"])
}

func TestSchema_ArrayByLength_NonDividingBoundIsTrailingBytes(t *testing.T) {
	// a 2-byte element needs exactly 2 bytes; the 5-byte bound leaves a
	// dangling single byte that cannot complete another element.
	schema := NewSchema("arr-trailing", ByteOrderUnspecified,
		F("items", NewArrayByLength(NewInteger(2, BigEndian, false), Lit(5))),
	)
	_, _, err := schema.ParseBytes([]byte{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrTrailingBytes)
}

func TestSchema_ArrayByLength_MidElementExhaustionPropagates(t *testing.T) {
	// a 4-byte element cannot even start to be read from a 3-byte bound:
	// exhaustion mid-element still surfaces as ErrTrailingBytes (a
	// non-dividing bound), not the raw ErrStreamExhausted the base field
	// field raised internally, and never ends the array silently the way
	// the negative-length (read-to-end) case ends at an element boundary.
	schema := NewSchema("arr-exhausted", ByteOrderUnspecified,
		F("items", NewArrayByLength(NewInteger(4, BigEndian, false), Lit(3))),
	)
	_, _, err := schema.ParseBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrTrailingBytes)
	assert.NotErrorIs(t, err, ErrStreamExhausted)
}

func TestSchema_ArrayField_RejectsCountAndLengthTogether(t *testing.T) {
	field := &ArrayField{BaseField: NewInteger(1, BigEndian, false), Count: Lit(1), Length: Lit(1)}
	schema := NewSchema("arr-bad-config", ByteOrderUnspecified, F("items", field))
	_, _, err := schema.ParseBytes([]byte{1})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestSchema_MisalignedBitsAtRecordBoundary(t *testing.T) {
	schema := NewSchema("misaligned", ByteOrderUnspecified,
		F("foo", &BitField{Length: 3}),
	)
	_, _, err := schema.ParseBytes([]byte{0xFF})
	assert.ErrorIs(t, err, ErrMisalignedBits)
}

func TestSchema_StructureFieldNestedWithLengthCap(t *testing.T) {
	inner := NewSchema("inner", ByteOrderUnspecified,
		F("a", NewInteger(1, BigEndian, false)),
		F("b", NewInteger(1, BigEndian, false)),
	)
	outer := NewSchema("outer", ByteOrderUnspecified,
		F("nested", &StructureField{Nested: inner, Length: 4, Strict: true}),
		F("tail", NewInteger(1, BigEndian, false)),
	)

	data := []byte{0x01, 0x02, 0xAA, 0xAA, 0x09}
	rec, n, err := outer.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	nested := rec.Values["nested"].(*Record)
	assert.Equal(t, uint64(1), nested.Values["a"])
	assert.Equal(t, uint64(2), nested.Values["b"])
	assert.Equal(t, uint64(9), rec.Values["tail"])
}

func TestSchema_EnumFlagSetDecomposition(t *testing.T) {
	enum := &Enumeration{
		Name:    "flags",
		FlagSet: true,
		Members: []EnumMember{{Name: "READ", Value: 1}, {Name: "WRITE", Value: 2}, {Name: "EXEC", Value: 4}},
	}
	schema := NewSchema("flagset", ByteOrderUnspecified,
		F("perm", NewEnum(NewInteger(1, BigEndian, false), enum)),
	)
	rec, _, err := schema.ParseBytes([]byte{0b011})
	require.NoError(t, err)
	assert.ElementsMatch(t, []EnumMember{{Name: "READ", Value: 1}, {Name: "WRITE", Value: 2}}, rec.Values["perm"])
}

func TestSchema_ConditionalField_ByteStringTruthiness(t *testing.T) {
	schema := NewSchema("cond", ByteOrderUnspecified,
		F("flag", &BytesField{Length: Lit(1), Strict: true}),
		F("extra", NewConditional(NewInteger(1, BigEndian, false), Ref[any]("flag"))),
	)
	rec, _, err := schema.ParseBytes([]byte{0x00, 0x09})
	require.NoError(t, err)
	// a single null byte is still a non-empty byte string: truthy.
	assert.Equal(t, uint64(9), rec.Values["extra"])
}

func TestSchema_BytesField_PaddingStrippedOnParseAndReappliedOnWrite(t *testing.T) {
	schema := NewSchema("nonstrict", ByteOrderUnspecified,
		F("val", &BytesField{Length: Lit(6), Padding: []byte{0x20}, Strict: false}),
	)
	data := []byte("ab    ") // trailing padding stripped on read
	rec, _, err := schema.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), rec.Values["val"])

	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

// §4.4: a terminator-only BytesField ignores Padding on read but may use
// it on write to round the terminated span up to a multiple of Step.
func TestSchema_BytesField_TerminatorOnly_PaddingRoundsUpToStep(t *testing.T) {
	schema := NewSchema("term-pad", ByteOrderUnspecified,
		F("val", &BytesField{Terminator: []byte{0}, Step: 4, Padding: []byte{0xAA}, Strict: true}),
	)
	rec := schema.New(map[string]Value{"val": []byte("ab")})
	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)
	// "ab" + terminator = 3 bytes; rounds up to the next multiple of 4.
	assert.Equal(t, []byte{'a', 'b', 0x00, 0xAA}, written)
}

// ErrorReplace is documented as lossy: an invalid byte sequence decodes to
// U+FFFD, which re-encodes to different bytes than the original input, so
// parse->write is not guaranteed to reproduce the original stream.
func TestStringField_ErrorReplace_IsNotByteRoundTrippable(t *testing.T) {
	schema := NewSchema("lossy-text", ByteOrderUnspecified,
		F("s", &StringField{
			Bytes:    BytesField{Length: Lit(3), Strict: true},
			Encoding: EncodingUTF8,
			Errors:   ErrorReplace,
		}),
	)
	data := []byte{0xFF, 'a', 'b'} // 0xFF is not a valid UTF-8 lead byte
	rec, _, err := schema.ParseBytes(data)
	require.NoError(t, err)
	assert.Contains(t, rec.Values["s"], "�")

	// the replacement character re-encodes to more bytes than the single
	// invalid byte it replaced, so the original fixed width cannot be
	// reproduced on write.
	_, err = schema.WriteBytes(rec)
	assert.ErrorIs(t, err, ErrWriteOverflow)
}
