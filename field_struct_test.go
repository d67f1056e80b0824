package binfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructField_Float32RoundTrip(t *testing.T) {
	schema := NewSchema("f32", ByteOrderUnspecified,
		F("v", NewStruct(KindFloat32, LittleEndian)),
	)
	rec := schema.New(map[string]Value{"v": 3.5})
	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)

	out, _, err := schema.ParseBytes(written)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, out.Values["v"], 1e-9)
}

func TestStructField_Float16RoundTrip(t *testing.T) {
	schema := NewSchema("f16", ByteOrderUnspecified,
		F("v", NewStruct(KindFloat16, LittleEndian)),
	)
	rec := schema.New(map[string]Value{"v": 1.5})
	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	out, _, err := schema.ParseBytes(written)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, out.Values["v"], 1e-3)
}

func TestStructField_MultibyteTuple(t *testing.T) {
	schema := NewSchema("tuple", ByteOrderUnspecified,
		F("rgb", &StructField{Kind: KindUint8, ByteOrder: BigEndian, Multibyte: true, Count: 3}),
	)
	rec, n, err := schema.ParseBytes([]byte{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []Value{uint64(10), uint64(20), uint64(30)}, rec.Values["rgb"])

	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30}, written)
}

func TestStructField_BoolScalar(t *testing.T) {
	schema := NewSchema("flag", ByteOrderUnspecified, F("on", NewStruct(KindBool, BigEndian)))
	rec, _, err := schema.ParseBytes([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, true, rec.Values["on"])
}
