package binfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservedField_SkippedByDefault(t *testing.T) {
	schema := NewSchema("reserved", BigEndian,
		F("flag", NewInteger(1, ByteOrderUnspecified, false)),
		F("res", NewReserved(8)),
	)

	rec, n, err := schema.ParseBytes([]byte{0x01, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, Absent{}, rec.Values["res"])

	written, err := schema.WriteBytes(schema.New(map[string]Value{"flag": uint64(1)}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00}, written)
}

func TestReservedField_DecodeSurfacesRawBits(t *testing.T) {
	schema := NewSchema("spare", ByteOrderUnspecified,
		F("res", &ReservedField{Length: 4, Decode: true}),
		F("tail", &BitField{Length: 4}),
	)

	rec, _, err := schema.ParseBytes([]byte{0xAB})
	require.NoError(t, err)
	assert.Equal(t, uint64(0xA), rec.Values["res"])
	assert.Equal(t, uint64(0xB), rec.Values["tail"])

	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB}, written)
}
