package binfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicField_RoundTrip(t *testing.T) {
	schema := NewSchema("magic", ByteOrderUnspecified, F("hdr", NewMagic([]byte("BF01"))))

	rec, n, err := schema.ParseBytes([]byte("BF01"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("BF01"), rec.Values["hdr"])

	written, err := schema.WriteBytes(rec)
	require.NoError(t, err)
	assert.Equal(t, []byte("BF01"), written)
}

func TestMagicField_Mismatch(t *testing.T) {
	schema := NewSchema("magic", ByteOrderUnspecified, F("hdr", NewMagic([]byte("BF01"))))
	_, _, err := schema.ParseBytes([]byte("XXXX"))
	assert.ErrorIs(t, err, ErrMagicMismatch)
}

func TestMagicField_DefaultsWhenUnset(t *testing.T) {
	schema := NewSchema("magic", ByteOrderUnspecified, F("hdr", NewMagic([]byte("BF01"))))
	written, err := schema.WriteBytes(schema.New(nil))
	require.NoError(t, err)
	assert.Equal(t, []byte("BF01"), written)
}
