package pgn

import (
	"testing"

	"github.com/aldas/go-binfield"
	"github.com/aldas/go-binfield/internal/bftest"
	"github.com/stretchr/testify/require"
)

func TestEngineParamsRapid_RoundTrip(t *testing.T) {
	rec := EngineParamsRapid.New(map[string]binfield.Value{
		"engineInstance":      uint64(0),
		"engineSpeed":         uint64(2400),
		"engineBoostPressure": uint64(150),
		"engineTiltTrim":      int64(-5),
		"reserved":            uint64(0xFF),
	})

	written, err := EngineParamsRapid.WriteBytes(rec)
	require.NoError(t, err)
	require.Len(t, written, 7)

	out, n, err := EngineParamsRapid.ParseBytes(written)
	require.NoError(t, err)
	require.Equal(t, 7, n)

	bftest.AssertRecordValues(t, rec.Values, out.Values, 0)
}

func TestGNSSPositionData_RoundTrip(t *testing.T) {
	rec := GNSSPositionData.New(map[string]binfield.Value{
		"sid":       uint64(7),
		"latitude":  int64(606789000000000000),
		"longitude": int64(247654300000000000),
		"altitude":  2.5,
	})

	written, err := GNSSPositionData.WriteBytes(rec)
	require.NoError(t, err)

	out, _, err := GNSSPositionData.ParseBytes(written)
	require.NoError(t, err)
	bftest.AssertRecordValues(t, rec.Values, out.Values, 1e-6)
}

func TestAll_ContainsEveryDeclaredSchema(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	require.Equal(t, SystemTime, all[PGNSystemTime])
}
