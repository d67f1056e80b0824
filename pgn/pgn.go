// Package pgn declares binfield schemas for a handful of NMEA 2000
// Parameter Group Numbers, the same records the teacher's hand-written
// canboat decoder parsed field-by-field. Where the original walked a
// generated FieldType switch over bit offsets, these are declared once as
// data and run through the shared binfield engine.
package pgn

import "github.com/aldas/go-binfield"

// Numbered PGNs from the canboat PGN database, used as registry keys.
const (
	PGNSystemTime        = 126992
	PGNGNSSPositionData  = 129029
	PGNEngineParamsRapid = 127488
)

// SystemTime mirrors PGN 126992: a SID byte, a lookup-enumerated time
// source, and days/seconds-since-midnight timestamp fields. The date and
// time fields use the all-ones/all-ones-minus-one/all-ones-minus-two
// sentinel convention canboat calls "no data / out of range / reserved";
// sid is a plain integer.
var SystemTime = binfield.NewSchema("SystemTime", binfield.LittleEndian,
	binfield.F("sid", binfield.NewInteger(1, binfield.ByteOrderUnspecified, false)),
	binfield.F("source", binfield.NewEnum(
		&binfield.BitField{Length: 4},
		&binfield.Enumeration{Name: "timeSource", Members: []binfield.EnumMember{
			{Name: "GPS", Value: 0},
			{Name: "GLONASS", Value: 1},
			{Name: "RadioStation", Value: 2},
			{Name: "LocalCesiumClock", Value: 3},
			{Name: "LocalRubidiumClock", Value: 4},
			{Name: "LocalCrystalClock", Value: 5},
		}},
	)),
	binfield.F("reserved", &binfield.BitField{Length: 4, Realign: true}),
	binfield.F("date", daysField()),
	binfield.F("time", secondsField()),
)

// GNSSPositionData mirrors the fixed-position prefix of PGN 129029:
// latitude/longitude as signed 64-bit 1e-16-degree fixed-point integers,
// scaled down to float degrees at the field boundary via StructField's
// float path would lose precision, so these stay raw int64 fields; altitude
// is a 32-bit IEEE-754 float, matching canboat's FieldTypeFloat.
var GNSSPositionData = binfield.NewSchema("GNSSPositionData", binfield.LittleEndian,
	binfield.F("sid", binfield.NewInteger(1, binfield.ByteOrderUnspecified, false)),
	binfield.F("latitude", binfield.NewInteger(8, binfield.ByteOrderUnspecified, true)),
	binfield.F("longitude", binfield.NewInteger(8, binfield.ByteOrderUnspecified, true)),
	binfield.F("altitude", binfield.NewStruct(binfield.KindFloat32, binfield.ByteOrderUnspecified)),
)

// EngineParamsRapid mirrors PGN 127488: engine instance, RPM (1/4 rpm
// units), boost pressure and a signed tilt/trim; all but the engine
// instance are SentinelAware per the canboat NUMBER field convention.
var EngineParamsRapid = binfield.NewSchema("EngineParamsRapid", binfield.LittleEndian,
	binfield.F("engineInstance", binfield.NewInteger(1, binfield.ByteOrderUnspecified, false)),
	binfield.F("engineSpeed", &binfield.IntegerField{Length: 2, SentinelAware: true}),
	binfield.F("engineBoostPressure", &binfield.IntegerField{Length: 2, SentinelAware: true}),
	binfield.F("engineTiltTrim", &binfield.IntegerField{Length: 1, Signed: true, SentinelAware: true}),
	binfield.F("reserved", &binfield.BitField{Length: 8}),
)

func daysField() *binfield.IntegerField {
	return &binfield.IntegerField{Length: 2, SentinelAware: true}
}

func secondsField() *binfield.IntegerField {
	return &binfield.IntegerField{Length: 4, SentinelAware: true}
}

// All is every schema this package declares, keyed by PGN number, ready to
// hand to a binfieldcache.Registry.
func All() map[int]*binfield.Schema {
	return map[int]*binfield.Schema{
		PGNSystemTime:        SystemTime,
		PGNGNSSPositionData:  GNSSPositionData,
		PGNEngineParamsRapid: EngineParamsRapid,
	}
}
