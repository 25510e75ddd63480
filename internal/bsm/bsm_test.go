package bsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc(lat, long int32, speed, heading uint16) string {
	return `{"metadata":{"recordType":"bsmTx"},"payload":{"data":{"coreData":{"id":"BEEF1234","secMark":1234,"lat":` +
		itoa(lat) + `,"long":` + itoa(long) + `,"speed":` + itoa32(int32(speed)) + `,"heading":` + itoa32(int32(heading)) + `},"partII":[{"id":"VehicleSafetyExtensions"}],"vehSafetyExt":{"events":"none"}}}}`
}

func itoa(v int32) string {
	if v < 0 {
		return "-" + itoa(-v)
	}
	if v == 0 {
		return "0"
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}

func itoa32(v int32) string { return itoa(v) }

func TestDecodeExtractsCoreFields(t *testing.T) {
	raw := sampleDoc(359610000, -839200000, 500, 9000)

	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "BEEF1234", doc.IDRaw)
	assert.True(t, doc.PositionAvail)
	assert.InDelta(t, 35.9610, doc.Position.Lat, 1e-6)
	assert.InDelta(t, -83.9200, doc.Position.Lon, 1e-6)
	assert.True(t, doc.SpeedAvail)
	assert.InDelta(t, 10.0, doc.SpeedMPS, 1e-9)
	assert.True(t, doc.HeadingAvail)
	assert.InDelta(t, 112.5, doc.HeadingDeg, 1e-9)
	assert.True(t, doc.HasRequiredFields())
}

func TestDecodeSentinelPositionIsUnavailable(t *testing.T) {
	raw := sampleDoc(int32(SentinelCoordinate), int32(SentinelCoordinate), 500, 9000)

	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	assert.True(t, doc.PositionSet)
	assert.False(t, doc.PositionAvail)
	assert.False(t, doc.HasRequiredFields())
}

func TestDecodeSentinelSpeedIsUnavailable(t *testing.T) {
	raw := sampleDoc(359610000, -839200000, uint16(SentinelSpeedRaw), 9000)

	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	assert.True(t, doc.SpeedSet)
	assert.False(t, doc.SpeedAvail)
	assert.False(t, doc.HasRequiredFields())
}

func TestDecodeMissingSecMarkFailsRequiredFields(t *testing.T) {
	raw := `{"payload":{"data":{"coreData":{"id":"BEEF1234","lat":359610000,"long":-839200000,"speed":500}}}}`

	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	assert.False(t, doc.SecMarkSet)
	assert.False(t, doc.HasRequiredFields())
}

func TestRedactNullsConfiguredFieldsOnly(t *testing.T) {
	raw := sampleDoc(359610000, -839200000, 500, 9000)
	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	out, err := doc.Redact([]string{"partII", "vehSafetyExt"})
	require.NoError(t, err)

	redacted, err := Decode(out)
	require.NoError(t, err)

	partII, ok := redacted.data.get("partII")
	require.True(t, ok)
	assert.Equal(t, "null", string(partII))

	vse, ok := redacted.data.get("vehSafetyExt")
	require.True(t, ok)
	assert.Equal(t, "null", string(vse))

	assert.Equal(t, "BEEF1234", redacted.IDRaw)
}

func TestRedactionIsIdempotent(t *testing.T) {
	raw := sampleDoc(359610000, -839200000, 500, 9000)
	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	once, err := doc.Redact([]string{"partII"})
	require.NoError(t, err)

	doc2, err := Decode(once)
	require.NoError(t, err)
	twice, err := doc2.Redact([]string{"partII"})
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
}

func TestRedactPreservesKeyOrder(t *testing.T) {
	raw := `{"a":1,"b":{"data":{"coreData":{"id":"BEEF1234","secMark":1,"lat":1,"long":1,"speed":1},"x":1,"y":2,"z":3}},"payload":{"data":{}}}`
	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestValidIDAcceptsEightHexDigitsWithSeparators(t *testing.T) {
	assert.True(t, ValidID("BEEF1234"))
	assert.True(t, ValidID("be-ef-12-34"))
	assert.True(t, ValidID("beef:1234"))
}

func TestValidIDRejectsWrongLengthOrNonHex(t *testing.T) {
	assert.False(t, ValidID("BEEF123"))
	assert.False(t, ValidID("ZZZZZZZZ"))
	assert.False(t, ValidID(""))
}
