package altbeacon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
)

var testID = [16]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

func packet() []byte {
	p := []byte{0x1B, 0xFF, 0x18, 0x01, 0xBE, 0xAC}
	p = append(p, testID[:]...)
	// reference RSSI, reserved, major, minor
	return append(p, 0xC5, 0x00, 0x00, 0x01, 0x00, 0x02)
}

func TestParse(t *testing.T) {
	data := packet()
	require.True(t, Decoder{}.CanParse(data))

	reading, err := Decoder{}.Parse(data)
	require.NoError(t, err)
	require.Equal(t, beacon.KindAltBeacon, reading.Kind())

	alt, ok := reading.AltBeacon()
	require.True(t, ok)
	require.Equal(t, testID, alt.ID)
	require.Equal(t, int8(-59), alt.TxPower)
	require.Equal(t, uint8(0), alt.MfgReserved)
	require.Equal(t, uint16(1), alt.Major)
	require.Equal(t, uint16(2), alt.Minor)
	require.Equal(t, "00112233-4455-6677-8899-AABBCCDDEEFF", reading.Fields()["id"])
}

func TestParseTrailingByteIgnored(t *testing.T) {
	data := append(packet(), 0x42)
	data[0]++
	alt, ok := mustParse(t, data).AltBeacon()
	require.True(t, ok)
	require.Equal(t, uint16(2), alt.Minor)
}

func TestRejects(t *testing.T) {
	wrongCode := packet()
	wrongCode[5] = 0xAD

	short := packet()[:20]
	short[0] = 19

	ibeacon := []byte{0x06, 0xFF, 0x4C, 0x00, 0x02, 0x15, 0x00}

	cases := []struct {
		name     string
		data     []byte
		canParse bool
		want     error
	}{
		{"wrong code", wrongCode, false, decoder.ErrPrefixMismatch},
		{"too short", short, true, decoder.ErrTooShort},
		{"apple data", ibeacon, false, decoder.ErrRecordNotFound},
		{"truncated", packet()[:27], false, decoder.ErrRecordNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.canParse, Decoder{}.CanParse(tc.data))
			reading, err := Decoder{}.Parse(tc.data)
			require.ErrorIs(t, err, tc.want)
			require.False(t, reading.Valid())
		})
	}
}

func mustParse(t *testing.T, data []byte) beacon.Reading {
	t.Helper()
	reading, err := Decoder{}.Parse(data)
	require.NoError(t, err)
	return reading
}
