package ibeacon

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
)

var uuidPattern = regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}$`)

func packet(uuid [16]byte, major, minor uint16, tx byte) []byte {
	p := []byte{0x02, 0x01, 0x06, 0x1A, 0xFF, 0x4C, 0x00, 0x02, 0x15}
	p = append(p, uuid[:]...)
	p = append(p, byte(major>>8), byte(major), byte(minor>>8), byte(minor), tx)
	return p
}

func TestParse(t *testing.T) {
	id := [16]byte{0x5F, 0x2D, 0xD8, 0x96, 0xB8, 0x86, 0x45, 0x49, 0xAE, 0x01, 0xE4, 0x1A, 0xCD, 0x7A, 0x35, 0x4A}
	data := packet(id, 1, 2, 0xC5)

	require.True(t, Decoder{}.CanParse(data))
	reading, err := Decoder{}.Parse(data)
	require.NoError(t, err)
	require.Equal(t, beacon.KindIBeacon, reading.Kind())

	ib, ok := reading.IBeacon()
	require.True(t, ok)
	require.Equal(t, "5F2DD896-B886-4549-AE01-E41ACD7A354A", ib.UUID)
	require.Equal(t, uint16(1), ib.Major)
	require.Equal(t, uint16(2), ib.Minor)
	require.Equal(t, int8(-59), ib.TxPower)
}

func TestParseRoundTripsFields(t *testing.T) {
	cases := []struct {
		id    [16]byte
		major uint16
		minor uint16
		tx    byte
	}{
		{[16]byte{}, 0, 0, 0x00},
		{[16]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFF, 0xFFFF, 0x7F},
		{[16]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF, 0xFE, 0xDC, 0xBA, 0x98, 0x76, 0x54, 0x32, 0x10}, 0x1234, 0xABCD, 0x80},
	}
	for _, tc := range cases {
		reading, err := Decoder{}.Parse(packet(tc.id, tc.major, tc.minor, tc.tx))
		require.NoError(t, err)
		ib, ok := reading.IBeacon()
		require.True(t, ok)
		require.Regexp(t, uuidPattern, ib.UUID)
		require.Equal(t, beacon.FormatUUID(tc.id), ib.UUID)
		require.Equal(t, tc.major, ib.Major)
		require.Equal(t, tc.minor, ib.Minor)
		require.Equal(t, int8(tc.tx), ib.TxPower)
	}
}

func TestRejects(t *testing.T) {
	good := packet([16]byte{}, 1, 2, 0xC5)

	wrongPrefix := append([]byte(nil), good...)
	wrongPrefix[8] = 0x16

	short := []byte{0x06, 0xFF, 0x4C, 0x00, 0x02, 0x15, 0x00}

	otherCompany := append([]byte(nil), good...)
	otherCompany[5] = 0x4D

	cases := []struct {
		name      string
		data      []byte
		canParse  bool
		wantError error
	}{
		{"wrong prefix", wrongPrefix, false, decoder.ErrPrefixMismatch},
		{"too short", short, true, decoder.ErrTooShort},
		{"other company", otherCompany, false, decoder.ErrRecordNotFound},
		{"truncated", good[:len(good)-1], false, decoder.ErrRecordNotFound},
		{"empty", nil, false, decoder.ErrRecordNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.canParse, Decoder{}.CanParse(tc.data))
			reading, err := Decoder{}.Parse(tc.data)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.wantError), "got %v", err)
			require.False(t, reading.Valid())
		})
	}
}

func TestEddystoneOnlyPacketNotFound(t *testing.T) {
	data := []byte{0x03, 0x03, 0xAA, 0xFE, 0x06, 0x16, 0xAA, 0xFE, 0x10, 0xF4, 0x02}
	require.False(t, Decoder{}.CanParse(data))
	_, err := Decoder{}.Parse(data)
	require.ErrorIs(t, err, decoder.ErrRecordNotFound)
}
