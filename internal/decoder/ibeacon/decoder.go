package ibeacon

import (
	"encoding/binary"
	"fmt"

	"github.com/d21d3q/gobeacon/internal/ad"
	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
)

const (
	companyApple = 0x004C
	prefixType   = 0x02
	prefixLength = 0x15
	// prefix 2 + UUID 16 + major 2 + minor 2 + tx power 1
	payloadLen = 23
	priority   = 10
)

func init() {
	decoder.Register(decoder.Registration{Name: Name, Priority: priority}, Decoder{})
}

// Name is the registry name of the iBeacon decoder.
const Name = "ibeacon"

// Decoder decodes Apple iBeacon manufacturer data.
type Decoder struct{}

func (Decoder) Name() string { return Name }

// CanParse reports whether data carries Apple manufacturer data starting with
// the iBeacon prefix.
func (Decoder) CanParse(data []byte) bool {
	mfg, ok := ad.FindManufacturer(data, companyApple)
	return ok && hasPrefix(mfg)
}

// Parse extracts UUID, major, minor and the calibrated one-meter RSSI.
func (Decoder) Parse(data []byte) (beacon.Reading, error) {
	mfg, ok := ad.FindManufacturer(data, companyApple)
	if !ok {
		return beacon.Reading{}, decoder.ErrRecordNotFound
	}
	if len(mfg) < payloadLen {
		return beacon.Reading{}, fmt.Errorf("%w: %d bytes, need %d", decoder.ErrTooShort, len(mfg), payloadLen)
	}
	if !hasPrefix(mfg) {
		return beacon.Reading{}, fmt.Errorf("%w: % X", decoder.ErrPrefixMismatch, mfg[:2])
	}
	var id [16]byte
	copy(id[:], mfg[2:18])
	return beacon.New(beacon.IBeacon{
		UUID:    beacon.FormatUUID(id),
		Major:   binary.BigEndian.Uint16(mfg[18:20]),
		Minor:   binary.BigEndian.Uint16(mfg[20:22]),
		TxPower: int8(mfg[22]),
	}), nil
}

func hasPrefix(mfg []byte) bool {
	return len(mfg) >= 2 && mfg[0] == prefixType && mfg[1] == prefixLength
}
