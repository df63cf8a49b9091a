package altbeacon

import (
	"encoding/binary"
	"fmt"

	"github.com/d21d3q/gobeacon/internal/ad"
	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
)

// Name is the registry name of the AltBeacon decoder.
const Name = "altbeacon"

const (
	companyRadius = 0x0118
	beaconCode0   = 0xBE
	beaconCode1   = 0xAC
	// code 2 + id 16 + reference RSSI 1 + reserved 1 + major 2 + minor 2
	payloadLen = 24
	priority   = 20
)

func init() {
	decoder.Register(decoder.Registration{Name: Name, Priority: priority}, Decoder{})
}

// Decoder decodes AltBeacon advertisements published under the Radius
// Networks company identifier.
type Decoder struct{}

func (Decoder) Name() string { return Name }

func (Decoder) CanParse(data []byte) bool {
	mfg, ok := ad.FindManufacturer(data, companyRadius)
	return ok && hasCode(mfg)
}

func (Decoder) Parse(data []byte) (beacon.Reading, error) {
	mfg, ok := ad.FindManufacturer(data, companyRadius)
	if !ok {
		return beacon.Reading{}, decoder.ErrRecordNotFound
	}
	if len(mfg) < payloadLen {
		return beacon.Reading{}, fmt.Errorf("%w: %d bytes, need %d", decoder.ErrTooShort, len(mfg), payloadLen)
	}
	if !hasCode(mfg) {
		return beacon.Reading{}, fmt.Errorf("%w: % X", decoder.ErrPrefixMismatch, mfg[:2])
	}
	out := beacon.AltBeacon{
		TxPower:     int8(mfg[18]),
		MfgReserved: mfg[19],
		Major:       binary.BigEndian.Uint16(mfg[20:22]),
		Minor:       binary.BigEndian.Uint16(mfg[22:24]),
	}
	copy(out.ID[:], mfg[2:18])
	return beacon.New(out), nil
}

func hasCode(mfg []byte) bool {
	return len(mfg) >= 2 && mfg[0] == beaconCode0 && mfg[1] == beaconCode1
}
