package eddystone

import (
	"encoding/binary"
	"fmt"

	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
)

const (
	// version 1 + battery 2 + temperature 2 + adv count 4 + uptime 4
	tlmLen         = 13
	tlmUnencrypted = 0x00
)

func parseTLM(frame []byte) (beacon.Reading, error) {
	if len(frame) < tlmLen {
		return beacon.Reading{}, fmt.Errorf("%w: TLM frame %d bytes, need %d", decoder.ErrTooShort, len(frame), tlmLen)
	}
	if frame[0] != tlmUnencrypted {
		return beacon.Reading{}, fmt.Errorf("%w: version 0x%02X", decoder.ErrEncryptedTLM, frame[0])
	}
	// Temperature is signed 8.8 fixed point.
	temp := int16(binary.BigEndian.Uint16(frame[3:5]))
	return beacon.New(beacon.EddystoneTLM{
		BatteryMV:          binary.BigEndian.Uint16(frame[1:3]),
		TemperatureCelsius: float32(temp) / 256.0,
		AdvCount:           binary.BigEndian.Uint32(frame[5:9]),
		UptimeSeconds:      binary.BigEndian.Uint32(frame[9:13]) / 10,
	}), nil
}
