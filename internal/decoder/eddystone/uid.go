package eddystone

import (
	"fmt"

	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
)

// tx power 1 + namespace 10 + instance 6
const uidLen = 17

func parseUID(frame []byte) (beacon.Reading, error) {
	if len(frame) < uidLen {
		return beacon.Reading{}, fmt.Errorf("%w: UID frame %d bytes, need %d", decoder.ErrTooShort, len(frame), uidLen)
	}
	uid := beacon.EddystoneUID{TxPower: int8(frame[0])}
	copy(uid.Namespace[:], frame[1:11])
	copy(uid.Instance[:], frame[11:17])
	return beacon.New(uid), nil
}
