package decoder

import (
	"fmt"

	"github.com/d21d3q/gobeacon/internal/beacon"
)

// Dispatch tries decoders in order and returns the first successful reading.
// A decoder whose CanParse accepts data but whose Parse fails does not stop
// the search; its error is reported only if nothing else matches.
func Dispatch(data []byte, decoders []Decoder) (beacon.Reading, error) {
	if len(data) == 0 {
		return beacon.Reading{}, fmt.Errorf("%w: %w", ErrNoBeacon, ErrEmptyInput)
	}
	var lastErr error
	for _, dec := range decoders {
		if !dec.CanParse(data) {
			continue
		}
		reading, err := dec.Parse(data)
		if err == nil {
			return reading, nil
		}
		lastErr = fmt.Errorf("%s: %w", dec.Name(), err)
	}
	if lastErr != nil {
		return beacon.Reading{}, fmt.Errorf("%w: %w", ErrNoBeacon, lastErr)
	}
	return beacon.Reading{}, ErrNoBeacon
}
