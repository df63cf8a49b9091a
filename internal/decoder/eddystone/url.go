package eddystone

import (
	"fmt"
	"strings"

	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
)

// tx power 1 + scheme 1
const urlMinLen = 2

var schemes = [...]string{
	0x00: "http://www.",
	0x01: "https://www.",
	0x02: "http://",
	0x03: "https://",
}

var suffixes = [...]string{
	0x00: ".com/",
	0x01: ".org/",
	0x02: ".edu/",
	0x03: ".net/",
	0x04: ".info/",
	0x05: ".biz/",
	0x06: ".gov/",
	0x07: ".com",
	0x08: ".org",
	0x09: ".edu",
	0x0A: ".net",
	0x0B: ".info",
	0x0C: ".biz",
	0x0D: ".gov",
}

// Scheme expands an Eddystone URL scheme prefix code.
func Scheme(code byte) (string, bool) {
	if int(code) >= len(schemes) {
		return "", false
	}
	return schemes[code], true
}

// Suffix expands an Eddystone URL expansion code.
func Suffix(code byte) (string, bool) {
	if int(code) >= len(suffixes) {
		return "", false
	}
	return suffixes[code], true
}

// ExpandURL decodes an encoded URL: a scheme code followed by characters and
// expansion codes. Bytes without an expansion are copied verbatim.
func ExpandURL(encoded []byte) (string, error) {
	if len(encoded) == 0 {
		return "", fmt.Errorf("%w: missing scheme", decoder.ErrTooShort)
	}
	scheme, ok := Scheme(encoded[0])
	if !ok {
		return "", fmt.Errorf("%w: 0x%02X", decoder.ErrUnknownScheme, encoded[0])
	}
	var b strings.Builder
	b.Grow(len(scheme) + 2*len(encoded))
	b.WriteString(scheme)
	for _, c := range encoded[1:] {
		if s, ok := Suffix(c); ok {
			b.WriteString(s)
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func parseURL(frame []byte) (beacon.Reading, error) {
	if len(frame) < urlMinLen {
		return beacon.Reading{}, fmt.Errorf("%w: URL frame %d bytes, need %d", decoder.ErrTooShort, len(frame), urlMinLen)
	}
	url, err := ExpandURL(frame[1:])
	if err != nil {
		return beacon.Reading{}, err
	}
	return beacon.New(beacon.EddystoneURL{
		URL:     url,
		TxPower: int8(frame[0]),
	}), nil
}
