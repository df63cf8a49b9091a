package gobeacon

import (
	"github.com/d21d3q/gobeacon/internal/ad"
	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
)

type (
	Reading      = beacon.Reading
	Kind         = beacon.Kind
	Payload      = beacon.Payload
	IBeacon      = beacon.IBeacon
	EddystoneUID = beacon.EddystoneUID
	EddystoneURL = beacon.EddystoneURL
	EddystoneTLM = beacon.EddystoneTLM
	AltBeacon    = beacon.AltBeacon
	Record       = ad.Record
)

const (
	KindUnknown      = beacon.KindUnknown
	KindIBeacon      = beacon.KindIBeacon
	KindEddystoneUID = beacon.KindEddystoneUID
	KindEddystoneURL = beacon.KindEddystoneURL
	KindEddystoneTLM = beacon.KindEddystoneTLM
	KindAltBeacon    = beacon.KindAltBeacon
)

// Errors wrapped by Decode. Only ErrNoBeacon is part of the stable contract;
// the others name the reason a matching decoder gave up.
var (
	ErrNoBeacon       = decoder.ErrNoBeacon
	ErrEmptyInput     = decoder.ErrEmptyInput
	ErrTooShort       = decoder.ErrTooShort
	ErrUnknownFrame   = decoder.ErrUnknownFrame
	ErrEncryptedTLM   = decoder.ErrEncryptedTLM
	ErrUnknownScheme  = decoder.ErrUnknownScheme
	ErrPrefixMismatch = decoder.ErrPrefixMismatch
)

// TypeName names common AD types, "" for others.
func TypeName(adType byte) string {
	return ad.TypeName(adType)
}
