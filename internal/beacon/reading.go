package beacon

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies which beacon format a Reading carries.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindIBeacon
	KindEddystoneUID
	KindEddystoneURL
	KindEddystoneTLM
	KindAltBeacon
)

var kindNames = map[Kind]string{
	KindUnknown:      "unknown",
	KindIBeacon:      "ibeacon",
	KindEddystoneUID: "eddystone-uid",
	KindEddystoneURL: "eddystone-url",
	KindEddystoneTLM: "eddystone-tlm",
	KindAltBeacon:    "altbeacon",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Payload is implemented by the format-specific structs only.
type Payload interface {
	Kind() Kind
	fields() map[string]any
}

// Reading is the decoded result of one advertisement. The zero value is an
// invalid reading of KindUnknown.
type Reading struct {
	payload Payload
}

// New wraps a payload into a Reading.
func New(p Payload) Reading {
	return Reading{payload: p}
}

// Kind reports the populated variant.
func (r Reading) Kind() Kind {
	if r.payload == nil {
		return KindUnknown
	}
	return r.payload.Kind()
}

// Valid reports whether a variant is populated.
func (r Reading) Valid() bool { return r.payload != nil }

// Payload returns the populated variant, nil for an invalid reading.
func (r Reading) Payload() Payload { return r.payload }

func (r Reading) IBeacon() (IBeacon, bool) {
	p, ok := r.payload.(IBeacon)
	return p, ok
}

func (r Reading) EddystoneUID() (EddystoneUID, bool) {
	p, ok := r.payload.(EddystoneUID)
	return p, ok
}

func (r Reading) EddystoneURL() (EddystoneURL, bool) {
	p, ok := r.payload.(EddystoneURL)
	return p, ok
}

func (r Reading) EddystoneTLM() (EddystoneTLM, bool) {
	p, ok := r.payload.(EddystoneTLM)
	return p, ok
}

func (r Reading) AltBeacon() (AltBeacon, bool) {
	p, ok := r.payload.(AltBeacon)
	return p, ok
}

// Fields flattens the reading into a map keyed by snake_case field names. The
// "type" key always carries the kind name.
func (r Reading) Fields() map[string]any {
	out := map[string]any{}
	if r.payload != nil {
		out = r.payload.fields()
	}
	out["type"] = r.Kind().String()
	return out
}

func (r Reading) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

func (r Reading) MarshalYAML() (any, error) {
	return r.Fields(), nil
}

// IBeacon is Apple's proximity beacon.
type IBeacon struct {
	UUID    string
	Major   uint16
	Minor   uint16
	TxPower int8
}

func (IBeacon) Kind() Kind { return KindIBeacon }

func (p IBeacon) fields() map[string]any {
	return map[string]any{
		"uuid":     p.UUID,
		"major":    p.Major,
		"minor":    p.Minor,
		"tx_power": p.TxPower,
	}
}

// EddystoneUID is the Eddystone UID frame.
type EddystoneUID struct {
	Namespace [10]byte
	Instance  [6]byte
	TxPower   int8
}

func (EddystoneUID) Kind() Kind { return KindEddystoneUID }

func (p EddystoneUID) fields() map[string]any {
	return map[string]any{
		"namespace": HexString(p.Namespace[:]),
		"instance":  HexString(p.Instance[:]),
		"tx_power":  p.TxPower,
	}
}

// EddystoneURL is the Eddystone URL frame with the URL already expanded.
type EddystoneURL struct {
	URL     string
	TxPower int8
}

func (EddystoneURL) Kind() Kind { return KindEddystoneURL }

func (p EddystoneURL) fields() map[string]any {
	return map[string]any{
		"url":      p.URL,
		"tx_power": p.TxPower,
	}
}

// EddystoneTLM is an unencrypted Eddystone telemetry frame.
type EddystoneTLM struct {
	BatteryMV          uint16
	TemperatureCelsius float32
	AdvCount           uint32
	UptimeSeconds      uint32
}

func (EddystoneTLM) Kind() Kind { return KindEddystoneTLM }

func (p EddystoneTLM) fields() map[string]any {
	return map[string]any{
		"battery_mv":          p.BatteryMV,
		"temperature_celsius": p.TemperatureCelsius,
		"adv_count":           p.AdvCount,
		"uptime_seconds":      p.UptimeSeconds,
	}
}

// AltBeacon is the Radius Networks open beacon. TxPower holds the reference
// RSSI byte.
type AltBeacon struct {
	ID          [16]byte
	Major       uint16
	Minor       uint16
	TxPower     int8
	MfgReserved uint8
}

func (AltBeacon) Kind() Kind { return KindAltBeacon }

func (p AltBeacon) fields() map[string]any {
	return map[string]any{
		"id":           FormatUUID(p.ID),
		"major":        p.Major,
		"minor":        p.Minor,
		"tx_power":     p.TxPower,
		"mfg_reserved": p.MfgReserved,
	}
}

// FormatUUID renders 16 bytes as XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX in
// upper-case hex.
func FormatUUID(b [16]byte) string {
	return strings.ToUpper(uuid.UUID(b).String())
}

// HexString renders bytes as contiguous upper-case hex.
func HexString(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
