package gobeacon

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/d21d3q/gobeacon/internal/ad"
	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
	"github.com/d21d3q/gobeacon/internal/decoder/altbeacon"
	"github.com/d21d3q/gobeacon/internal/decoder/eddystone"
	"github.com/d21d3q/gobeacon/internal/decoder/ibeacon"
)

// MaxLegacyPayload is the size of the advertising data field of a legacy BLE
// advertising PDU.
const MaxLegacyPayload = 31

// maxExtendedPayload bounds AnalyzeHex input when extended payloads are
// allowed; an AD length byte cannot describe more than this.
const maxExtendedPayload = 255

// Result captures the outcome of AnalyzeHex.
type Result struct {
	Format    string
	RawHex    string
	ByteCount int
	Reading   Reading
	Records   []Record
	// Reason explains why no beacon was recognised. Empty on success.
	Reason string
}

// Recognized reports whether a beacon format matched.
func (r Result) Recognized() bool { return r.Reading.Valid() }

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"format":     r.Format,
		"byte_count": r.ByteCount,
		"raw_hex":    r.RawHex,
	}
	if r.Reading.Valid() {
		summary["fields"] = r.Reading.Fields()
	}
	if r.Reason != "" {
		summary["reason"] = r.Reason
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("format: %s bytes:%d raw:%s (marshal error: %v)", r.Format, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// Parse decodes an advertising payload, trying iBeacon, AltBeacon and then
// Eddystone. It reports false when no format is recognised.
func Parse(data []byte) (Reading, bool) {
	reading, err := Decode(data)
	return reading, err == nil
}

// Decode is Parse with a diagnostic error. The error always wraps
// ErrNoBeacon, and the failing decoder's reason when one applied.
func Decode(data []byte) (Reading, error) {
	return decoder.Dispatch(data, decoder.Ordered())
}

// TryParseIBeacon decodes data only as an iBeacon.
func TryParseIBeacon(data []byte) (Reading, bool) {
	return tryParse(ibeacon.Decoder{}, data)
}

// TryParseAltBeacon decodes data only as an AltBeacon.
func TryParseAltBeacon(data []byte) (Reading, bool) {
	return tryParse(altbeacon.Decoder{}, data)
}

// TryParseEddystone decodes data only as an Eddystone UID, URL or TLM frame.
func TryParseEddystone(data []byte) (Reading, bool) {
	return tryParse(eddystone.Decoder{}, data)
}

func tryParse(dec decoder.Decoder, data []byte) (Reading, bool) {
	reading, err := decoder.Dispatch(data, []decoder.Decoder{dec})
	return reading, err == nil
}

// ScanForADType returns the value of the first AD structure of adType.
func ScanForADType(data []byte, adType byte) ([]byte, bool) {
	return ad.FindType(data, adType)
}

// ScanForManufacturer returns manufacturer data for companyID without the
// company identifier.
func ScanForManufacturer(data []byte, companyID uint16) ([]byte, bool) {
	return ad.FindManufacturer(data, companyID)
}

// ScanForService returns 16-bit service data for uuid, UUID bytes included.
func ScanForService(data []byte, uuid uint16) ([]byte, bool) {
	return ad.FindService(data, uuid)
}

// Formats lists the supported beacon formats in dispatch order.
func Formats() []string {
	return decoder.Names()
}

// AnalyzeHex decodes a hex encoded advertising payload.
func AnalyzeHex(raw string) (Result, error) {
	return AnalyzeHexWithOptions(raw, AnalyzeOptions{})
}

// AnalyzeHexWithOptions decodes a hex encoded payload with custom options. A
// payload that is valid hex but carries no known beacon is not an error; the
// returned Result has Format "unknown" and a Reason.
func AnalyzeHexWithOptions(raw string, opts AnalyzeOptions) (Result, error) {
	decoders, err := opts.decoders()
	if err != nil {
		return Result{}, err
	}
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	limit := MaxLegacyPayload
	if opts.Extended {
		limit = maxExtendedPayload
	}
	if len(data) > limit {
		return Result{}, fmt.Errorf("payload is %d bytes, limit is %d", len(data), limit)
	}

	result := Result{
		Format:    beacon.KindUnknown.String(),
		RawHex:    strings.ToUpper(hex.EncodeToString(data)),
		ByteCount: len(data),
		Records:   ad.Records(data),
	}
	reading, err := decoder.Dispatch(data, decoders)
	if err != nil {
		if !errors.Is(err, ErrNoBeacon) {
			return result, err
		}
		result.Reason = err.Error()
		return result, nil
	}
	result.Format = reading.Kind().String()
	result.Reading = reading
	return result, nil
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X") {
		clean = clean[2:]
	}
	if clean == "" {
		return nil, fmt.Errorf("empty payload")
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex payload must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' || r == ':' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
