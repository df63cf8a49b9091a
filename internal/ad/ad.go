package ad

import "encoding/binary"

// Common AD types used by the beacon decoders.
const (
	TypeFlags            byte = 0x01
	TypeServiceData16    byte = 0x16
	TypeManufacturerData byte = 0xFF
)

// Record is a single [Length][Type][Value...] structure. Value aliases the
// scanned buffer and must not outlive it.
type Record struct {
	Offset int
	Length byte
	Type   byte
	Value  []byte
}

// walk visits each well-formed record in order until visit returns true. A
// zero length byte or a record running past the end of data ends the walk.
func walk(data []byte, visit func(Record) bool) {
	pos := 0
	for pos < len(data) {
		l := int(data[pos])
		if l == 0 {
			return
		}
		if pos+1+l > len(data) {
			return
		}
		rec := Record{
			Offset: pos,
			Length: byte(l),
			Type:   data[pos+1],
			Value:  data[pos+2 : pos+1+l : pos+1+l],
		}
		if visit(rec) {
			return
		}
		pos += 1 + l
	}
}

// Records returns every well-formed record in data, stopping at the first
// terminator or truncated record.
func Records(data []byte) []Record {
	var out []Record
	walk(data, func(r Record) bool {
		out = append(out, r)
		return false
	})
	return out
}

// findByType returns the first record of adType whose value satisfies match.
func findByType(data []byte, adType byte, match func(value []byte) bool) (Record, bool) {
	var (
		found Record
		ok    bool
	)
	walk(data, func(r Record) bool {
		if r.Type != adType {
			return false
		}
		if match != nil && !match(r.Value) {
			return false
		}
		found, ok = r, true
		return true
	})
	return found, ok
}

// FindType returns the value bytes (everything after the type byte) of the
// first record with the given AD type.
func FindType(data []byte, adType byte) ([]byte, bool) {
	rec, ok := findByType(data, adType, nil)
	if !ok {
		return nil, false
	}
	return rec.Value, true
}

// FindManufacturer locates Manufacturer Specific Data for companyID and returns
// the bytes following the two-byte company identifier.
func FindManufacturer(data []byte, companyID uint16) ([]byte, bool) {
	rec, ok := findByType(data, TypeManufacturerData, keyMatcher(companyID))
	if !ok {
		return nil, false
	}
	return rec.Value[2:], true
}

// FindService locates 16-bit Service Data for uuid. Unlike FindManufacturer the
// returned bytes still start with the little-endian UUID.
func FindService(data []byte, uuid uint16) ([]byte, bool) {
	rec, ok := findByType(data, TypeServiceData16, keyMatcher(uuid))
	if !ok {
		return nil, false
	}
	return rec.Value, true
}

func keyMatcher(key uint16) func([]byte) bool {
	return func(value []byte) bool {
		return len(value) >= 2 && binary.LittleEndian.Uint16(value[:2]) == key
	}
}

// TypeName returns the assigned-numbers name of common AD types, or "" when
// the type is not one of them.
func TypeName(t byte) string {
	switch t {
	case TypeFlags:
		return "Flags"
	case 0x02:
		return "Incomplete List of 16-bit Service UUIDs"
	case 0x03:
		return "Complete List of 16-bit Service UUIDs"
	case 0x06:
		return "Incomplete List of 128-bit Service UUIDs"
	case 0x07:
		return "Complete List of 128-bit Service UUIDs"
	case 0x08:
		return "Shortened Local Name"
	case 0x09:
		return "Complete Local Name"
	case 0x0A:
		return "Tx Power Level"
	case TypeServiceData16:
		return "Service Data - 16-bit UUID"
	case 0x20:
		return "Service Data - 32-bit UUID"
	case 0x21:
		return "Service Data - 128-bit UUID"
	case TypeManufacturerData:
		return "Manufacturer Specific Data"
	default:
		return ""
	}
}
