package beacon

import (
	"fmt"
	"strings"
)

// String renders the reading as indented "Label: value" lines, the way the
// serial console of a scanner would print it.
func (r Reading) String() string {
	var b strings.Builder
	switch p := r.payload.(type) {
	case IBeacon:
		b.WriteString("iBeacon\n")
		fmt.Fprintf(&b, "  UUID: %s\n", p.UUID)
		fmt.Fprintf(&b, "  Major: %d\n", p.Major)
		fmt.Fprintf(&b, "  Minor: %d\n", p.Minor)
		fmt.Fprintf(&b, "  TX Power: %d dBm\n", p.TxPower)
	case EddystoneUID:
		b.WriteString("Eddystone-UID\n")
		fmt.Fprintf(&b, "  Namespace ID: %s\n", HexString(p.Namespace[:]))
		fmt.Fprintf(&b, "  Instance ID: %s\n", HexString(p.Instance[:]))
		fmt.Fprintf(&b, "  TX Power: %d dBm\n", p.TxPower)
	case EddystoneURL:
		b.WriteString("Eddystone-URL\n")
		fmt.Fprintf(&b, "  URL: %s\n", p.URL)
		fmt.Fprintf(&b, "  TX Power: %d dBm\n", p.TxPower)
	case EddystoneTLM:
		b.WriteString("Eddystone-TLM\n")
		fmt.Fprintf(&b, "  Battery Voltage: %d mV\n", p.BatteryMV)
		fmt.Fprintf(&b, "  Temperature: %.2f °C\n", p.TemperatureCelsius)
		fmt.Fprintf(&b, "  Advertisement Count: %d\n", p.AdvCount)
		fmt.Fprintf(&b, "  Uptime: %d seconds\n", p.UptimeSeconds)
	case AltBeacon:
		b.WriteString("AltBeacon\n")
		fmt.Fprintf(&b, "  Beacon ID: %s\n", FormatUUID(p.ID))
		fmt.Fprintf(&b, "  Major: %d\n", p.Major)
		fmt.Fprintf(&b, "  Minor: %d\n", p.Minor)
		fmt.Fprintf(&b, "  TX Power: %d dBm\n", p.TxPower)
		fmt.Fprintf(&b, "  Manufacturer Reserved: 0x%02X\n", p.MfgReserved)
	default:
		b.WriteString("Unknown\n")
	}
	return b.String()
}
