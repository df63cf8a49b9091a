package gobeacon

import (
	"github.com/d21d3q/gobeacon/internal/decoder"
	internalopts "github.com/d21d3q/gobeacon/internal/options"
)

// AnalyzeOptions configures AnalyzeHexWithOptions.
type AnalyzeOptions struct {
	// Formats restricts decoding to a comma separated list of format names
	// (see Formats). Dispatch order is unaffected by the order given here.
	Formats string
	// Extended accepts payloads longer than MaxLegacyPayload.
	Extended bool
}

func (opts AnalyzeOptions) decoders() ([]decoder.Decoder, error) {
	all := decoder.Ordered()
	names, err := internalopts.ParseFormats(opts.Formats, decoder.Names())
	if err != nil || names == nil {
		return all, err
	}
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	out := make([]decoder.Decoder, 0, len(names))
	for _, dec := range all {
		if allowed[dec.Name()] {
			out = append(out, dec)
		}
	}
	return out, nil
}
