package decoder

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/d21d3q/gobeacon/internal/beacon"
)

var (
	ErrEmptyInput     = errors.New("empty advertisement")
	ErrRecordNotFound = errors.New("advertisement record not found")
	ErrTooShort       = errors.New("payload too short")
	ErrPrefixMismatch = errors.New("beacon prefix mismatch")
	ErrUnknownFrame   = errors.New("unknown frame type")
	ErrEncryptedTLM   = errors.New("encrypted telemetry not supported")
	ErrUnknownScheme  = errors.New("unknown URL scheme code")
	ErrNoBeacon       = errors.New("no beacon recognized")
)

// Registration describes where a decoder sits in the dispatch order. Lower
// priorities are tried first.
type Registration struct {
	Name     string
	Priority int
}

// Decoder recognises and decodes a single beacon format.
type Decoder interface {
	Name() string
	CanParse(data []byte) bool
	Parse(data []byte) (beacon.Reading, error)
}

var (
	regMu    sync.RWMutex
	registry []registeredDecoder
)

type registeredDecoder struct {
	reg     Registration
	decoder Decoder
}

// Register stores a decoder. It is meant to be called from package init
// functions; the dispatch order is fixed once the program is running.
func Register(reg Registration, dec Decoder) {
	regMu.Lock()
	defer regMu.Unlock()
	if reg.Name == "" {
		reg.Name = dec.Name()
	}
	for _, rd := range registry {
		if rd.reg.Name == reg.Name {
			panic(fmt.Sprintf("decoder %q registered twice", reg.Name))
		}
	}
	registry = append(registry, registeredDecoder{reg: reg, decoder: dec})
	sort.SliceStable(registry, func(i, j int) bool {
		return registry[i].reg.Priority < registry[j].reg.Priority
	})
}

// Ordered returns the registered decoders in dispatch order.
func Ordered() []Decoder {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]Decoder, 0, len(registry))
	for _, rd := range registry {
		out = append(out, rd.decoder)
	}
	return out
}

// Names returns registered decoder names in dispatch order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(registry))
	for _, rd := range registry {
		out = append(out, rd.reg.Name)
	}
	return out
}

// Lookup returns the decoder registered under name.
func Lookup(name string) (Decoder, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, rd := range registry {
		if rd.reg.Name == name {
			return rd.decoder, nil
		}
	}
	return nil, fmt.Errorf("decoder %q not registered", name)
}
