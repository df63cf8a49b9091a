package eddystone

import (
	"fmt"

	"github.com/d21d3q/gobeacon/internal/ad"
	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/decoder"
)

// Name is the registry name of the Eddystone decoder.
const Name = "eddystone"

const (
	serviceUUID = 0xFEAA

	frameUID = 0x00
	frameURL = 0x10
	frameTLM = 0x20

	// UUID 2 + frame type 1
	headerLen = 3
	priority  = 30
)

func init() {
	decoder.Register(decoder.Registration{Name: Name, Priority: priority}, Decoder{})
}

// Decoder decodes Eddystone UID, URL and TLM frames carried in 0xFEAA
// service data.
type Decoder struct{}

func (Decoder) Name() string { return Name }

func (Decoder) CanParse(data []byte) bool {
	_, _, err := locate(data)
	return err == nil
}

func (Decoder) Parse(data []byte) (beacon.Reading, error) {
	frameType, frame, err := locate(data)
	if err != nil {
		return beacon.Reading{}, err
	}
	switch frameType {
	case frameUID:
		return parseUID(frame)
	case frameURL:
		return parseURL(frame)
	case frameTLM:
		return parseTLM(frame)
	default:
		return beacon.Reading{}, fmt.Errorf("%w: 0x%02X", decoder.ErrUnknownFrame, frameType)
	}
}

// locate returns the frame type and the frame payload following it.
func locate(data []byte) (byte, []byte, error) {
	svc, ok := ad.FindService(data, serviceUUID)
	if !ok {
		return 0, nil, decoder.ErrRecordNotFound
	}
	if len(svc) < headerLen {
		return 0, nil, fmt.Errorf("%w: service data %d bytes", decoder.ErrTooShort, len(svc))
	}
	return svc[2], svc[headerLen:], nil
}
