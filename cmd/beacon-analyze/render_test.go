package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/d21d3q/gobeacon/internal/config"
	"github.com/d21d3q/gobeacon/pkg/gobeacon"
)

const ibeaconHex = "0201061AFF4C0002155F2DD896B8864549AE01E41ACD7A354A00010002C5"

func analyzeHex(t *testing.T, raw string) gobeacon.Result {
	t.Helper()
	result, err := gobeacon.AnalyzeHex(raw)
	require.NoError(t, err)
	return result
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, analyzeHex(t, ibeaconHex), config.OutputText, true))
	out := buf.String()
	require.Contains(t, out, "Payload (30 bytes): "+ibeaconHex)
	require.Contains(t, out, "[00] len=2 type=0x01 Flags: 06")
	require.Contains(t, out, "[03] len=26 type=0xFF ")
	require.Contains(t, out, "iBeacon\n")
	require.Contains(t, out, "UUID: 5F2DD896-B886-4549-AE01-E41ACD7A354A")
}

func TestRenderTextUnknown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, analyzeHex(t, "020106"), config.OutputText, false))
	require.Equal(t, "Unknown: no beacon recognized\n", buf.String())
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, analyzeHex(t, ibeaconHex), config.OutputJSON, false))
	require.JSONEq(t, `{
		"format": "ibeacon",
		"raw_hex": "`+ibeaconHex+`",
		"byte_count": 30,
		"fields": {
			"uuid": "5F2DD896-B886-4549-AE01-E41ACD7A354A",
			"major": 1,
			"minor": 2,
			"tx_power": -59
		}
	}`, buf.String())
}

func TestRenderYAMLWithDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, analyzeHex(t, ibeaconHex), config.OutputYAML, true))

	var doc resultDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "ibeacon", doc.Format)
	require.Len(t, doc.Records, 2)
	require.Equal(t, "Flags", doc.Records[0].Name)
	require.Equal(t, "0xFF", doc.Records[1].Type)
	require.Equal(t, 1, doc.Fields["major"])
}

type recordingSink struct {
	readings []gobeacon.Reading
	err      error
}

func (s *recordingSink) Publish(reading gobeacon.Reading, _ string) error {
	s.readings = append(s.readings, reading)
	return s.err
}

func TestAnalyzerPublishesRecognizedReadings(t *testing.T) {
	var buf bytes.Buffer
	s := &recordingSink{err: errors.New("broker down")}
	a := &analyzer{cfg: config.Config{Output: config.OutputText}, out: &buf, sink: s}

	require.NoError(t, a.analyze(ibeaconHex))
	require.NoError(t, a.analyze("020106"))
	require.Len(t, s.readings, 1)
	require.Equal(t, gobeacon.KindIBeacon, s.readings[0].Kind())

	require.Error(t, a.analyze("XYZ"))
}

func TestAnalyzerInteractive(t *testing.T) {
	var buf bytes.Buffer
	a := &analyzer{cfg: config.Config{Output: config.OutputText}, out: &buf}
	in := strings.NewReader(ibeaconHex + "\n\nnot-hex\n0D16AAFE10F402676F6F676C6507\n")

	require.NoError(t, a.runInteractive(context.Background(), in))
	require.Contains(t, buf.String(), "iBeacon")
	require.Contains(t, buf.String(), "URL: http://google.com")
}
