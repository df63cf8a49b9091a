package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/d21d3q/gobeacon/internal/config"
	"github.com/d21d3q/gobeacon/pkg/gobeacon"
)

type recordDoc struct {
	Offset int    `json:"offset" yaml:"offset"`
	Length int    `json:"length" yaml:"length"`
	Type   string `json:"type" yaml:"type"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Value  string `json:"value" yaml:"value"`
}

type resultDoc struct {
	Format    string         `json:"format" yaml:"format"`
	RawHex    string         `json:"raw_hex" yaml:"raw_hex"`
	ByteCount int            `json:"byte_count" yaml:"byte_count"`
	Fields    map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
	Reason    string         `json:"reason,omitempty" yaml:"reason,omitempty"`
	Records   []recordDoc    `json:"records,omitempty" yaml:"records,omitempty"`
}

func newResultDoc(result gobeacon.Result, dump bool) resultDoc {
	doc := resultDoc{
		Format:    result.Format,
		RawHex:    result.RawHex,
		ByteCount: result.ByteCount,
		Reason:    result.Reason,
	}
	if result.Recognized() {
		doc.Fields = result.Reading.Fields()
		delete(doc.Fields, "type")
	}
	if dump {
		for _, rec := range result.Records {
			doc.Records = append(doc.Records, recordDoc{
				Offset: rec.Offset,
				Length: int(rec.Length),
				Type:   fmt.Sprintf("0x%02X", rec.Type),
				Name:   gobeacon.TypeName(rec.Type),
				Value:  strings.ToUpper(hex.EncodeToString(rec.Value)),
			})
		}
	}
	return doc
}

func render(w io.Writer, result gobeacon.Result, output string, dump bool) error {
	switch output {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newResultDoc(result, dump))
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newResultDoc(result, dump)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, result, dump)
	}
}

func renderText(w io.Writer, result gobeacon.Result, dump bool) error {
	var b strings.Builder
	if dump {
		fmt.Fprintf(&b, "Payload (%d bytes): %s\n", result.ByteCount, result.RawHex)
		for _, rec := range result.Records {
			name := gobeacon.TypeName(rec.Type)
			if name == "" {
				name = "Unknown"
			}
			fmt.Fprintf(&b, "  [%02d] len=%d type=0x%02X %s: %s\n",
				rec.Offset, rec.Length, rec.Type, name, strings.ToUpper(hex.EncodeToString(rec.Value)))
		}
	}
	if result.Recognized() {
		b.WriteString(result.Reading.String())
	} else {
		fmt.Fprintf(&b, "Unknown: %s\n", result.Reason)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
