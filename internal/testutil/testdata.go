package testutil

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes a YAML fixture from testdata relative to the repo root.
func LoadYAML(t *testing.T, rel string, v any) {
	t.Helper()
	data := readTestdata(t, rel)
	if err := yaml.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadHex returns the hex digits of a fixture. Lines starting with '#' are
// comments; whitespace is dropped.
func LoadHex(t *testing.T, rel string) string {
	t.Helper()
	var b strings.Builder
	for _, line := range strings.Split(string(readTestdata(t, rel)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		b.WriteString(strings.Join(strings.Fields(line), ""))
	}
	return b.String()
}

// LoadPacket returns the decoded bytes of a hex fixture.
func LoadPacket(t *testing.T, rel string) []byte {
	t.Helper()
	raw := LoadHex(t, rel)
	data, err := hex.DecodeString(raw)
	if err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
	return data
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
		filepath.Join("..", "..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
