package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var known = []string{"ibeacon", "altbeacon", "eddystone"}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" Eddystone, ibeacon  eddystone ", known)
	require.NoError(t, err)
	require.Equal(t, []string{"eddystone", "ibeacon"}, got)
}

func TestParseFormatsEmpty(t *testing.T) {
	got, err := ParseFormats("  ", known)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestParseFormatsUnknown(t *testing.T) {
	_, err := ParseFormats("ibeacon,uribeacon", known)
	require.Error(t, err)
	require.Contains(t, err.Error(), "uribeacon")
}
