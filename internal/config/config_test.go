package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, OutputText, cfg.Output)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.MQTT.Enabled())
	require.Equal(t, 1883, cfg.MQTT.Port)
	require.Equal(t, byte(1), cfg.MQTT.QoS)
	require.Equal(t, 10*time.Second, cfg.MQTT.ConnectTimeout)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BEACON_OUTPUT", "JSON")
	t.Setenv("BEACON_MQTT_BROKER", "localhost")
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, OutputJSON, cfg.Output)
	require.True(t, cfg.MQTT.Enabled())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beacon.yaml")
	content := "output: yaml\nformats: eddystone\nmqtt:\n  broker: broker.local\n  topic: site/beacons\n  qos: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	require.Equal(t, OutputYAML, cfg.Output)
	require.Equal(t, "eddystone", cfg.Formats)
	require.Equal(t, "broker.local", cfg.MQTT.Broker)
	require.Equal(t, "site/beacons", cfg.MQTT.Topic)
	require.Equal(t, byte(0), cfg.MQTT.QoS)
}

func TestLoadInvalid(t *testing.T) {
	v := New()
	v.Set("output", "xml")
	_, err := Load(v, "")
	require.Error(t, err)

	v = New()
	v.Set("mqtt.broker", "localhost")
	v.Set("mqtt.qos", 3)
	_, err = Load(v, "")
	require.Error(t, err)
}
