package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// MQTTConfig configures the optional MQTT sink. An empty Broker disables it.
type MQTTConfig struct {
	Broker         string        `mapstructure:"broker"`
	Port           int           `mapstructure:"port"`
	ClientID       string        `mapstructure:"clientId"`
	Topic          string        `mapstructure:"topic"`
	QoS            byte          `mapstructure:"qos"`
	ConnectTimeout time.Duration `mapstructure:"connectTimeout"`
}

// Enabled reports whether readings should be published.
func (c MQTTConfig) Enabled() bool { return c.Broker != "" }

// LogConfig configures the logrus logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the CLI configuration.
type Config struct {
	Output   string     `mapstructure:"output"`
	Formats  string     `mapstructure:"formats"`
	Extended bool       `mapstructure:"extended"`
	Dump     bool       `mapstructure:"dump"`
	Log      LogConfig  `mapstructure:"log"`
	MQTT     MQTTConfig `mapstructure:"mqtt"`
}

// New returns a viper instance with defaults and BEACON_* environment
// overrides applied. Callers bind flags before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("BEACON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path and unmarshals the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output %q (allowed: text, json, yaml)", c.Output)
	}
	if c.MQTT.Enabled() {
		if c.MQTT.Port <= 0 || c.MQTT.Port > 65535 {
			return fmt.Errorf("invalid mqtt.port %d", c.MQTT.Port)
		}
		if c.MQTT.QoS > 2 {
			return fmt.Errorf("invalid mqtt.qos %d (allowed: 0, 1, 2)", c.MQTT.QoS)
		}
		if strings.TrimSpace(c.MQTT.Topic) == "" {
			return fmt.Errorf("mqtt.topic must not be empty")
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", OutputText)
	v.SetDefault("formats", "")
	v.SetDefault("extended", false)
	v.SetDefault("dump", false)

	v.SetDefault("log.level", "info")

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.port", 1883)
	v.SetDefault("mqtt.clientId", "beacon-analyze")
	v.SetDefault("mqtt.topic", "beacons")
	v.SetDefault("mqtt.qos", 1)
	v.SetDefault("mqtt.connectTimeout", "10s")
}
