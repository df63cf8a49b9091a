package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/gobeacon/internal/config"
	"github.com/d21d3q/gobeacon/internal/publish"
	"github.com/d21d3q/gobeacon/pkg/gobeacon"
)

var (
	rootCmd = &cobra.Command{
		Use:   "beacon-analyze [hex]",
		Short: "Decode BLE beacon advertising payloads",
		Long: "beacon-analyze decodes iBeacon, AltBeacon and Eddystone advertising payloads using the gobeacon library.\n" +
			"Supported formats: " + strings.Join(gobeacon.Formats(), ", "),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			if err := setupLogging(cfg.Log); err != nil {
				return err
			}
			a := &analyzer{
				cfg:  cfg,
				opts: gobeacon.AnalyzeOptions{Formats: cfg.Formats, Extended: cfg.Extended},
				out:  cmd.OutOrStdout(),
			}
			ctx := cmd.Context()
			if cfg.MQTT.Enabled() {
				client := publish.NewClient(cfg.MQTT, logrus.StandardLogger())
				defer client.Disconnect()
				if err := client.Connect(ctx); err != nil {
					return err
				}
				a.sink = client
			}
			if len(args) == 0 {
				return a.runInteractive(ctx, cmd.InOrStdin())
			}
			return a.analyze(args[0])
		},
	}

	v          = config.New()
	configPath string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.StringP("output", "o", config.OutputText, "output format: text, json or yaml")
	flags.String("formats", "", "comma separated formats to try (default all)")
	flags.Bool("extended", false, "accept payloads longer than 31 bytes")
	flags.Bool("dump", false, "list every AD structure in the payload")
	flags.String("log-level", "info", "log level")
	flags.String("mqtt-broker", "", "publish readings to this MQTT broker host")
	flags.Int("mqtt-port", 1883, "MQTT broker port")
	flags.String("mqtt-topic", "beacons", "base MQTT topic")

	for key, flag := range map[string]string{
		"output":      "output",
		"formats":     "formats",
		"extended":    "extended",
		"dump":        "dump",
		"log.level":   "log-level",
		"mqtt.broker": "mqtt-broker",
		"mqtt.port":   "mqtt-port",
		"mqtt.topic":  "mqtt-topic",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func setupLogging(cfg config.LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)
	return nil
}

type sink interface {
	Publish(reading gobeacon.Reading, rawHex string) error
}

type analyzer struct {
	cfg  config.Config
	opts gobeacon.AnalyzeOptions
	out  io.Writer
	sink sink
}

func (a *analyzer) runInteractive(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	logrus.Info("beacon-analyze mode. Paste a hex payload and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := a.analyze(line); err != nil {
			logrus.WithError(err).Error("failed to decode payload")
		}
	}
	return scanner.Err()
}

func (a *analyzer) analyze(raw string) error {
	result, err := gobeacon.AnalyzeHexWithOptions(raw, a.opts)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"format": result.Format,
		"bytes":  result.ByteCount,
	}).Debug("analyzed payload")
	if err := render(a.out, result, a.cfg.Output, a.cfg.Dump); err != nil {
		return err
	}
	if a.sink != nil && result.Recognized() {
		if err := a.sink.Publish(result.Reading, result.RawHex); err != nil {
			logrus.WithError(err).Warn("failed to publish reading")
		}
	}
	return nil
}

var _ sink = (*publish.Client)(nil)
