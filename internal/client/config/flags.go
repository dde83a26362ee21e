package config

import (
	"flag"

	"github.com/Breathless11/Tamamla/internal/flagx"
)

var knownFlags = []string{
	"-d", "-l", "-s", "-notifications", "-session-ttl",
	"-mqtt-broker", "-mqtt-topic", "-smtp-host", "-smtp-port", "-smtp-to",
}

// parseFlags populates cfg from the flags in args it knows about; the rest
// (e.g. -c) are filtered out with flagx.FilterArgs first. Panics on bad
// values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (SQLite path or postgres:// URL)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.NotificationSink, "s", cfg.NotificationSink, "reminder sink: console, mqtt or mail")
	fs.BoolVar(&cfg.NotificationsEnabled, "notifications", cfg.NotificationsEnabled, "allow reminders")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "how long a login is remembered")
	fs.StringVar(&cfg.MQTTBrokerURL, "mqtt-broker", cfg.MQTTBrokerURL, "MQTT broker URL")
	fs.StringVar(&cfg.MQTTTopic, "mqtt-topic", cfg.MQTTTopic, "MQTT topic for reminders")
	fs.StringVar(&cfg.SMTPHost, "smtp-host", cfg.SMTPHost, "SMTP server host")
	fs.IntVar(&cfg.SMTPPort, "smtp-port", cfg.SMTPPort, "SMTP server port")
	fs.StringVar(&cfg.SMTPRecipient, "smtp-to", cfg.SMTPRecipient, "reminder e-mail recipient")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
