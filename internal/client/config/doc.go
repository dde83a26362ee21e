// Package config loads runtime configuration for the Tamamla CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and TAMAMLA_* environment
//     variables (see parseEnv). Real environment variables beat the file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string           database DSN: a SQLite path or postgres:// URL
//	-l string           log level (debug, info, warn, error)
//	-s string           reminder sink: console, mqtt or mail
//	-notifications      allow reminders (default true)
//	-session-ttl dur    how long a login is remembered
//	-mqtt-broker string MQTT broker URL, e.g. tcp://localhost:1883
//	-mqtt-topic string  MQTT topic for reminders
//	-smtp-host string   SMTP server host
//	-smtp-port int      SMTP server port
//	-smtp-to string     reminder e-mail recipient
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "720h" or integer
// nanoseconds. Keys that are absent keep their previous value:
//
//	{
//	  "database_dsn": "tamamla.db",
//	  "log_level": "info",
//	  "session_ttl": "720h",
//	  "notification_sink": "mqtt",
//	  "notifications_enabled": true,
//	  "mqtt_broker_url": "tcp://localhost:1883",
//	  "mqtt_topic": "tamamla/reminders",
//	  "login_rate": "1s",
//	  "login_burst": 3
//	}
package config
