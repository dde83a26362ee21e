package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envPrefix = "TAMAMLA_"
	envFile   = ".env"
)

// parseEnv overlays cfg with TAMAMLA_* variables. Values from the process
// environment win over the same keys in the dotenv file; a missing file is
// not an error.
func parseEnv(cfg *Config, dotenv string) {
	fileVars := map[string]string{}
	if dotenv != "" {
		vars, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			panic(err)
		}
	}

	lookup := func(name string) (string, bool) {
		key := envPrefix + name
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				panic(err)
			}
			*dst = n
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				panic(err)
			}
			*dst = b
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str("DATABASE_DSN", &cfg.DatabaseDSN)
	str("LOG_LEVEL", &cfg.LogLevel)
	duration("SESSION_TTL", &cfg.SessionTTL)
	str("NOTIFICATION_SINK", &cfg.NotificationSink)
	boolean("NOTIFICATIONS_ENABLED", &cfg.NotificationsEnabled)
	str("MQTT_BROKER_URL", &cfg.MQTTBrokerURL)
	str("MQTT_TOPIC", &cfg.MQTTTopic)
	str("SMTP_HOST", &cfg.SMTPHost)
	integer("SMTP_PORT", &cfg.SMTPPort)
	str("SMTP_USERNAME", &cfg.SMTPUsername)
	str("SMTP_PASSWORD", &cfg.SMTPPassword)
	str("SMTP_SENDER", &cfg.SMTPSender)
	str("SMTP_RECIPIENT", &cfg.SMTPRecipient)
	duration("LOGIN_RATE", &cfg.LoginRate)
	integer("LOGIN_BURST", &cfg.LoginBurst)
}
