package config

import (
	"encoding/json"
	"os"

	"github.com/Breathless11/Tamamla/internal/flagx"
	"github.com/Breathless11/Tamamla/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// timex.Duration so the file can say "720h" as well as nanoseconds.
type JsonConfig struct {
	DatabaseDSN          string         `json:"database_dsn"`
	LogLevel             string         `json:"log_level"`
	SessionTTL           timex.Duration `json:"session_ttl"`
	NotificationSink     string         `json:"notification_sink"`
	NotificationsEnabled bool           `json:"notifications_enabled"`
	MQTTBrokerURL        string         `json:"mqtt_broker_url"`
	MQTTTopic            string         `json:"mqtt_topic"`
	SMTPHost             string         `json:"smtp_host"`
	SMTPPort             int            `json:"smtp_port"`
	SMTPUsername         string         `json:"smtp_username"`
	SMTPPassword         string         `json:"smtp_password"`
	SMTPSender           string         `json:"smtp_sender"`
	SMTPRecipient        string         `json:"smtp_recipient"`
	LoginRate            timex.Duration `json:"login_rate"`
	LoginBurst           int            `json:"login_burst"`
}

// parseJson overlays cfg with the file named by -c/-config in args. The DTO is
// seeded from cfg, so keys missing from the file leave values untouched.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		DatabaseDSN:          cfg.DatabaseDSN,
		LogLevel:             cfg.LogLevel,
		SessionTTL:           timex.Duration{Duration: cfg.SessionTTL},
		NotificationSink:     cfg.NotificationSink,
		NotificationsEnabled: cfg.NotificationsEnabled,
		MQTTBrokerURL:        cfg.MQTTBrokerURL,
		MQTTTopic:            cfg.MQTTTopic,
		SMTPHost:             cfg.SMTPHost,
		SMTPPort:             cfg.SMTPPort,
		SMTPUsername:         cfg.SMTPUsername,
		SMTPPassword:         cfg.SMTPPassword,
		SMTPSender:           cfg.SMTPSender,
		SMTPRecipient:        cfg.SMTPRecipient,
		LoginRate:            timex.Duration{Duration: cfg.LoginRate},
		LoginBurst:           cfg.LoginBurst,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.LogLevel = jc.LogLevel
	cfg.SessionTTL = jc.SessionTTL.Duration
	cfg.NotificationSink = jc.NotificationSink
	cfg.NotificationsEnabled = jc.NotificationsEnabled
	cfg.MQTTBrokerURL = jc.MQTTBrokerURL
	cfg.MQTTTopic = jc.MQTTTopic
	cfg.SMTPHost = jc.SMTPHost
	cfg.SMTPPort = jc.SMTPPort
	cfg.SMTPUsername = jc.SMTPUsername
	cfg.SMTPPassword = jc.SMTPPassword
	cfg.SMTPSender = jc.SMTPSender
	cfg.SMTPRecipient = jc.SMTPRecipient
	cfg.LoginRate = jc.LoginRate.Duration
	cfg.LoginBurst = jc.LoginBurst
}
