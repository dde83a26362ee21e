package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Breathless11/Tamamla/internal/logging"
)

// Reminder sinks.
const (
	SinkConsole = "console"
	SinkMQTT    = "mqtt"
	SinkMail    = "mail"
)

// Config holds runtime settings for the Tamamla CLI.
type Config struct {
	DatabaseDSN string
	LogLevel    string
	SessionTTL  time.Duration

	NotificationSink     string
	NotificationsEnabled bool

	MQTTBrokerURL string
	MQTTTopic     string

	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPSender    string
	SMTPRecipient string

	// LoginRate is the minimum spacing between login attempts once the
	// LoginBurst allowance is used up.
	LoginRate  time.Duration
	LoginBurst int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "tamamla.db"
	c.LogLevel = "info"
	c.SessionTTL = 30 * 24 * time.Hour
	c.NotificationSink = SinkConsole
	c.NotificationsEnabled = true
	c.MQTTTopic = "tamamla/reminders"
	c.SMTPPort = 587
	c.LoginRate = time.Second
	c.LoginBurst = 3
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DatabaseDSN == "" {
		return errors.New("database DSN must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL)
	}
	if c.LoginRate < 0 || c.LoginBurst < 1 {
		return fmt.Errorf("invalid login throttle: rate %s, burst %d", c.LoginRate, c.LoginBurst)
	}

	switch c.NotificationSink {
	case SinkConsole:
	case SinkMQTT:
		if c.MQTTBrokerURL == "" || c.MQTTTopic == "" {
			return errors.New("mqtt sink needs a broker URL and a topic")
		}
	case SinkMail:
		if c.SMTPHost == "" || c.SMTPSender == "" || c.SMTPRecipient == "" {
			return errors.New("mail sink needs an SMTP host, sender and recipient")
		}
	default:
		return fmt.Errorf("unknown notification sink %q", c.NotificationSink)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the environment, the JSON file
// and the process command line, in that order.
func LoadConfig() *Config {
	return Load(os.Args[1:], envFile)
}

// Load is LoadConfig with explicit arguments and .env path. It panics on
// unreadable sources or malformed values.
func Load(args []string, dotenv string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, dotenv)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
