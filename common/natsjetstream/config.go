package natsjetstream

import "time"

// Config holds the connection settings. Zero values fall back to the
// defaults below when the client connects.
type Config struct {
	URL           string
	MaxReconnect  int
	ReconnectWait time.Duration
	Timeout       time.Duration
}

const (
	defaultMaxReconnect  = 10
	defaultReconnectWait = 2 * time.Second
	defaultTimeout       = 5 * time.Second
)

func (c *Config) applyDefaults() {
	if c.MaxReconnect == 0 {
		c.MaxReconnect = defaultMaxReconnect
	}
	if c.ReconnectWait == 0 {
		c.ReconnectWait = defaultReconnectWait
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// ConsumerConfig describes one durable JetStream consumer. AckWait and
// MaxDeliver are passed through to the consumer when set.
type ConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	Durable       string
	FilterSubject string
	AckPolicy     string
	AckWait       time.Duration
	MaxDeliver    int
}
