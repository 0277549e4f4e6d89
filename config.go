package main

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds the gateway configuration
type Config struct {
	// BindAddress is the address the HTTP server listens on (e.g. "0.0.0.0:8080")
	BindAddress string
	// SerialPort is the path to the modem's serial port (e.g. "/dev/ttyUSB0")
	SerialPort string
	// BaudRate is the serial line speed (e.g. 115200)
	BaudRate int
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string
	// SimPIN is the SIM card PIN code
	SimPIN string
	// ATTimeout bounds a single AT command exchange
	ATTimeout time.Duration
	// PromptNoNewline marks modems that emit the SMS prompt '>'
	// without a trailing newline
	PromptNoNewline bool
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 115200
		c.LogLevel = "info"
		c.ATTimeout = 5 * time.Second
		c.PromptNoNewline = true
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		envString("BIND_ADDRESS", &c.BindAddress)
		envString("SERIAL_PORT", &c.SerialPort)
		envInt("BAUD_RATE", &c.BaudRate)
		envString("LOG_LEVEL", &c.LogLevel)
		envString("SIM_PIN", &c.SimPIN)
		envDuration("AT_TIMEOUT", &c.ATTimeout)
		envBool("PROMPT_NO_NEWLINE", &c.PromptNoNewline)
		return nil
	}
}

// WithFlags loads configuration from command-line flags; only flags
// the user actually set override the earlier layers
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			v := f.Value.String()
			switch f.Name {
			case "bind-address":
				c.BindAddress = v
			case "serial-port":
				c.SerialPort = v
			case "baud-rate":
				if b, err := strconv.Atoi(v); err == nil {
					c.BaudRate = b
				}
			case "log-level":
				c.LogLevel = v
			case "sim-pin":
				c.SimPIN = v
			case "at-timeout":
				if d, err := time.ParseDuration(v); err == nil {
					c.ATTimeout = d
				}
			case "prompt-no-newline":
				if b, err := strconv.ParseBool(v); err == nil {
					c.PromptNoNewline = b
				}
			}
		})
		return nil
	}
}

// Malformed environment values are skipped, leaving the earlier layer
// in place.

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
