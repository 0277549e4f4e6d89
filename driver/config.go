package driver

import (
	"time"

	"github.com/embhost/atlink/at"
)

// Config carries the build-time settings of a Driver.
type Config struct {
	// UART is the hardware abstraction. Required.
	UART UART

	// RxBufferSize is the byte capacity of the receive ring. Must be
	// a power of two and must exceed the largest byte burst the
	// peripheral can emit between two receive-loop wake-ups;
	// overflow is not detected.
	RxBufferSize int

	// PromptWithoutNewline must be set for peripherals that emit the
	// '>' prompt with no trailing newline. The prompt character then
	// counts as a complete line on its own.
	PromptWithoutNewline bool

	// ATTimeout bounds a command exchange when the caller's context
	// carries no deadline of its own.
	ATTimeout time.Duration
}

func (c *Config) validate() error {
	if c.UART == nil {
		return ErrNoUART
	}
	if c.RxBufferSize&(c.RxBufferSize-1) != 0 {
		return ErrBufferSize
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.RxBufferSize == 0 {
		c.RxBufferSize = 256
	}
	if c.ATTimeout == 0 {
		c.ATTimeout = 5 * time.Second
	}
}

// ConfigBuilder assembles a Config fluently.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder with empty settings; Build fills
// in defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithUART sets the hardware abstraction.
func (b *ConfigBuilder) WithUART(u UART) *ConfigBuilder {
	b.config.UART = u
	return b
}

// WithRxBufferSize sets the receive ring capacity in bytes.
func (b *ConfigBuilder) WithRxBufferSize(size int) *ConfigBuilder {
	b.config.RxBufferSize = size
	return b
}

// WithPromptWithoutNewline marks the peripheral as emitting '>' with
// no trailing newline.
func (b *ConfigBuilder) WithPromptWithoutNewline() *ConfigBuilder {
	b.config.PromptWithoutNewline = true
	return b
}

// WithATTimeout sets the default exchange timeout applied when the
// caller's context has no deadline.
func (b *ConfigBuilder) WithATTimeout(d time.Duration) *ConfigBuilder {
	b.config.ATTimeout = d
	return b
}

// Build validates the configuration and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	config := b.config
	config.setDefaults()
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// exceptionalChars returns the characters the RX ring must treat as
// complete lines on their own.
func (c *Config) exceptionalChars() string {
	if c.PromptWithoutNewline {
		return at.Prompt
	}
	return ""
}
