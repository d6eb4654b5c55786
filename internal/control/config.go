package control

import (
	"errors"
	"time"
)

const (
	DefaultHysteresis   = 3
	DefaultDeadband     = 2
	DefaultPollInterval = 3 * time.Second
)

// Config is the immutable tuning of the control loop.
type Config struct {
	// Hysteresis is the temperature band below the curve activation point
	// in which a running fan is kept spinning.
	Hysteresis int

	// Deadband is the minimum duty change needed to issue a write,
	// start and stop transitions are always written.
	Deadband int

	// PollInterval is the time between ticks.
	PollInterval time.Duration
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Hysteresis:   DefaultHysteresis,
		Deadband:     DefaultDeadband,
		PollInterval: DefaultPollInterval,
	}
}

func (c Config) validate() error {
	if c.Hysteresis < 0 {
		return errors.New("hysteresis must not be negative")
	}
	if c.Deadband < 0 {
		return errors.New("deadband must not be negative")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	return nil
}
