// Package device implements the temperature sources and the fan actuators
// the controller can be wired to.
package device

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultSensorPath is the first thermal zone of the system.
	DefaultSensorPath = "/sys/devices/virtual/thermal/thermal_zone0/temp"

	// DefaultFanPath is the first cooling device of the system.
	DefaultFanPath = "/sys/devices/virtual/thermal/cooling_device0/cur_state"

	// DefaultDivisor converts millidegrees into degrees.
	DefaultDivisor = 1000
)

var ErrInvalidDivisor = errors.New("divisor must be positive")

// parseValue reads the integer on the first line of raw.
func parseValue(raw string) (int, error) {
	line, _, _ := strings.Cut(raw, "\n")
	line = strings.Trim(line, " \t\r.")
	if line == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", line, err)
	}
	return v, nil
}

// scale converts a raw reading into the curve unit, truncating toward zero.
func scale(raw, divisor int) (int, error) {
	if divisor <= 0 {
		return 0, ErrInvalidDivisor
	}
	return raw / divisor, nil
}

func clampDuty(duty, max int) int {
	if duty < 0 {
		return 0
	}
	if duty > max {
		return max
	}
	return duty
}
