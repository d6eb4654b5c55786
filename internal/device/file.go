package device

import (
	"fmt"
	"os"
	"strconv"
)

// FileSensor reads a raw integer temperature from a sysfs-like file.
type FileSensor struct {
	Path    string
	Divisor int
}

func (s FileSensor) ReadTemp() (int, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return 0, err
	}
	raw, err := parseValue(string(data))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.Path, err)
	}
	return scale(raw, s.Divisor)
}

// FileActuator drives a fan through a sysfs-like file holding its duty,
// every write replaces the whole file content.
type FileActuator struct {
	Path string
}

func (a FileActuator) Duty() (int, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return 0, err
	}
	duty, err := parseValue(string(data))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", a.Path, err)
	}
	return duty, nil
}

func (a FileActuator) SetDuty(duty int) error {
	return os.WriteFile(a.Path, []byte(strconv.Itoa(duty)), 0644)
}
