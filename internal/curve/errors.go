package curve

import (
	"errors"
	"fmt"
)

var (
	ErrTooFewPoints         = errors.New("too few curve points")
	ErrDuplicateTemperature = errors.New("duplicate curve temperature")
)

// ConfigError is returned by Validate when a curve cannot drive the controller.
type ConfigError struct {
	Kind   error
	Points int

	// Temperature is only set for ErrDuplicateTemperature.
	Temperature int
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case ErrTooFewPoints:
		return fmt.Sprintf("%v: got %d, need at least %d", e.Kind, e.Points, MinPoints)
	case ErrDuplicateTemperature:
		return fmt.Sprintf("%v: %d appears more than once", e.Kind, e.Temperature)
	}
	return e.Kind.Error()
}

func (e *ConfigError) Is(target error) bool {
	return target == e.Kind
}
