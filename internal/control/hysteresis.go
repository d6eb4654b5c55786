package control

import "github.com/oblq/fancontrol/internal/curve"

const (
	// fallbackActivationDuty and fallbackActivationTemp are used when
	// no curve point spins the fan.
	fallbackActivationDuty = 36
	fallbackActivationTemp = 100
)

// Hysteresis keeps a running fan spinning while the temperature stays
// within Margin of the curve activation point.
type Hysteresis struct {
	Margin int
}

// Apply returns the target to use in place of rawTarget.
// Only a stop request on a running fan is ever overridden.
func (h Hysteresis) Apply(c curve.Curve, temp, currentDuty, rawTarget int) int {
	if currentDuty <= 0 || rawTarget != 0 {
		return rawTarget
	}

	act, ok := c.Activation()
	if !ok {
		act = curve.Point{Temp: fallbackActivationTemp, Duty: fallbackActivationDuty}
	}

	if temp >= act.Temp-h.Margin {
		return act.Duty
	}
	return 0
}
