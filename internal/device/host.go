package device

import (
	"fmt"

	"github.com/shirou/gopsutil/host"
)

var sensorsTemperatures = host.SensorsTemperatures

// HostSensor reads one of the host temperature sensors by key,
// eg.: `coretemp_core_0_input` or `acpitz_input`.
// Values are reported in degrees, no divisor applies.
type HostSensor struct {
	Key string
}

func (s HostSensor) ReadTemp() (int, error) {
	temps, err := sensorsTemperatures()
	if err != nil && len(temps) == 0 {
		return 0, err
	}
	for _, t := range temps {
		if t.SensorKey == s.Key {
			return int(t.Temperature), nil
		}
	}
	return 0, fmt.Errorf("no such host sensor: %s", s.Key)
}

// HostSensorKeys lists the keys HostSensor accepts on this machine.
func HostSensorKeys() ([]string, error) {
	temps, err := sensorsTemperatures()
	if err != nil && len(temps) == 0 {
		return nil, err
	}
	keys := make([]string, 0, len(temps))
	for _, t := range temps {
		keys = append(keys, t.SensorKey)
	}
	return keys, nil
}
