package device

import (
	"fmt"

	"github.com/oblq/fancontrol/internal/exec"
)

// CommandSensor gets the raw temperature from the output of a shell command,
// eg.: `ipmitool sdr entity 3.1 | cut -d '|' -f 5 | cut -d ' ' -f2`.
type CommandSensor struct {
	Cmd     string
	Divisor int
}

func (s CommandSensor) ReadTemp() (int, error) {
	out, err := exec.Pipe(s.Cmd)
	if err != nil {
		return 0, err
	}
	if out == "" {
		return 0, fmt.Errorf("sensor command returned an empty string: `%s`", s.Cmd)
	}
	raw, err := parseValue(out)
	if err != nil {
		return 0, err
	}
	return scale(raw, s.Divisor)
}
