package device

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oblq/fancontrol/internal/exec"
)

// IPMI drives a Supermicro fan zone through ipmitool raw commands.
// Duty is a percentage.
type IPMI struct {
	// CMD is the ipmitool preamble command,
	// could run locally or on remote machines,
	// eg.: `ipmitool -I lanplus -H 192.168.1.10 -U ADMIN -P ADMIN`.
	CMD string

	// Zone is 0x00 for the cpu zone, 0x01 for the peripheral zone.
	Zone uint8

	command func(string) (string, error)
}

func NewIPMI(cmd string, zone uint8) *IPMI {
	return &IPMI{CMD: cmd, Zone: zone, command: exec.Command}
}

func (i *IPMI) Duty() (int, error) {
	out, err := i.command(fmt.Sprintf("%s raw 0x30 0x70 0x66 0x00 %#02x", i.CMD, i.Zone))
	if err != nil {
		return 0, fmt.Errorf("error getting duty cycle for zone '%v': %w", i.Zone, err)
	}

	dc, err := strconv.ParseUint(strings.TrimSpace(out), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("unexpected duty cycle for zone '%v': %w", i.Zone, err)
	}
	return int(dc), nil
}

func (i *IPMI) SetDuty(duty int) error {
	dc := clampDuty(duty, 100)
	cmdString := fmt.Sprintf("%s raw 0x30 0x70 0x66 0x01 %#02x %#02x", i.CMD, i.Zone, dc)
	if _, err := i.command(cmdString); err != nil {
		return fmt.Errorf("error setting duty cycle for zone '%v' to %d%%: %w", i.Zone, dc, err)
	}
	return nil
}

// SetFullMode puts the BMC in full fan mode,
// the only one where it does not override the zone duty cycles.
func (i *IPMI) SetFullMode() error {
	if _, err := i.command(fmt.Sprintf("%s raw 0x30 0x45 0x01 0x01", i.CMD)); err != nil {
		return fmt.Errorf("error setting fan mode to full: %w", err)
	}
	return nil
}
