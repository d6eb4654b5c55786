package commanderpro

type cmd byte
type FanCh byte
type FanMode byte

const (
	CMDGetFanFixedDutyCycle cmd = 0x22 // CMDReadFanPower pwm
	CMDSetFanFixedDutyCycle cmd = 0x23 // CMDWriteFanPower pwm
	CMDSetFanMode           cmd = 0x28 // CMDWriteFanDetectionType
	CMDGetFanMode           cmd = 0x29 // CMDReadFanDetectionType

	FanCh1 FanCh = 0x00
	FanCh2 FanCh = 0x01
	FanCh3 FanCh = 0x02
	FanCh4 FanCh = 0x03
	FanCh5 FanCh = 0x04
	FanCh6 FanCh = 0x05

	FanModeAutoDisconnected FanMode = 0x00
	FanMode3Pin             FanMode = 0x01
	FanMode4Pin             FanMode = 0x02
	FanModeUnknown          FanMode = 0x03
)

func (d *Device) packet(c cmd, args ...byte) []byte {
	p := make([]byte, d.t.packetSize())
	p[0] = byte(c)
	copy(p[1:], args)
	return p
}

func (d *Device) getFixedDutyCycle(fan FanCh) (uint8, error) {
	resp, err := d.t.cmd(d.packet(CMDGetFanFixedDutyCycle, byte(fan)))
	if err != nil {
		return 0, err
	}
	return resp[1], nil
}

// setFixedDutyCycle applies a "Fixed %" duty cycle,
// 0 clears the channel settings and turns off the fan.
func (d *Device) setFixedDutyCycle(fan FanCh, dutyCycle uint8) error {
	if dutyCycle == 0 {
		return d.setFanMode(fan, FanModeUnknown)
	}

	fanMode, err := d.getFanMode(fan)
	if err != nil {
		return err
	}
	if fanMode == FanModeUnknown {
		if err := d.setFanMode(fan, FanModeAutoDisconnected); err != nil {
			return err
		}
	}

	_, err = d.t.cmd(d.packet(CMDSetFanFixedDutyCycle, byte(fan), dutyCycle))
	return err
}

func (d *Device) setFanMode(fan FanCh, fanMode FanMode) error {
	_, err := d.t.cmd(d.packet(CMDSetFanMode, 0x02, byte(fan), byte(fanMode)))
	return err
}

func (d *Device) getFanMode(fan FanCh) (FanMode, error) {
	resp, err := d.t.cmd(d.packet(CMDGetFanMode, 0x01, byte(fan)))
	if err != nil {
		return FanModeUnknown, err
	}
	if resp[2] == byte(fan) {
		return FanMode(resp[3]), nil
	}
	return FanModeUnknown, nil
}
