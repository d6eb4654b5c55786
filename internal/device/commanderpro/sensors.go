package commanderpro

import "encoding/binary"

type TempSensor byte

const (
	CMDConnectedSensors cmd = 0x10 // CMDReadTemperatureMask
	CMDGetTemp          cmd = 0x11 // CMDReadTemperatureValue

	TempSensor1 TempSensor = 0x00
	TempSensor2 TempSensor = 0x01
	TempSensor3 TempSensor = 0x02
	TempSensor4 TempSensor = 0x03
)

// getTemp returns the probe temperature in hundredths of degree.
func (d *Device) getTemp(sensor TempSensor) (uint16, error) {
	resp, err := d.t.cmd(d.packet(CMDGetTemp, byte(sensor)))
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(resp[1:3]), nil
}

// ConnectedSensors reports which of the four probes are plugged in.
func (d *Device) ConnectedSensors() ([4]bool, error) {
	var connected [4]bool
	resp, err := d.t.cmd(d.packet(CMDConnectedSensors))
	if err != nil {
		return connected, err
	}
	for i := range connected {
		connected[i] = resp[1+i] == 0x01
	}
	return connected, nil
}
