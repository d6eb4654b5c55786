// Package commanderpro drives the fan channels and reads the temperature probes of a Corsair Commander Pro over USB.
package commanderpro

import (
	"fmt"
	"sync"

	"github.com/google/gousb"
)

// list all devices:
//  go get -v github.com/google/gousb/lsusb
// lsusb
// Bus 001 Device 003: ID 1b1c:0c10 Corsair Commander PRO

const (
	// Commander Pro vendor ID
	vid = gousb.ID(0x1b1c)

	// Commander Pro product ID
	pid = gousb.ID(0x0c10)
)

// transport exchanges one request/response couple with the device.
type transport interface {
	packetSize() int
	cmd(req []byte) (resp []byte, err error)
	Close() error
}

type usbTransport struct {
	ctx      *gousb.Context
	dev      *gousb.Device
	intf     *gousb.Interface
	intfDone func()

	inEndpoint  *gousb.InEndpoint
	outEndpoint *gousb.OutEndpoint

	mutex sync.Mutex
}

func openUSB() (t *usbTransport, err error) {
	t = &usbTransport{ctx: gousb.NewContext()}

	// Open any device with a given VID/PID using a convenience function.
	t.dev, err = t.ctx.OpenDeviceWithVIDPID(vid, pid)
	if err != nil || t.dev == nil {
		_ = t.Close()
		return nil, fmt.Errorf("could not open a device: %v", err)
	}

	if err = t.dev.SetAutoDetach(true); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("unable to set autodetach on device: %v", err)
	}

	// The default interface is always #0 alt #0 in the currently active config.
	t.intf, t.intfDone, err = t.dev.DefaultInterface()
	if err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("%s.DefaultInterface(): %v", t.dev, err)
	}

	t.inEndpoint, err = t.intf.InEndpoint(1)
	if err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("%s.InEndpoint(1): %v", t.intf, err)
	}

	t.outEndpoint, err = t.intf.OutEndpoint(2)
	if err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("%s.OutEndpoint(2): %v", t.intf, err)
	}

	return t, nil
}

func (t *usbTransport) packetSize() int {
	return t.outEndpoint.Desc.MaxPacketSize
}

func (t *usbTransport) cmd(req []byte) ([]byte, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	numBytes, err := t.outEndpoint.Write(req)
	if numBytes != len(req) {
		return nil, fmt.Errorf("%s.Write(): only %d bytes written, returned error is %v", t.outEndpoint, numBytes, err)
	}

	// readBytes might be smaller than the buffer size.
	buf := make([]byte, t.inEndpoint.Desc.MaxPacketSize)
	readBytes, err := t.inEndpoint.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read error: %v", err)
	}
	if readBytes == 0 {
		return nil, fmt.Errorf("endpoint returned 0 bytes of data")
	}

	return buf, nil
}

func (t *usbTransport) Close() error {
	if t.intfDone != nil {
		t.intfDone()
	}
	var err error
	if t.dev != nil {
		err = t.dev.Close()
	}
	if t.ctx != nil {
		if cerr := t.ctx.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Device is an opened Commander Pro, shared by its fans and sensors.
type Device struct {
	t transport
}

// Open claims the first Commander Pro found on the bus.
func Open() (*Device, error) {
	t, err := openUSB()
	if err != nil {
		return nil, err
	}
	return &Device{t: t}, nil
}

// Close releases the USB device, fans keep their last duty.
func (d *Device) Close() error {
	return d.t.Close()
}

// Fan returns the actuator of a fan channel, 0 to 5.
func (d *Device) Fan(channel int) (*Fan, error) {
	if channel < int(FanCh1) || channel > int(FanCh6) {
		return nil, fmt.Errorf("fan channel must be between %d and %d, got %d", FanCh1, FanCh6, channel)
	}
	return &Fan{d: d, ch: FanCh(channel)}, nil
}

// TempSensor returns one of the four temperature probes, 0 to 3.
func (d *Device) TempSensor(sensor int) (*Sensor, error) {
	if sensor < int(TempSensor1) || sensor > int(TempSensor4) {
		return nil, fmt.Errorf("temperature sensor must be between %d and %d, got %d", TempSensor1, TempSensor4, sensor)
	}
	return &Sensor{d: d, sensor: TempSensor(sensor)}, nil
}

// Fan is a fan channel, duty is a percentage.
type Fan struct {
	d  *Device
	ch FanCh
}

func (f *Fan) Duty() (int, error) {
	dc, err := f.d.getFixedDutyCycle(f.ch)
	return int(dc), err
}

func (f *Fan) SetDuty(duty int) error {
	switch {
	case duty < 0:
		duty = 0
	case duty > 100:
		duty = 100
	}
	return f.d.setFixedDutyCycle(f.ch, uint8(duty))
}

// Sensor is a temperature probe, reporting whole degrees.
type Sensor struct {
	d      *Device
	sensor TempSensor
}

func (s *Sensor) ReadTemp() (int, error) {
	centi, err := s.d.getTemp(s.sensor)
	return int(centi / 100), err
}
