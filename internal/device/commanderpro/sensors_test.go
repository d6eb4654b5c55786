package commanderpro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSensor_ReadTemp(t *testing.T) {
	ft := &fakeTransport{respond: func(req []byte) ([]byte, error) {
		resp := make([]byte, 16)
		// 42.57 degrees
		resp[1], resp[2] = 0x10, 0xa1
		return resp, nil
	}}
	sensor, err := (&Device{t: ft}).TempSensor(3)
	require.NoError(t, err)

	temp, err := sensor.ReadTemp()
	require.NoError(t, err)
	require.Equal(t, 42, temp)
	require.Equal(t, []byte{0x11, 0x03}, header(ft.sent[0], 2))
}

func TestDevice_TempSensorRange(t *testing.T) {
	d := &Device{t: &fakeTransport{}}

	_, err := d.TempSensor(4)
	require.Error(t, err)
	_, err = d.TempSensor(-1)
	require.Error(t, err)
}

func TestDevice_ConnectedSensors(t *testing.T) {
	ft := &fakeTransport{respond: func(req []byte) ([]byte, error) {
		resp := make([]byte, 16)
		resp[1], resp[3] = 0x01, 0x01
		return resp, nil
	}}

	connected, err := (&Device{t: ft}).ConnectedSensors()
	require.NoError(t, err)
	require.Equal(t, [4]bool{true, false, true, false}, connected)
	require.Equal(t, byte(0x10), ft.sent[0][0])
}
