package device

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shirou/gopsutil/host"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "42500\n", want: 42500},
		{raw: " 36 ", want: 36},
		{raw: "-5000\nignored", want: -5000},
		{raw: "", wantErr: true},
		{raw: "\n", wantErr: true},
		{raw: "hot", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseValue(tt.raw)
		if tt.wantErr {
			require.Error(t, err, "raw %q", tt.raw)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestFileSensor(t *testing.T) {
	s := FileSensor{Path: writeFile(t, "temp", "42999\n"), Divisor: DefaultDivisor}
	temp, err := s.ReadTemp()
	require.NoError(t, err)
	require.Equal(t, 42, temp)

	s.Divisor = 1
	temp, err = s.ReadTemp()
	require.NoError(t, err)
	require.Equal(t, 42999, temp)

	s.Divisor = 0
	_, err = s.ReadTemp()
	require.ErrorIs(t, err, ErrInvalidDivisor)

	_, err = FileSensor{Path: filepath.Join(t.TempDir(), "missing"), Divisor: 1}.ReadTemp()
	require.Error(t, err)

	_, err = FileSensor{Path: writeFile(t, "temp", "n/a"), Divisor: 1}.ReadTemp()
	require.Error(t, err)
}

func TestFileActuator(t *testing.T) {
	a := FileActuator{Path: writeFile(t, "cur_state", "100\n")}

	duty, err := a.Duty()
	require.NoError(t, err)
	require.Equal(t, 100, duty)

	require.NoError(t, a.SetDuty(7))
	data, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	require.Equal(t, "7", string(data))

	duty, err = a.Duty()
	require.NoError(t, err)
	require.Equal(t, 7, duty)

	_, err = FileActuator{Path: filepath.Join(t.TempDir(), "missing")}.Duty()
	require.Error(t, err)

	require.Error(t, FileActuator{Path: filepath.Join(t.TempDir(), "no", "dir")}.SetDuty(1))
}

func TestCommandSensor(t *testing.T) {
	temp, err := CommandSensor{Cmd: "echo 55000", Divisor: 1000}.ReadTemp()
	require.NoError(t, err)
	require.Equal(t, 55, temp)

	_, err = CommandSensor{Cmd: "true", Divisor: 1000}.ReadTemp()
	require.ErrorContains(t, err, "empty string")

	_, err = CommandSensor{Cmd: "exit 1", Divisor: 1000}.ReadTemp()
	require.Error(t, err)
}

func TestHostSensor(t *testing.T) {
	defer func(orig func() ([]host.TemperatureStat, error)) { sensorsTemperatures = orig }(sensorsTemperatures)

	sensorsTemperatures = func() ([]host.TemperatureStat, error) {
		return []host.TemperatureStat{
			{SensorKey: "acpitz_input", Temperature: 27.8},
			{SensorKey: "coretemp_core_0_input", Temperature: 48.2},
		}, errors.New("partial read")
	}

	temp, err := HostSensor{Key: "coretemp_core_0_input"}.ReadTemp()
	require.NoError(t, err)
	require.Equal(t, 48, temp)

	_, err = HostSensor{Key: "nvme_composite_input"}.ReadTemp()
	require.ErrorContains(t, err, "no such host sensor")

	keys, err := HostSensorKeys()
	require.NoError(t, err)
	require.Equal(t, []string{"acpitz_input", "coretemp_core_0_input"}, keys)

	sensorsTemperatures = func() ([]host.TemperatureStat, error) {
		return nil, errors.New("not supported")
	}
	_, err = HostSensor{Key: "acpitz_input"}.ReadTemp()
	require.EqualError(t, err, "not supported")
}

func TestIPMI(t *testing.T) {
	var cmds []string
	i := NewIPMI("ipmitool", 1)
	i.command = func(cmd string) (string, error) {
		cmds = append(cmds, cmd)
		return " 32 ", nil
	}

	duty, err := i.Duty()
	require.NoError(t, err)
	require.Equal(t, 50, duty)

	require.NoError(t, i.SetDuty(50))
	require.NoError(t, i.SetDuty(250))
	require.NoError(t, i.SetFullMode())

	require.Equal(t, []string{
		"ipmitool raw 0x30 0x70 0x66 0x00 0x1",
		"ipmitool raw 0x30 0x70 0x66 0x01 0x1 0x32",
		"ipmitool raw 0x30 0x70 0x66 0x01 0x1 0x64",
		"ipmitool raw 0x30 0x45 0x01 0x01",
	}, cmds)

	i.command = func(string) (string, error) { return "", errors.New("bmc unreachable") }
	_, err = i.Duty()
	require.ErrorContains(t, err, "bmc unreachable")
	require.ErrorContains(t, i.SetDuty(10), "bmc unreachable")
}
