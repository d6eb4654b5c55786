package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_execute_tooFewPoints(t *testing.T) {
	dir := t.TempDir()
	fan := filepath.Join(dir, "cur_state")

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{
		"-T", writeTemp(t, "temp", "40000"), "-F", fan, "-c", "35:0,bad",
	}, &stdout, &stderr)

	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "too few curve points")
	require.Contains(t, stderr.String(), "Usage:")
	require.NoFileExists(t, fan)
}

func Test_execute_configErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "duplicate temperature", args: []string{"-c", "35:0,35:50"}, want: "duplicate curve temperature"},
		{name: "divisor", args: []string{"-c", "35:0,45:36", "-d", "0"}, want: "divisor must be positive"},
		{name: "interval", args: []string{"-c", "35:0,45:36", "--interval", "0s", "-F", filepath.Join(t.TempDir(), "fan")}, want: "poll interval must be positive"},
		{name: "unknown flag", args: []string{"-c", "35:0,45:36", "--pid"}, want: "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			require.Equal(t, 1, execute(context.Background(), tt.args, &stdout, &stderr))
			require.Contains(t, stderr.String(), tt.want)
		})
	}
}

func Test_execute_help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, execute(context.Background(), []string{"--help"}, &stdout, &stderr))
	require.Contains(t, stdout.String(), "--curve")
	require.Empty(t, stderr.String())
}

func Test_execute_stopsFanOnShutdown(t *testing.T) {
	sensor := writeTemp(t, "temp", "40000\n")
	fan := writeTemp(t, "cur_state", "0\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- execute(ctx, []string{
			"-T", sensor, "-F", fan, "-D", "-c", "60:100,35:0,45:36", "--interval", "10ms",
		}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(fan)
		return err == nil && string(data) == "18"
	}, 5*time.Second, 5*time.Millisecond)

	cancel()

	select {
	case code := <-done:
		require.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not stop")
	}

	data, err := os.ReadFile(fan)
	require.NoError(t, err)
	require.Equal(t, "0", string(data))
	require.Contains(t, stderr.String(), "fancontrol started")
	require.Contains(t, stderr.String(), "fan stopped")
}
