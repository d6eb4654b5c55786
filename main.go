package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/oklog/run"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/oblq/fancontrol/internal/control"
	"github.com/oblq/fancontrol/internal/curve"
	"github.com/oblq/fancontrol/internal/device"
	"github.com/oblq/fancontrol/internal/device/commanderpro"
	"github.com/oblq/fancontrol/internal/status"
	"github.com/oblq/fancontrol/internal/telemetry"
)

var commanderproOpen = commanderpro.Open

func main() {
	atexit.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the controller until a termination signal arrives or ctx is done,
// it returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, parser, err := parseOptions(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		return usageError(stderr, parser, err)
	}

	c := curve.Parse(opts.Curve)
	if err := c.Validate(); err != nil {
		return usageError(stderr, parser, err)
	}
	if opts.rawSensor() && opts.Divisor <= 0 {
		return usageError(stderr, parser, device.ErrInvalidDivisor)
	}

	runID := xid.New().String()
	logger := newLogger(stderr, opts.Debug).With("run", runID)

	hw, err := opts.openHardware()
	if err != nil {
		logger.Error("unable to open the hardware", "err", err)
		return 1
	}
	defer func() {
		if err := hw.Close(); err != nil {
			logger.Warn("unable to release the hardware", "err", err)
		}
	}()

	logger.Debug("fancontrol started", "monitoring", hw.sensorName, "controlling", hw.fanName, "points", c.Len())
	if opts.SensorKey != "" {
		if keys, err := device.HostSensorKeys(); err == nil {
			logger.Debug("available host sensors", "keys", keys)
		}
	}

	loopOpts := []control.Option{control.WithLogger(logger)}

	var g run.Group

	if opts.MQTTBroker != "" {
		publisher, err := telemetry.Dial(opts.MQTTBroker, "fancontrol-"+runID, opts.MQTTTopic, runID, logger)
		if err != nil {
			logger.Error("unable to start telemetry", "err", err)
			return 1
		}
		defer publisher.Close()
		loopOpts = append(loopOpts, control.WithObserver(publisher))
	}

	var statusServer *status.Server
	if opts.Listen != "" {
		statusServer = status.New(runID)
		loopOpts = append(loopOpts, control.WithObserver(statusServer))
	}

	loop, err := control.New(opts.controlConfig(), c, hw.sensor, hw.fan, loopOpts...)
	if err != nil {
		return usageError(stderr, parser, err)
	}
	// a fatal exit must not leave the fan at its last duty
	atexit.Register(func() { _ = loop.Stop() })

	{
		loopCtx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			return loop.Run(loopCtx)
		}, func(error) {
			cancel()
		})
	}

	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))

	if statusServer != nil {
		statusServer.Attach(loop)
		g.Add(func() error {
			logger.Info("serving status api", "addr", opts.Listen)
			return statusServer.ListenAndServe(opts.Listen)
		}, func(error) {
			statusServer.Shutdown()
		})
	}

	err = g.Run()

	var sigErr run.SignalError
	switch {
	case errors.As(err, &sigErr):
		logger.Info("exiting", "signal", sigErr.Signal.String())
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("exiting")
	default:
		logger.Error("exiting", "err", err)
		return 1
	}

	return 0
}

func usageError(w io.Writer, parser *flags.Parser, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	if parser != nil {
		parser.WriteHelp(w)
	}
	return 1
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
