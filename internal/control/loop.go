// Package control runs the fan control loop: sample the temperature,
// map it on the curve, apply hysteresis and write the duty when needed.
package control

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oblq/fancontrol/internal/curve"
)

// Report describes a tick that reached the write decision.
type Report struct {
	Temp    int  `json:"temp"`
	Current int  `json:"current"`
	Raw     int  `json:"raw"`
	Target  int  `json:"target"`
	Written bool `json:"written"`
}

// Observer is notified after every decided tick, from the loop goroutine.
type Observer interface {
	Observe(r Report)
}

type Option func(*Loop)

func WithClock(clock Clock) Option {
	return func(l *Loop) { l.clock = clock }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

func WithObserver(o Observer) Option {
	return func(l *Loop) { l.observers = append(l.observers, o) }
}

// Loop is the single fan controller.
type Loop struct {
	cfg        Config
	curve      curve.Curve
	hysteresis Hysteresis

	sensor   Sensor
	actuator Actuator
	guard    *StopGuard

	clock     Clock
	logger    *slog.Logger
	observers []Observer

	stats counters
}

// New validates cfg and c and returns a Loop ready to Run.
func New(cfg Config, c curve.Curve, sensor Sensor, actuator Actuator, opts ...Option) (*Loop, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid control config: %w", err)
	}

	l := &Loop{
		cfg:        cfg,
		curve:      c,
		hysteresis: Hysteresis{Margin: cfg.Hysteresis},
		sensor:     sensor,
		actuator:   actuator,
		clock:      SystemClock{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.guard = NewStopGuard(actuator, l.logger)

	return l, nil
}

// Curve returns the curve driving the loop.
func (l *Loop) Curve() curve.Curve {
	return l.curve
}

// Stats returns a snapshot of the tick counters, safe to call from any goroutine.
func (l *Loop) Stats() Stats {
	return l.stats.snapshot()
}

// Run ticks every poll interval until ctx is done,
// then stops the fan before returning.
func (l *Loop) Run(ctx context.Context) error {
	defer func() { _ = l.Stop() }()

	l.logger.Info("control loop started",
		"curve", l.curve.String(),
		"interval", l.cfg.PollInterval,
		"hysteresis", l.cfg.Hysteresis,
		"deadband", l.cfg.Deadband)

	for ctx.Err() == nil {
		l.Tick()
		if err := l.clock.Sleep(ctx, l.cfg.PollInterval); err != nil {
			break
		}
	}

	l.logger.Info("control loop stopped")
	return nil
}

// Stop writes duty 0 to the actuator, only the first call has an effect.
func (l *Loop) Stop() error {
	return l.guard.Release()
}

// Tick runs one sample/decide/write cycle.
// Every failure degrades the tick to a no-op, the next tick is the retry.
func (l *Loop) Tick() {
	l.stats.ticks.Add(1)

	temp, err := l.sensor.ReadTemp()
	if err != nil {
		l.stats.sensorFailures.Add(1)
		l.logger.Debug("temperature unavailable, skipping tick", "err", err)
		return
	}

	current, err := l.actuator.Duty()
	if err != nil {
		l.stats.actuatorReadFailures.Add(1)
		l.logger.Debug("fan duty unavailable, assuming stopped", "err", err)
		current = 0
	}

	raw := l.curve.Target(temp)
	target := l.hysteresis.Apply(l.curve, temp, current, raw)
	r := Report{Temp: temp, Current: current, Raw: raw, Target: target}

	if ShouldWrite(target, current, l.cfg.Deadband) {
		if err := l.actuator.SetDuty(target); err != nil {
			l.stats.writeFailures.Add(1)
			l.logger.Warn("unable to set fan duty", "duty", target, "err", err)
		} else {
			l.stats.writes.Add(1)
			r.Written = true
		}
	} else {
		l.stats.suppressed.Add(1)
	}

	l.logger.Debug("tick", "temp", temp, "target", target, "current", current, "written", r.Written)

	for _, o := range l.observers {
		o.Observe(r)
	}
}

// ShouldWrite reports whether moving from current to target is worth a write:
// the change must exceed deadband, unless the fan starts or stops.
func ShouldWrite(target, current, deadband int) bool {
	diff := target - current
	if diff < 0 {
		diff = -diff
	}
	return diff > deadband || (target == 0) != (current == 0)
}
