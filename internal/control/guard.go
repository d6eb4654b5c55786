package control

import (
	"log/slog"
	"sync"
)

// StopGuard owns the final stop write of an actuator:
// the first Release sets duty 0, later calls only return its outcome.
type StopGuard struct {
	actuator Actuator
	logger   *slog.Logger

	once sync.Once
	err  error
}

func NewStopGuard(actuator Actuator, logger *slog.Logger) *StopGuard {
	if logger == nil {
		logger = slog.Default()
	}
	return &StopGuard{actuator: actuator, logger: logger}
}

func (g *StopGuard) Release() error {
	g.once.Do(func() {
		g.err = g.actuator.SetDuty(0)
		if g.err != nil {
			g.logger.Error("unable to stop the fan", "err", g.err)
			return
		}
		g.logger.Info("fan stopped")
	})
	return g.err
}
