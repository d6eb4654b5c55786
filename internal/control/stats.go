package control

import "sync/atomic"

// Stats counts what happened to the ticks of a Loop.
// Failures never stop the loop, they only show up here.
type Stats struct {
	Ticks                int64 `json:"ticks"`
	SensorFailures       int64 `json:"sensor_failures"`
	ActuatorReadFailures int64 `json:"actuator_read_failures"`
	Writes               int64 `json:"writes"`
	WriteFailures        int64 `json:"write_failures"`
	Suppressed           int64 `json:"suppressed"`
}

type counters struct {
	ticks                atomic.Int64
	sensorFailures       atomic.Int64
	actuatorReadFailures atomic.Int64
	writes               atomic.Int64
	writeFailures        atomic.Int64
	suppressed           atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Ticks:                c.ticks.Load(),
		SensorFailures:       c.sensorFailures.Load(),
		ActuatorReadFailures: c.actuatorReadFailures.Load(),
		Writes:               c.writes.Load(),
		WriteFailures:        c.writeFailures.Load(),
		Suppressed:           c.suppressed.Load(),
	}
}
