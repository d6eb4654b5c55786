package control

//go:generate mockgen -destination "mock_device_test.go" -package $GOPACKAGE -write_package_comment=false . Sensor,Actuator

// Sensor is anything able to give the controlled temperature,
// already scaled to the curve unit.
type Sensor interface {
	ReadTemp() (temp int, err error)
}

// Actuator is the fan being driven.
type Actuator interface {
	Duty() (duty int, err error)
	SetDuty(duty int) error
}
