package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/oblq/fancontrol/internal/control"
	"github.com/oblq/fancontrol/internal/device"
	"github.com/oblq/fancontrol/internal/device/commanderpro"
	"github.com/oblq/fancontrol/internal/telemetry"
)

// options are read, in increasing priority, from the built-in defaults,
// the YAML config file, the environment and the command line.
type options struct {
	Sensor  string `short:"T" long:"sensor" env:"FANCONTROL_SENSOR" yaml:"thermal_file" value-name:"PATH" description:"temperature sensor file"`
	Fan     string `short:"F" long:"fan" env:"FANCONTROL_FAN" yaml:"fan_file" value-name:"PATH" description:"fan duty file"`
	Divisor int    `short:"d" long:"divisor" env:"FANCONTROL_DIVISOR" yaml:"temp_div" description:"raw sensor units per curve unit"`
	Debug   bool   `short:"D" long:"debug" env:"FANCONTROL_DEBUG" yaml:"debug" description:"enable debug tracing"`
	Curve   string `short:"c" long:"curve" env:"FANCONTROL_CURVE" yaml:"curve_data" value-name:"CURVE" description:"fan curve as temp:duty couples, eg.: 35:0,45:36,60:100"`

	Hysteresis int           `long:"hysteresis" yaml:"hysteresis" description:"degrees below the activation point a running fan is kept on"`
	Deadband   int           `long:"deadband" yaml:"deadband" description:"minimum duty change written to the fan"`
	Interval   time.Duration `long:"interval" yaml:"check_interval" description:"time between checks"`

	SensorCmd string `long:"sensor-cmd" yaml:"sensor_cmd" value-name:"CMD" description:"shell command printing the raw temperature, replaces --sensor"`
	SensorKey string `long:"sensor-key" yaml:"sensor_key" value-name:"KEY" description:"host sensor key, eg.: coretemp_core_0_input, replaces --sensor"`

	IPMICmd             string `long:"ipmi-cmd" yaml:"ipmi_cmd" value-name:"CMD" description:"ipmitool preamble command, drives an ipmi fan zone instead of --fan"`
	IPMIZone            uint8  `long:"ipmi-zone" yaml:"ipmi_zone" description:"ipmi fan zone, 0 for cpu, 1 for peripherals"`
	CommanderProChannel int    `long:"commanderpro-channel" yaml:"commanderpro_channel" description:"Corsair Commander Pro fan channel (0-5) to drive instead of --fan, -1 to disable"`
	CommanderProSensor  int    `long:"commanderpro-sensor" yaml:"commanderpro_sensor" description:"Corsair Commander Pro temperature probe (0-3) to read instead of --sensor, -1 to disable"`

	MQTTBroker string `long:"mqtt-broker" yaml:"mqtt_broker" value-name:"URL" description:"publish every tick to this broker, eg.: tcp://127.0.0.1:1883"`
	MQTTTopic  string `long:"mqtt-topic" yaml:"mqtt_topic" description:"telemetry topic"`
	Listen     string `long:"listen" yaml:"listen" value-name:"ADDR" description:"serve the status api on this address, eg.: :9102"`

	Config  string `long:"config" yaml:"-" value-name:"FILE" description:"YAML config file"`
	EnvFile string `long:"env-file" yaml:"-" value-name:"FILE" description:"dotenv file loaded before reading the environment"`
}

// bootstrap is parsed first to locate the config sources.
type bootstrap struct {
	Config  string `long:"config"`
	EnvFile string `long:"env-file"`
}

func defaultOptions() options {
	return options{
		Sensor:              device.DefaultSensorPath,
		Fan:                 device.DefaultFanPath,
		Divisor:             device.DefaultDivisor,
		Hysteresis:          control.DefaultHysteresis,
		Deadband:            control.DefaultDeadband,
		Interval:            control.DefaultPollInterval,
		CommanderProChannel: -1,
		CommanderProSensor:  -1,
		MQTTTopic:           telemetry.DefaultTopic,
	}
}

// parseOptions returns the parser too, so that callers can print the usage.
func parseOptions(args []string) (*options, *flags.Parser, error) {
	var b bootstrap
	if _, err := flags.NewParser(&b, flags.IgnoreUnknown).ParseArgs(args); err != nil {
		return nil, nil, err
	}

	if b.EnvFile != "" {
		// existing environment variables take precedence over the file
		if err := godotenv.Load(b.EnvFile); err != nil {
			return nil, nil, fmt.Errorf("unable to load env file: %w", err)
		}
	}

	opts := defaultOptions()
	if b.Config != "" {
		if err := loadConfigFile(b.Config, &opts); err != nil {
			return nil, nil, err
		}
	}

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "fancontrol"
	parser.Usage = "-c 35:0,45:36,60:100 [OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, parser, err
	}
	return &opts, parser, nil
}

func loadConfigFile(path string, opts *options) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

func (o *options) controlConfig() control.Config {
	return control.Config{
		Hysteresis:   o.Hysteresis,
		Deadband:     o.Deadband,
		PollInterval: o.Interval,
	}
}

// rawSensor reports whether the sensor output is scaled by the divisor.
func (o *options) rawSensor() bool {
	if o.SensorCmd != "" {
		return true
	}
	return o.SensorKey == "" && o.CommanderProSensor < 0
}

// hardware is the sensor and the fan the loop is bound to.
type hardware struct {
	sensor     control.Sensor
	sensorName string
	fan        control.Actuator
	fanName    string

	closers []func() error
}

func (h *hardware) Close() error {
	var err error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if cerr := h.closers[i](); err == nil {
			err = cerr
		}
	}
	return err
}

// openHardware binds the configured backends,
// a Commander Pro is opened once even when it is both the sensor and the fan.
func (o *options) openHardware() (_ *hardware, err error) {
	h := &hardware{}
	defer func() {
		if err != nil {
			_ = h.Close()
		}
	}()

	var cp *commanderpro.Device
	if o.CommanderProChannel >= 0 || o.CommanderProSensor >= 0 {
		if cp, err = commanderproOpen(); err != nil {
			return nil, fmt.Errorf("unable to open the Commander Pro: %w", err)
		}
		h.closers = append(h.closers, cp.Close)
	}

	switch {
	case o.SensorCmd != "":
		h.sensor, h.sensorName = device.CommandSensor{Cmd: o.SensorCmd, Divisor: o.Divisor}, "command: "+o.SensorCmd
	case o.SensorKey != "":
		h.sensor, h.sensorName = device.HostSensor{Key: o.SensorKey}, "host sensor: "+o.SensorKey
	case o.CommanderProSensor >= 0:
		if h.sensor, err = cp.TempSensor(o.CommanderProSensor); err != nil {
			return nil, err
		}
		var connected [4]bool
		if connected, err = cp.ConnectedSensors(); err != nil {
			return nil, err
		}
		if !connected[o.CommanderProSensor] {
			return nil, fmt.Errorf("commanderpro probe %d is not connected", o.CommanderProSensor)
		}
		h.sensorName = fmt.Sprintf("commanderpro probe %d", o.CommanderProSensor)
	default:
		h.sensor, h.sensorName = device.FileSensor{Path: o.Sensor, Divisor: o.Divisor}, o.Sensor
	}

	switch {
	case o.CommanderProChannel >= 0:
		if h.fan, err = cp.Fan(o.CommanderProChannel); err != nil {
			return nil, err
		}
		h.fanName = fmt.Sprintf("commanderpro channel %d", o.CommanderProChannel)
	case o.IPMICmd != "":
		ipmi := device.NewIPMI(o.IPMICmd, o.IPMIZone)
		if err = ipmi.SetFullMode(); err != nil {
			return nil, err
		}
		h.fan, h.fanName = ipmi, fmt.Sprintf("ipmi zone %d", o.IPMIZone)
	default:
		h.fan, h.fanName = device.FileActuator{Path: o.Fan}, o.Fan
	}

	return h, nil
}
