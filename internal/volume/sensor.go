package volume

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Sensor yields one normalized reading in [0,1] per call. Reads are
// expected to be cheap and side-effect free.
type Sensor interface {
	Read() (float64, error)
}

// IIOSensor reads a raw ADC value from a sysfs attribute, e.g.
// /sys/bus/iio/devices/iio:device0/in_voltage0_raw for an MCP3008 behind
// the iio subsystem.
type IIOSensor struct {
	Path string
	Max  int // full-scale raw value, e.g. 1023 for a 10-bit ADC
}

func (s *IIOSensor) Read() (float64, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	max := s.Max
	if max <= 0 {
		max = 1023
	}

	v := float64(n) / float64(max)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v, nil
}
