package volume

import "math"

// Display maps a normalized sensor reading to the 0-100% shown to the
// user. Rounding is half away from zero.
func Display(raw float64) int {
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	return int(math.Round(raw * 100))
}

// Output maps a reading to the 9-100% actually applied to the mixer. The
// bottom of the range is inaudible or cuts out on the target hardware, so
// the full sensor sweep is rescaled onto [9,100].
func Output(raw float64) int {
	out := 9 + int(math.Round(float64(Display(raw))/100*91))
	if out < 9 {
		out = 9
	}
	if out > 100 {
		out = 100
	}
	return out
}
