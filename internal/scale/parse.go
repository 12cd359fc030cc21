package scale

import (
	"strconv"
	"strings"
)

// linePrefix is what the scale firmware prints in front of every sample.
const linePrefix = "Peso (g):"

// ParseLine extracts a weight sample from one raw line of scale output.
// Only lines carrying the firmware prefix count; everything else is noise
// and reports ok=false. Negative readings (badly tared load cell) clamp
// to zero.
func ParseLine(raw string) (grams float64, ok bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, linePrefix) {
		return 0, false
	}
	value := strings.TrimSpace(raw[len(linePrefix):])
	grams, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	if grams < 0 {
		grams = 0
	}
	return grams, true
}
