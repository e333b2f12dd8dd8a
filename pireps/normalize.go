package pireps

import (
	"fmt"
	"strconv"
	"strings"
)

// The feed splits each meteorological condition across several
// optional sub-fields. These helpers join whichever parts are present
// with single spaces and trim the result; a zero numeric sub-field
// means the feed omitted it.

// formatWind renders "direction@speed" with either part optional:
// "270@15", "270", "@15", or "".
func formatWind(dir, speed int) string {
	var b strings.Builder
	if dir != 0 {
		b.WriteString(strconv.Itoa(dir))
	}
	if speed != 0 {
		b.WriteString("@")
		b.WriteString(strconv.Itoa(speed))
	}
	return b.String()
}

// formatIcing renders "intensity type".
func formatIcing(intensity, icingType string) string {
	return collapse(intensity + " " + icingType)
}

// formatSky renders "coverage base-top" with base and top zero-padded
// to three digits, e.g. "SCT 045-060".
func formatSky(coverage string, base, top int) string {
	var b strings.Builder
	if coverage != "" {
		b.WriteString(coverage)
		b.WriteString(" ")
	}
	if base != 0 {
		fmt.Fprintf(&b, "%03d", base)
	}
	if top != 0 {
		fmt.Fprintf(&b, "-%03d", top)
	}
	return strings.TrimSpace(b.String())
}

// formatTurbulence renders "intensity frequency type".
func formatTurbulence(intensity, frequency, turbType string) string {
	return collapse(intensity + " " + frequency + " " + turbType)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
