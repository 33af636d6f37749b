package download

import (
	"regexp"
	"strconv"
	"strings"
)

// ansiPattern matches the color escape sequences yt-dlp wraps around its
// percent strings.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// NormalizePercent converts an engine percent string such as
// "45.3%\x1b[0m" into a float in [0,100]. It is total: malformed input
// normalizes to 0.0, never an error.
func NormalizePercent(raw string) float64 {
	s := ansiPattern.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	if value < 0 {
		return 0.0
	}
	if value > 100 {
		return 100.0
	}
	return value
}
