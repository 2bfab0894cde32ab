// Package export writes finished crystals and run histories to disk.
package export

import (
	"math"
	"strconv"
	"strings"
)

// FileName returns the artefact name for a (beta, gamma) pair, e.g.
// "beta=0.4,gamma=0.001.png". Existing result directories are keyed on this
// exact spelling, so floats keep the shortest round-trip form with a
// trailing ".0" on integral values.
func FileName(beta, gamma float64, ext string) string {
	return Stem(beta, gamma) + "." + strings.TrimPrefix(ext, ".")
}

// Stem is FileName without the extension.
func Stem(beta, gamma float64) string {
	return "beta=" + FormatFloat(beta) + ",gamma=" + FormatFloat(gamma)
}

// FormatFloat renders v as the shortest string that parses back to v,
// switching to exponent form below 1e-4 and from 1e16 up.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	a := math.Abs(v)
	if a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
