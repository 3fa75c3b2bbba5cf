// Package config reads the module's single environment-driven knob: the move-
// detection similarity threshold T. See SPEC_FULL.md §6, §9.
package config

import (
	"os"
	"strconv"
)

// DefaultThreshold is used when the T environment variable is unset or
// unparseable.
const DefaultThreshold = 0.3

// Threshold reads T from the environment, a real number in [0, 1] used as
// floor(T * max(len_r, len_a)) to cap token-edit distance in the Mover. If T
// is unset or fails to parse as a float, DefaultThreshold is returned.
func Threshold() float64 {
	raw := os.Getenv("T")
	if raw == "" {
		return DefaultThreshold
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return DefaultThreshold
	}
	return v
}
