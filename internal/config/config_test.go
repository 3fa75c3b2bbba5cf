package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThreshold_Default(t *testing.T) {
	t.Setenv("T", "")
	require.Equal(t, DefaultThreshold, Threshold())
}

func TestThreshold_Parsed(t *testing.T) {
	t.Setenv("T", "0.5")
	require.Equal(t, 0.5, Threshold())
}

func TestThreshold_InvalidFallsBackToDefault(t *testing.T) {
	t.Setenv("T", "not-a-number")
	require.Equal(t, DefaultThreshold, Threshold())
}
