package uni

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextWidthDefault(t *testing.T) {
	val := "áb世"

	assert.Equal(t, 4, TextWidth(val, nil))
	assert.Equal(t, 4, TextWidth([]byte(val), nil))
}

func TestTextWidthOptions(t *testing.T) {
	star := "a☆"

	assert.Equal(t, 2, TextWidth(star, nil))

	eastAsian := &Options{EastAsianWidth: true}
	assert.Equal(t, 3, TextWidth(star, eastAsian))
}
