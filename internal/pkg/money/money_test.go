package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, 1234.56, Parse("1234.56"))
	assert.Equal(t, 0.0, Parse("not a number"))
	assert.Equal(t, 0.0, Parse(""))
	assert.Equal(t, 0.0, Parse("-50"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, 0.0, Sanitize(math.NaN()))
	assert.Equal(t, 0.0, Sanitize(math.Inf(1)))
	assert.Equal(t, 0.0, Sanitize(math.Inf(-1)))
	assert.Equal(t, 0.0, Sanitize(-10))
	assert.Equal(t, 42.5, Sanitize(42.5))
	assert.Equal(t, 0.0, Sanitize(0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1250.0, Round2(1250.0000001))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 99.99, Round2(99.994))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(100, 100.0000005, 0))
	assert.False(t, Equal(100, 100.1, 0))
	assert.True(t, Equal(100, 100.05, 0.1))
}
