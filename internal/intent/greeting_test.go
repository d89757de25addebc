package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreeter_FixedPicker(t *testing.T) {
	pool := greetingResponses
	for i := range pool {
		g := NewGreeter(FixedPicker(i))
		assert.Equal(t, pool[i], g.Respond(""))
	}
}

func TestGreeter_NamePrefix(t *testing.T) {
	g := NewGreeter(FixedPicker(0))
	got := g.Respond("Ana")
	assert.True(t, strings.HasPrefix(got, "Wonderful to meet you, Ana! "))
	assert.True(t, strings.HasSuffix(got, greetingResponses[0]))
}

func TestFixedPicker_Clamps(t *testing.T) {
	assert.Equal(t, 2, FixedPicker(7).Pick(5))
	assert.Equal(t, 4, FixedPicker(-1).Pick(5))
	assert.Equal(t, 0, FixedPicker(3).Pick(0))
}

func TestRandPicker_Reproducible(t *testing.T) {
	a, b := NewRandPicker(42), NewRandPicker(42)
	for i := 0; i < 20; i++ {
		got := a.Pick(5)
		assert.Equal(t, got, b.Pick(5))
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, 5)
	}
}

func TestNewGreeter_DefaultPicker(t *testing.T) {
	g := NewGreeter(nil)
	assert.Contains(t, greetingResponses, g.Respond(""))
}
