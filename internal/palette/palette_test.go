package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupsShape(t *testing.T) {
	assert.Len(t, Groups, 4)
	for _, g := range Groups {
		assert.NotEmpty(t, g.Name)
		assert.Len(t, g.Colors, 6)
		for _, c := range g.Colors {
			assert.NotEmpty(t, c.Name)
			assert.True(t, ValidHex(c.Hex), "palette hex %q must be normalized", c.Hex)
		}
	}
}

func TestNormalize(t *testing.T) {
	hex, ok := Normalize("  #9CAF88 ")
	assert.True(t, ok)
	assert.Equal(t, "#9caf88", hex)

	for _, bad := range []string{"", "9caf88", "#9cf", "#9caf8", "#9caf889", "#gggggg", "sage"} {
		_, ok := Normalize(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("#9caf88"))
	assert.True(t, Contains("#9CAF88"), "lookup is case-insensitive")
	assert.False(t, Contains("#123456"))
}
