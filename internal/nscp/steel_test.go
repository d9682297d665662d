package nscp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSteel(t *testing.T) {
	g, err := LookupSteel("A36")
	require.NoError(t, err)
	assert.Equal(t, 248.0, g.Fy)

	_, err = LookupSteel("mild")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a36")
}

func TestMemberCapacity(t *testing.T) {
	c, err := MemberCapacity(248, 2000)
	require.NoError(t, err)
	assert.InDelta(t, 446400, c, 1e-6)

	for _, in := range [][2]float64{{0, 100}, {248, 0}, {-1, 5}} {
		_, err := MemberCapacity(in[0], in[1])
		assert.Error(t, err, in)
	}
}
