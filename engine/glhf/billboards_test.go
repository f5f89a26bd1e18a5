package glhf

import (
	"strings"
	"testing"

	"github.com/memmaker/emberglow/engine/particles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillboardInstanceFormatMatchesParticleLayout(t *testing.T) {
	assert.Equal(t, particles.InstanceStride, billboardInstanceFormat.Size())
	assert.Len(t, billboardQuad, 6*2)
}

// The sprite only tints; the soft circle always shapes the alpha.
func TestBillboardFalloffAppliesWithSprite(t *testing.T) {
	src := billboardFragmentShaderSource
	spriteBranch := strings.Index(src, "if (hasSprite != 0) {")
	require.GreaterOrEqual(t, spriteBranch, 0)
	branchEnd := spriteBranch + strings.Index(src[spriteBranch:], "}")
	falloff := strings.Index(src, "color.a *= falloff;")

	require.GreaterOrEqual(t, falloff, 0)
	assert.Greater(t, falloff, branchEnd)
	assert.NotContains(t, src, "} else {")
}
