package cmd

import (
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// constantGradientImage is a trivial scene.GradientImage that reports the
// same per-channel gradient everywhere; image accumulation is out of
// scope, so the demo CLI stands in a flat loss gradient rather than
// reading a real rendered frame.
type constantGradientImage struct {
	channels scene.ChannelInfo
	color    types.Vec3
}

func newConstantGradientImage(color types.Vec3) *constantGradientImage {
	return &constantGradientImage{
		channels: scene.ChannelInfo{NumTotalDimensions: 3, RadianceDimension: 0},
		color:    color,
	}
}

func (g *constantGradientImage) Channels() scene.ChannelInfo { return g.channels }

func (g *constantGradientImage) RadianceGradient(p types.Vec2) types.Vec3 { return g.color }

func (g *constantGradientImage) ChannelMultipliers(p types.Vec2, dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < 3 && g.channels.RadianceDimension+i < len(dst); i++ {
		dst[g.channels.RadianceDimension+i] = g.color[i]
	}
}
