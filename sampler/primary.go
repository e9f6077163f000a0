package sampler

import (
	"math"

	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// pinholeRayOffset is the screen-space normal offset used to straddle a
// sampled edge point. Both the pinhole and the fisheye branch offset their
// ray pair by this amount.
const pinholeRayOffset = 1e-6

// fisheyeOffsetDivisor is the numerator of epsPrime = fisheyeOffsetDivisor /
// |edgeLocal|, the divisor of the fisheye line-Jacobian finite difference.
// epsPrime is not used to offset the fisheye ray pair.
const fisheyeOffsetDivisor = 1e-5

// fisheyeJacobianStep is the fixed finite-difference step applied to the
// edge parameter t when estimating the fisheye line Jacobian. It is
// distinct from epsPrime, the divisor used to turn that finite difference
// into a derivative.
const fisheyeJacobianStep = 1e-6

// screenDifferentialDelta is the finite-difference step used to build the
// ray differential at a sampled primary edge point.
const screenDifferentialDelta = 1e-4

// SamplePrimaryEdges draws one primary-edge sample per entry of samples,
// writing a record, a straddling ray pair and its throughput/channel
// multipliers for each into the caller-supplied, index-disjoint output
// slices. dColorAt supplies the pixel-gradient image read at
// the sampled screen position.
func SamplePrimaryEdges(
	s *EdgeSampler,
	camera scene.Camera,
	samples []PrimaryEdgeSample,
	image scene.GradientImage,
	records []PrimaryEdgeRecord,
	pairs []RayPair,
	upperContrib, lowerContrib []Contribution,
) {
	channels := image.Channels()
	for idx, smp := range samples {
		rec, pair, upper, lower := samplePrimaryEdge(s, camera, smp, image, channels)
		records[idx] = rec
		pairs[idx] = pair
		upperContrib[idx] = upper
		lowerContrib[idx] = lower
	}
}

func samplePrimaryEdge(
	s *EdgeSampler,
	camera scene.Camera,
	smp PrimaryEdgeSample,
	image scene.GradientImage,
	channels scene.ChannelInfo,
) (PrimaryEdgeRecord, RayPair, Contribution, Contribution) {
	invalidContrib := Contribution{ChannelMultipliers: make([]float32, channels.NumTotalDimensions)}

	edgeID := s.Primary.Sample(smp.EdgeSel)
	if edgeID < 0 || s.Primary.Pmf[edgeID] == 0 {
		return InvalidPrimaryEdgeRecord, RayPair{}, invalidContrib, invalidContrib
	}
	edge := s.Edges[edgeID]
	shape := s.Shapes[edge.ShapeID]
	v0 := shape.Vertex(edge.V0)
	v1 := shape.Vertex(edge.V1)

	v0ss, v1ss, ok := camera.Project(v0, v1)
	if !ok {
		return InvalidPrimaryEdgeRecord, RayPair{}, invalidContrib, invalidContrib
	}

	pmf := s.Primary.Pmf[edgeID]

	var edgePt types.Vec2
	jacobian := float32(1)
	if !camera.Fisheye() {
		edgePt = v0ss.Add(v1ss.Sub(v0ss).Mul(smp.T))
		if !camera.InScreen(edgePt) {
			return InvalidPrimaryEdgeRecord, RayPair{}, invalidContrib, invalidContrib
		}
	} else {
		v0dir := camera.ScreenToCamera(v0ss)
		v1dir := camera.ScreenToCamera(v1ss)
		edgeLocal := v0dir.Add(v1dir.Sub(v0dir).Mul(smp.T))
		epsPrime := fisheyeOffsetDivisor / edgeLocal.Len()
		edgePt = camera.CameraToScreen(edgeLocal)
		if !camera.InScreen(edgePt) {
			return InvalidPrimaryEdgeRecord, RayPair{}, invalidContrib, invalidContrib
		}

		tDelta := smp.T + fisheyeJacobianStep
		if tDelta > 1 {
			tDelta = smp.T - fisheyeJacobianStep
		}
		edgeLocalDelta := v0dir.Add(v1dir.Sub(v0dir).Mul(tDelta))
		edgePtDelta := camera.CameraToScreen(edgeLocalDelta)
		lineJacobian := edgePtDelta.Sub(edgePt).Len() / epsPrime

		dDirX, dDirY := camera.DScreenToCamera(edgePt)
		cross := v0dir.Cross(v1dir)
		gx := dDirX.Dot(cross)
		gy := dDirY.Dot(cross)
		gradLen := float32(math.Sqrt(float64(gx*gx + gy*gy)))
		diracJacobian := float32(0)
		if gradLen > 1e-12 {
			diracJacobian = 1 / gradLen
		}
		jacobian = lineJacobian * diracJacobian
	}

	if jacobian == 0 {
		return InvalidPrimaryEdgeRecord, RayPair{}, invalidContrib, invalidContrib
	}

	screenNormal := screenSpaceNormal(v0ss, v1ss)
	upperRay := camera.SamplePrimary(edgePt.Add(screenNormal.Mul(pinholeRayOffset)))
	lowerRay := camera.SamplePrimary(edgePt.Sub(screenNormal.Mul(pinholeRayOffset)))
	diff := rayDifferentialAt(camera, edgePt)

	dColor := image.RadianceGradient(edgePt)
	channelMul := make([]float32, channels.NumTotalDimensions)
	image.ChannelMultipliers(edgePt, channelMul)

	scaleUpper := jacobian / pmf
	scaleLower := -scaleUpper

	upperChannels := make([]float32, len(channelMul))
	lowerChannels := make([]float32, len(channelMul))
	for i, c := range channelMul {
		upperChannels[i] = c * scaleUpper
		lowerChannels[i] = c * scaleLower
	}

	rec := PrimaryEdgeRecord{Edge: edge, ScreenPoint: edgePt}
	pair := RayPair{Upper: upperRay, Lower: lowerRay, Diff: diff}
	upper := Contribution{Throughput: dColor.Mul(scaleUpper), ChannelMultipliers: upperChannels}
	lower := Contribution{Throughput: dColor.Mul(scaleLower), ChannelMultipliers: lowerChannels}
	return rec, pair, upper, lower
}

// screenSpaceNormal returns the unit normal, in screen space, of the
// segment v0-v1.
func screenSpaceNormal(v0, v1 types.Vec2) types.Vec2 {
	d := v1.Sub(v0)
	n := types.XY(-d[1], d[0])
	l := n.Len()
	if l < 1e-12 {
		return types.Vec2{}
	}
	return n.Mul(1 / l)
}

// rayDifferentialAt builds the ray differential at a sampled screen point
// via a small finite-difference perturbation in screen x and y.
func rayDifferentialAt(camera scene.Camera, p types.Vec2) scene.RayDifferential {
	center := camera.SamplePrimary(p)
	dx := camera.SamplePrimary(p.Add(types.XY(screenDifferentialDelta, 0)))
	dy := camera.SamplePrimary(p.Add(types.XY(0, screenDifferentialDelta)))
	return scene.RayDifferential{
		OrgDx: dx.Org.Sub(center.Org).Mul(1 / screenDifferentialDelta),
		OrgDy: dy.Org.Sub(center.Org).Mul(1 / screenDifferentialDelta),
		DirDx: dx.Dir.Sub(center.Dir).Mul(1 / screenDifferentialDelta),
		DirDy: dy.Dir.Sub(center.Dir).Mul(1 / screenDifferentialDelta),
	}
}
