package sampler

import (
	"math"

	"github.com/gard-n/redner/bvh"
	"github.com/gard-n/redner/dist"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// minEdgeLength rejects degenerate secondary-edge candidates.
const minEdgeLength = 1e-5

// lineSearchTolerance and lineSearchMaxIters bound the hybrid
// bisection/Newton line-CDF inversion.
const (
	lineSearchTolerance = 1e-5
	lineSearchMaxIters  = 20
)

// secondaryNearPlaneMultiplier scales the straddling ray pair's TMin.
const secondaryNearPlaneMultiplier = 1e-3

// secondaryAngularOffsetScale is the numerator of the half-plane angular
// offset used to build the straddling ray pair: the offset shrinks with
// distance to the sampled point (offset = secondaryAngularOffsetScale /
// sampleDist), rather than being a fixed angle.
const secondaryAngularOffsetScale = 1e-5

// minBsdfLuminance rejects a sample whose BSDF value is effectively zero.
const minBsdfLuminance = 1e-6

// diffuseRayDifferentialKernel is the fixed low-pass direction-differential
// kernel used for the diffuse branch of ray differential propagation.
var diffuseRayDifferentialKernel = types.XYZ(0.03, 0.03, 0.03)

// SecondaryPixelInput is one active pixel's carried-forward path state, the
// per-invocation input to SampleSecondaryEdges.
type SecondaryPixelInput struct {
	IncomingRay  scene.Ray
	IncomingDiff scene.RayDifferential
	Intersection scene.Intersection
	Point        scene.SurfacePoint
	Material     scene.Material
	Throughput   types.Vec3
	MinRoughness float32
	DColor       types.Vec3
	ChannelMul   []float32
}

// SecondaryPixelOutput is the per-pixel result of SampleSecondaryEdges: a
// record, a straddling ray pair and the upper/lower contributions, plus
// the roughness carried forward to the next path segment.
type SecondaryPixelOutput struct {
	Record           SecondaryEdgeRecord
	Pair             RayPair
	Upper, Lower     Contribution
	EdgeMinRoughness float32
}

// SampleSecondaryEdges draws one secondary-edge sample per active pixel
//. camOrg is the primary camera's origin, used by the hierarchical
// tree's Olson-Zhang directional test when a tree is available.
func SampleSecondaryEdges(s *EdgeSampler, camOrg types.Vec3, inputs []SecondaryPixelInput, samples []SecondaryEdgeSample, out []SecondaryPixelOutput) {
	for idx, in := range inputs {
		out[idx] = sampleSecondaryEdge(s, camOrg, in, samples[idx])
	}
}

func invalidSecondaryOutput(nd int) SecondaryPixelOutput {
	return SecondaryPixelOutput{
		Record: InvalidSecondaryEdgeRecord,
		Upper:  Contribution{ChannelMultipliers: make([]float32, nd)},
		Lower:  Contribution{ChannelMultipliers: make([]float32, nd)},
	}
}

func sampleSecondaryEdge(s *EdgeSampler, camOrg types.Vec3, in SecondaryPixelInput, smp SecondaryEdgeSample) SecondaryPixelOutput {
	nd := len(in.ChannelMul)
	if in.MinRoughness > s.Options.MinRoughnessCutoff {
		return invalidSecondaryOutput(nd)
	}

	p := in.Point
	diffuse := in.Material.GetDiffuseReflectance(p)
	specular := in.Material.GetSpecularReflectance(p)
	yd := luminance(diffuse)
	ys := luminance(specular)
	diffusePmf := float32(1)
	if yd+ys > 0 {
		diffusePmf = yd / (yd + ys)
	}

	wo := in.IncomingRay.Dir.Neg().Normalize()
	isDiffuse := smp.BsdfComponent <= diffusePmf
	var mInv types.Mat3
	var mPmf float32
	if isDiffuse {
		mInv = types.Ident3()
		mPmf = diffusePmf
	} else {
		roughness := in.Material.GetRoughness(p)
		localWo := p.ShadingFrame.ToLocal(wo)
		cosTheta := localWo[2]
		if cosTheta > 1 {
			cosTheta = 1
		} else if cosTheta < -1 {
			cosTheta = -1
		}
		thetaI := float32(math.Acos(float64(cosTheta)))
		iso := isotropicFrame(localWo)
		mInv = s.Options.Table.MatrixAt(roughness, thetaI).Inverse().Mul(iso)
		mPmf = 1 - diffusePmf
	}
	if mPmf <= 0 {
		return invalidSecondaryOutput(nd)
	}
	mForward := mInv.Inverse()

	var edge scene.Edge
	var v0o, v1o types.Vec3
	var edgeSampleWeight float32
	ok := false

	if s.Tree != nil {
		edgeID, pmf := bvh.SampleTree(*s.Tree, p, mInv, camOrg, s.Options.Table, smp.EdgeSel)
		if edgeID >= 0 && pmf > 0 {
			edge = s.Edges[edgeID]
			if dist.IsSilhouette(s.Shapes, p.Position, edge) {
				v0o, v1o, ok = clipToTangentLTC(s, p, mInv, edge)
				if ok {
					edgeSampleWeight = 1 / pmf
				}
			}
		}
	} else {
		edge, v0o, v1o, edgeSampleWeight, ok = stratifiedResample(s, p, mInv, in.Intersection, smp.EdgeSel, smp.ResampleSel)
	}
	if !ok {
		return invalidSecondaryOutput(nd)
	}

	wt := v1o.Sub(v0o).Normalize()
	l0 := v0o.Dot(wt)
	l1 := v1o.Dot(wt)
	vo := v0o.Sub(wt.Mul(l0))
	d := vo.Len()
	if d < 1e-8 {
		return invalidSecondaryOutput(nd)
	}

	l, linePdf, solved := solveLineCDF(vo, wt, d, l0, l1, smp.T)
	if !solved {
		return invalidSecondaryOutput(nd)
	}

	shape := s.Shapes[edge.ShapeID]
	v0 := shape.Vertex(edge.V0)
	v1 := shape.Vertex(edge.V1)

	localPt := vo.Add(wt.Mul(l))
	relVec := p.ShadingFrame.ToWorld(mForward.MulVec3(localPt))
	sampleDist := relVec.Len()
	if sampleDist < 1e-12 {
		return invalidSecondaryOutput(nd)
	}
	sHat := relVec.Mul(1 / sampleDist)

	hHat := v0.Sub(p.Position).Cross(v1.Sub(p.Position)).Normalize()

	tMin := secondaryNearPlaneMultiplier * sampleDist
	angularOffset := secondaryAngularOffsetScale / sampleDist
	upperDir := sHat.Add(hHat.Mul(angularOffset)).Normalize()
	lowerDir := sHat.Sub(hHat.Mul(angularOffset)).Normalize()

	bsdfVal := in.Material.Bsdf(p, wo, sHat, in.MinRoughness)
	if luminance(bsdfVal) < minBsdfLuminance {
		return invalidSecondaryOutput(nd)
	}

	edgeWeight := edgeSampleWeight / (mPmf * linePdf)
	scaleUpper := edgeWeight
	scaleLower := -edgeWeight

	upperThroughput := in.Throughput.MulVec(bsdfVal).MulVec(in.DColor).Mul(scaleUpper)
	lowerThroughput := in.Throughput.MulVec(bsdfVal).MulVec(in.DColor).Mul(scaleLower)

	upperChannels := make([]float32, nd)
	lowerChannels := make([]float32, nd)
	for i, c := range in.ChannelMul {
		upperChannels[i] = c * scaleUpper
		lowerChannels[i] = c * scaleLower
	}

	diff := propagateRayDifferential(in, p, isDiffuse, sHat)

	return SecondaryPixelOutput{
		Record: SecondaryEdgeRecord{
			Edge:    edge,
			Point:   p.Position.Add(relVec),
			EdgeDir: p.ShadingFrame.ToWorld(mForward.MulVec3(wt)),
		},
		Pair: RayPair{
			Upper: scene.Ray{Org: p.Position, Dir: upperDir, TMin: tMin},
			Lower: scene.Ray{Org: p.Position, Dir: lowerDir, TMin: tMin},
			Diff:  diff,
		},
		Upper:            Contribution{Throughput: upperThroughput, ChannelMultipliers: upperChannels},
		Lower:            Contribution{Throughput: lowerThroughput, ChannelMultipliers: lowerChannels},
		EdgeMinRoughness: in.MinRoughness,
	}
}

func luminance(c types.Vec3) float32 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}

// isotropicFrame builds the azimuthal rotation that aligns the local x-axis
// with the projection of the view direction onto the tangent plane, the
// frame the fitted LTC matrices are defined relative to.
func isotropicFrame(localWo types.Vec3) types.Mat3 {
	proj := types.XYZ(localWo[0], localWo[1], 0)
	l := proj.Len()
	if l < 1e-6 {
		return types.Ident3()
	}
	t1 := proj.Mul(1 / l)
	z := types.XYZ(0, 0, 1)
	t2 := z.Cross(t1)
	return types.Mat3FromRows(t1, t2, z)
}

// clipToTangentLTC transforms edge's endpoints into p's shading-local,
// LTC-transformed space and clips the segment to the tangent half-space
// z >= 0. ok is false if the edge is entirely behind the
// surface or reduces to a single point.
func clipToTangentLTC(s *EdgeSampler, p scene.SurfacePoint, mInv types.Mat3, edge scene.Edge) (v0o, v1o types.Vec3, ok bool) {
	shape := s.Shapes[edge.ShapeID]
	v0 := shape.Vertex(edge.V0)
	v1 := shape.Vertex(edge.V1)

	a := mInv.MulVec3(p.ShadingFrame.ToLocal(v0.Sub(p.Position)))
	b := mInv.MulVec3(p.ShadingFrame.ToLocal(v1.Sub(p.Position)))

	switch {
	case a[2] >= 0 && b[2] >= 0:
		// both above, no clip needed
	case a[2] < 0 && b[2] < 0:
		return types.Vec3{}, types.Vec3{}, false
	default:
		t := a[2] / (a[2] - b[2])
		mid := a.Add(b.Sub(a).Mul(t))
		mid[2] = 0
		if a[2] < 0 {
			a = mid
		} else {
			b = mid
		}
	}
	if a.Distance(b) < minEdgeLength {
		return types.Vec3{}, types.Vec3{}, false
	}
	return a, b, true
}

// stratifiedResample implements the M-stratum importance resampling
// fallback over the flat secondary distribution, used when no
// hierarchical tree has been installed.
func stratifiedResample(s *EdgeSampler, p scene.SurfacePoint, mInv types.Mat3, hit scene.Intersection, edgeSel, resampleSel float32) (edge scene.Edge, v0o, v1o types.Vec3, weight float32, ok bool) {
	m := s.Options.Strata
	if m <= 0 {
		m = 64
	}
	type candidate struct {
		edge     scene.Edge
		v0o, v1o types.Vec3
		pmfEdge  float32
		w        float32
	}
	candidates := make([]candidate, m)
	cdf := make([]float32, m)
	var total float32

	for k := 0; k < m; k++ {
		uk := edgeSel + float32(k)/float32(m)
		uk -= float32(math.Floor(float64(uk)))

		edgeID := s.Secondary.Sample(uk)
		var c candidate
		if edgeID >= 0 {
			e := s.Edges[edgeID]
			pmfEdge := s.Secondary.Pmf[edgeID]
			shape := s.Shapes[e.ShapeID]
			vv0 := shape.Vertex(e.V0)
			vv1 := shape.Vertex(e.V1)

			sharesTriangle := e.ShapeID == hit.ShapeID && (e.F0 == hit.TriID || e.F1 == hit.TriID)
			if pmfEdge > 0 && !sharesTriangle && vv0.Distance(vv1) >= minEdgeLength && dist.IsSilhouette(s.Shapes, p.Position, e) {
				a, b, okClip := clipToTangentLTC(s, p, mInv, e)
				if okClip {
					wt := b.Sub(a).Normalize()
					ll0 := a.Dot(wt)
					ll1 := b.Dot(wt)
					vo := a.Sub(wt.Mul(ll0))
					dd := vo.Len()
					if dd >= 1e-8 {
						i0 := lineIntegral(vo, wt, dd, ll0)
						i1 := lineIntegral(vo, wt, dd, ll1)
						w := (i1 - i0) / pmfEdge
						if w > 0 {
							c = candidate{edge: e, v0o: a, v1o: b, pmfEdge: pmfEdge, w: w}
						}
					}
				}
			}
		}
		candidates[k] = c
		total += c.w
		cdf[k] = total
	}

	if total <= 0 {
		return scene.Edge{}, types.Vec3{}, types.Vec3{}, 0, false
	}

	target := resampleSel * total
	r := m - 1
	for k := 0; k < m; k++ {
		if cdf[k] > target {
			r = k
			break
		}
	}
	c := candidates[r]
	if c.w <= 0 {
		return scene.Edge{}, types.Vec3{}, types.Vec3{}, 0, false
	}

	w := (cdf[m-1] / float32(m)) / (c.w * c.pmfEdge)
	return c.edge, c.v0o, c.v1o, w, true
}
