package sampler

import (
	"math/rand"
	"testing"

	"github.com/gard-n/redner/ltc"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

type flatDiffuseMaterial struct {
	diffuse types.Vec3
}

func (m flatDiffuseMaterial) GetRoughness(scene.SurfacePoint) float32 { return 1 }
func (m flatDiffuseMaterial) GetDiffuseReflectance(scene.SurfacePoint) types.Vec3 {
	return m.diffuse
}
func (m flatDiffuseMaterial) GetSpecularReflectance(scene.SurfacePoint) types.Vec3 {
	return types.Vec3{}
}
func (m flatDiffuseMaterial) Bsdf(sp scene.SurfacePoint, wi, wo types.Vec3, minRoughness float32) types.Vec3 {
	return m.diffuse.Mul(1 / 3.14159265)
}

func TestSampleSecondaryEdgesStratifiedFallback(t *testing.T) {
	shape := &singleTriShape{verts: [3]types.Vec3{
		types.XYZ(-2, -2, 0), types.XYZ(2, -2, 0), types.XYZ(0, 2, 0),
	}}
	shapes := []scene.Shape{shape}
	camera := orthoCamera{}

	opts := DefaultOptions()
	opts.Table = ltc.AnalyticTable{}
	es, err := Build(shapes, camera, opts)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	// No hierarchical tree installed -> SampleSecondaryEdges must exercise
	// the stratified-resample fallback path.

	p := scene.SurfacePoint{
		Position: types.XYZ(0, 0, -5),
		ShadingFrame: scene.Frame{
			X: types.XYZ(1, 0, 0),
			Y: types.XYZ(0, 1, 0),
			Z: types.XYZ(0, 0, 1),
		},
	}
	material := flatDiffuseMaterial{diffuse: types.XYZ(0.8, 0.8, 0.8)}

	rng := rand.New(rand.NewSource(7))
	n := 256
	inputs := make([]SecondaryPixelInput, n)
	samples := make([]SecondaryEdgeSample, n)
	for i := range inputs {
		inputs[i] = SecondaryPixelInput{
			IncomingRay:  scene.Ray{Org: types.XYZ(0, 0, -10), Dir: types.XYZ(0, 0, 1)},
			Intersection: scene.Intersection{ShapeID: 99, TriID: 99},
			Point:        p,
			Material:     material,
			Throughput:   types.XYZ(1, 1, 1),
			MinRoughness: 0,
			DColor:       types.XYZ(1, 1, 1),
			ChannelMul:   []float32{1, 1, 1},
		}
		samples[i] = SecondaryEdgeSample{
			EdgeSel:       rng.Float32(),
			ResampleSel:   rng.Float32(),
			T:             rng.Float32(),
			BsdfComponent: rng.Float32(),
		}
	}

	out := make([]SecondaryPixelOutput, n)
	SampleSecondaryEdges(es, camera.Origin(), inputs, samples, out)

	valid := 0
	for _, o := range out {
		if o.Record.Valid() {
			valid++
		}
	}
	if valid == 0 {
		t.Fatalf("expected at least some valid secondary-edge samples via the stratified fallback, got 0/%d", n)
	}
}

func TestSampleSecondaryEdgesRoughnessCutoff(t *testing.T) {
	shape := &singleTriShape{verts: [3]types.Vec3{
		types.XYZ(-2, -2, 0), types.XYZ(2, -2, 0), types.XYZ(0, 2, 0),
	}}
	shapes := []scene.Shape{shape}
	camera := orthoCamera{}
	opts := DefaultOptions()
	opts.Table = ltc.AnalyticTable{}
	es, err := Build(shapes, camera, opts)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	p := scene.SurfacePoint{
		Position:     types.XYZ(0, 0, -5),
		ShadingFrame: scene.Frame{X: types.XYZ(1, 0, 0), Y: types.XYZ(0, 1, 0), Z: types.XYZ(0, 0, 1)},
	}
	in := SecondaryPixelInput{
		IncomingRay:  scene.Ray{Dir: types.XYZ(0, 0, 1)},
		Intersection: scene.Intersection{ShapeID: 99, TriID: 99},
		Point:        p,
		Material:     flatDiffuseMaterial{diffuse: types.XYZ(0.8, 0.8, 0.8)},
		MinRoughness: 1, // above DefaultOptions().MinRoughnessCutoff
		ChannelMul:   []float32{1, 1, 1},
	}
	smp := SecondaryEdgeSample{EdgeSel: 0.3, ResampleSel: 0.3, T: 0.3, BsdfComponent: 0.3}
	out := make([]SecondaryPixelOutput, 1)
	SampleSecondaryEdges(es, camera.Origin(), []SecondaryPixelInput{in}, []SecondaryEdgeSample{smp}, out)

	if out[0].Record.Valid() {
		t.Fatalf("a path roughness above the cutoff should reject the sample")
	}
}
