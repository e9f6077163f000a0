package cmd

import (
	"math/rand"

	"github.com/gard-n/redner/ltc"
	"github.com/gard-n/redner/parallel"
	"github.com/gard-n/redner/sampler"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
	"github.com/urfave/cli"
)

// Demo exercises the edge-sampling engine end to end against a
// procedurally generated tetrahedron: builds the edge sampler, draws a
// batch of primary- and secondary-edge samples, and reports how many
// yielded valid (non-rejected) records.
func Demo(ctx *cli.Context) error {
	setupLogging(ctx)

	shapes := []scene.Shape{newTetrahedron()}
	camera := newPinholeCamera(
		types.XYZ(4, 3, 5), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0),
		float32(0.9), 512, 512,
	)
	material := &demoMaterial{
		diffuse:   types.XYZ(0.7, 0.7, 0.7),
		specular:  types.XYZ(0.1, 0.1, 0.1),
		roughness: 0.5,
	}

	opts := sampler.DefaultOptions()
	opts.Table = ltc.AnalyticTable{}
	opts.Parallel = parallel.Options{MaxWorkers: ctx.Int("workers")}

	es, err := sampler.Build(shapes, camera, opts)
	if err != nil {
		logger.Error(err)
		return err
	}

	n := ctx.Int("samples")
	if n <= 0 {
		n = 1024
	}
	rng := rand.New(rand.NewSource(1))

	validPrimary := runPrimaryDemo(es, camera, n, rng)
	validSecondary := runSecondaryDemo(es, camera, shapes[0], material, n, rng)

	logger.Noticef("primary edges: %d/%d samples valid", validPrimary, n)
	logger.Noticef("secondary edges: %d/%d samples valid", validSecondary, n)
	return nil
}

func runPrimaryDemo(es *sampler.EdgeSampler, camera scene.Camera, n int, rng *rand.Rand) int {
	samples := make([]sampler.PrimaryEdgeSample, n)
	for i := range samples {
		samples[i] = sampler.PrimaryEdgeSample{EdgeSel: rng.Float32(), T: rng.Float32()}
	}
	records := make([]sampler.PrimaryEdgeRecord, n)
	pairs := make([]sampler.RayPair, n)
	upper := make([]sampler.Contribution, n)
	lower := make([]sampler.Contribution, n)
	image := newConstantGradientImage(types.XYZ(1, 1, 1))

	sampler.SamplePrimaryEdges(es, camera, samples, image, records, pairs, upper, lower)

	valid := 0
	for _, r := range records {
		if r.Valid() {
			valid++
		}
	}
	return valid
}

func runSecondaryDemo(es *sampler.EdgeSampler, camera scene.Camera, shape scene.Shape, material scene.Material, n int, rng *rand.Rand) int {
	ind := shape.TriangleIndices(0)
	v0 := shape.Vertex(ind[0])
	v1 := shape.Vertex(ind[1])
	v2 := shape.Vertex(ind[2])
	centroid := v0.Add(v1).Add(v2).Mul(1.0 / 3.0)
	normal := shape.FaceNormal(0)
	tangent, bitangent := types.CoordinateSystem(normal)

	point := scene.SurfacePoint{
		Position:     centroid,
		GeomNormal:   normal,
		ShadingFrame: scene.Frame{X: tangent, Y: bitangent, Z: normal},
	}

	inputs := make([]sampler.SecondaryPixelInput, n)
	samples := make([]sampler.SecondaryEdgeSample, n)
	for i := range inputs {
		inputs[i] = sampler.SecondaryPixelInput{
			IncomingRay:  scene.Ray{Org: centroid.Add(normal), Dir: normal.Neg()},
			Point:        point,
			Material:     material,
			Throughput:   types.XYZ(1, 1, 1),
			MinRoughness: 0,
			DColor:       types.XYZ(1, 1, 1),
			ChannelMul:   []float32{1, 1, 1},
		}
		samples[i] = sampler.SecondaryEdgeSample{
			EdgeSel:       rng.Float32(),
			ResampleSel:   rng.Float32(),
			T:             rng.Float32(),
			BsdfComponent: rng.Float32(),
		}
	}

	out := make([]sampler.SecondaryPixelOutput, n)
	sampler.SampleSecondaryEdges(es, camera.Origin(), inputs, samples, out)

	valid := 0
	for _, o := range out {
		if o.Record.Valid() {
			valid++
		}
	}
	return valid
}
