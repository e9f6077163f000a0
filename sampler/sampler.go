package sampler

import (
	"github.com/gard-n/redner/bvh"
	"github.com/gard-n/redner/dist"
	"github.com/gard-n/redner/edgetable"
	"github.com/gard-n/redner/ltc"
	"github.com/gard-n/redner/log"
	"github.com/gard-n/redner/parallel"
	"github.com/gard-n/redner/scene"
)

var logger = log.New("sampler")

// Options configures EdgeSampler construction and the per-sample cutoffs
// used by SampleSecondaryEdges.
type Options struct {
	// Parallel controls the worker pool used to build the per-scene
	// distributions.
	Parallel parallel.Options
	// MinRoughnessCutoff skips the secondary-edge contribution once the
	// accumulated path roughness exceeds this value.
	MinRoughnessCutoff float32
	// Strata is the stratum count M for importance resampling when no
	// hierarchical tree is available.
	Strata int
	// Table supplies the LTC matrix/sphere lookups; required for
	// the secondary-edge sampler.
	Table ltc.Table
}

// DefaultOptions returns the documented default option values.
func DefaultOptions() Options {
	return Options{
		MinRoughnessCutoff: 1e-2,
		Strata:             64,
	}
}

// EdgeSampler owns the edge table, its two per-scene distributions, and an
// optional hierarchical tree, all immutable after Build returns and safe
// for concurrent use by every parallel-for invocation.
type EdgeSampler struct {
	Shapes    []scene.Shape
	Edges     []scene.Edge
	Primary   dist.Distribution
	Secondary dist.Distribution
	Tree      *bvh.EdgeTreeRoots
	Options   Options
}

// Build constructs the edge table and both per-scene distributions
// (components 1-3). The hierarchical tree (component 4) is built
// externally — the outer pipeline that owns the spatio-directional BVH
// builder should call SetTree once it is ready.
func Build(shapes []scene.Shape, camera scene.Camera, opts Options) (*EdgeSampler, error) {
	if len(shapes) == 0 {
		return nil, ErrNoShapes
	}
	if camera == nil {
		return nil, ErrNilCamera
	}
	if opts.Table == nil {
		return nil, ErrNilTable
	}

	edges := edgetable.Build(shapes)
	primary := dist.BuildPrimary(shapes, camera, edges, opts.Parallel)
	secondary := dist.BuildSecondary(shapes, edges, opts.Parallel)
	logger.Noticef("edge sampler built: %d edges, %d primary weight, %d secondary weight",
		len(edges), nonZero(primary.Pmf), nonZero(secondary.Pmf))
	return &EdgeSampler{
		Shapes:    shapes,
		Edges:     edges,
		Primary:   primary,
		Secondary: secondary,
		Options:   opts,
	}, nil
}

// SetTree installs a pre-built hierarchical tree. Building the
// spatio-directional bounding hierarchy itself is an external collaborator.
func (s *EdgeSampler) SetTree(tree *bvh.EdgeTreeRoots) {
	s.Tree = tree
}

func nonZero(pmf []float32) int {
	n := 0
	for _, p := range pmf {
		if p > 0 {
			n++
		}
	}
	return n
}
