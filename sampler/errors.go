package sampler

import "errors"

// Construction-time errors returned by Build. These are programmer
// errors, not the zeroed-record failures the per-sample operations use.
var (
	ErrNoShapes   = errors.New("sampler: scene has no shapes")
	ErrNilCamera  = errors.New("sampler: camera is nil")
	ErrNilTable   = errors.New("sampler: ltc table is required to build the edge sampler")
)
