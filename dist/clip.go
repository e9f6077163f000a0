package dist

import "github.com/gard-n/redner/types"

// clipToUnitSquare clips the segment v0-v1 against the [0,1]x[0,1] screen
// rectangle using Liang-Barsky. ok is false if the segment lies entirely
// outside the rectangle.
func clipToUnitSquare(v0, v1 types.Vec2) (c0, c1 types.Vec2, ok bool) {
	dx := v1[0] - v0[0]
	dy := v1[1] - v0[1]

	tMin := float32(0)
	tMax := float32(1)

	clip := func(p, q float32) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > tMax {
				return false
			}
			if t > tMin {
				tMin = t
			}
		} else {
			if t < tMin {
				return false
			}
			if t < tMax {
				tMax = t
			}
		}
		return true
	}

	if !clip(-dx, v0[0]) {
		return types.Vec2{}, types.Vec2{}, false
	}
	if !clip(dx, 1-v0[0]) {
		return types.Vec2{}, types.Vec2{}, false
	}
	if !clip(-dy, v0[1]) {
		return types.Vec2{}, types.Vec2{}, false
	}
	if !clip(dy, 1-v0[1]) {
		return types.Vec2{}, types.Vec2{}, false
	}
	if tMin > tMax {
		return types.Vec2{}, types.Vec2{}, false
	}

	c0 = types.XY(v0[0]+tMin*dx, v0[1]+tMin*dy)
	c1 = types.XY(v0[0]+tMax*dx, v0[1]+tMax*dy)
	return c0, c1, true
}
