package program

// Vector is a fixed-width SIMD-style lane group evaluated elementwise by
// the vector interpreter. SIZE is a compile-time constant (not configurable
// at runtime) so the interpreter's per-lane loops unroll predictably.
type Vector [VectorSize]float64

// VectorSize is the lane count of a Vector.
const VectorSize = 4

// Splat builds a Vector with every lane set to the same value.
func Splat(value float64) Vector {
	var v Vector
	for i := range v {
		v[i] = value
	}

	return v
}

func (v Vector) add(o Vector) Vector {
	var r Vector
	for i := range r {
		r[i] = v[i] + o[i]
	}

	return r
}

func (v Vector) sub(o Vector) Vector {
	var r Vector
	for i := range r {
		r[i] = v[i] - o[i]
	}

	return r
}

func (v Vector) mul(o Vector) Vector {
	var r Vector
	for i := range r {
		r[i] = v[i] * o[i]
	}

	return r
}

func (v Vector) div(o Vector) Vector {
	var r Vector
	for i := range r {
		r[i] = v[i] / o[i]
	}

	return r
}
