package params

// Value is one scalar or vector parameter realization. Scalars are carried
// as length-1 vectors so that every elementwise operation broadcasts the
// same way for both shapes.
type Value []float64

// Scalar wraps a single float as a Value.
func Scalar(x float64) Value { return Value{x} }

// Clone returns an independent copy of v.
func (v Value) Clone() Value {
	out := make(Value, len(v))
	copy(out, v)
	return out
}

// At returns the i-th element, broadcasting length-1 values.
func (v Value) At(i int) float64 {
	if len(v) == 1 {
		return v[0]
	}
	return v[i]
}

// IsScalar reports whether v holds a single value.
func (v Value) IsScalar() bool { return len(v) == 1 }

// Clip clamps every element into [lo, hi] in place and returns v.
func (v Value) Clip(lo, hi float64) Value {
	for i, x := range v {
		if x < lo {
			v[i] = lo
		} else if x > hi {
			v[i] = hi
		}
	}
	return v
}

// AllAbove reports whether every element exceeds x.
func (v Value) AllAbove(x float64) bool {
	for _, y := range v {
		if y <= x {
			return false
		}
	}
	return true
}

// broadcastLen returns the common elementwise length, panicking on shapes
// that are neither scalar nor the common vector length.
func broadcastLen(vs ...Value) int {
	n := 1
	for _, v := range vs {
		if len(v) > n {
			n = len(v)
		}
	}
	for _, v := range vs {
		if len(v) != 1 && len(v) != n {
			panic("params: incompatible value shapes")
		}
	}
	return n
}

// apply maps f over v into a fresh Value.
func apply(v Value, f func(float64) float64) Value {
	out := make(Value, len(v))
	for i, x := range v {
		out[i] = f(x)
	}
	return out
}

// zip2 applies f elementwise with length-1 broadcasting.
func zip2(a, b Value, f func(x, y float64) float64) Value {
	n := broadcastLen(a, b)
	out := make(Value, n)
	for i := range out {
		out[i] = f(a.At(i), b.At(i))
	}
	return out
}

// zip3 applies f elementwise with length-1 broadcasting.
func zip3(a, b, c Value, f func(x, y, z float64) float64) Value {
	n := broadcastLen(a, b, c)
	out := make(Value, n)
	for i := range out {
		out[i] = f(a.At(i), b.At(i), c.At(i))
	}
	return out
}

func recip(v Value) Value {
	return apply(v, func(x float64) float64 { return 1.0 / x })
}

// allGreater reports a > b elementwise, with length-1 broadcasting.
func allGreater(a, b Value) bool {
	n := broadcastLen(a, b)
	for i := 0; i < n; i++ {
		if a.At(i) <= b.At(i) {
			return false
		}
	}
	return true
}
