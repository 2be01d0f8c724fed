package params

import "testing"

func TestValueBroadcast(t *testing.T) {
	got := zip2(Scalar(2.0), Value{1.0, 2.0, 3.0}, func(a, b float64) float64 { return a * b })
	if len(got) != 3 || !Equals(got[0], 2.0) || !Equals(got[2], 6.0) {
		t.Errorf("Expected [2 4 6], got %v", got)
	}
}

// TestValueShapeMismatchPanics checks that two incompatible vector lengths
// fail loudly instead of indexing out of range.
func TestValueShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for incompatible shapes")
		}
	}()
	zip2(Value{1.0, 2.0}, Value{1.0, 2.0, 3.0}, func(a, b float64) float64 { return a + b })
}

func TestValueClip(t *testing.T) {
	v := Value{-1.0, 0.5, 2.0}
	v.Clip(0.0, 1.0)
	if v[0] != 0.0 || v[1] != 0.5 || v[2] != 1.0 {
		t.Errorf("Expected [0 0.5 1], got %v", v)
	}
}
