package types

import "testing"

func TestMat3Identity(t *testing.T) {
	id := Ident3()
	v := XYZ(1, 2, 3)
	got := id.MulVec3(v)
	if got != v {
		t.Fatalf("identity matrix changed vector: got %v, want %v", got, v)
	}
}

func TestMat3InverseRoundTrip(t *testing.T) {
	m := Mat3FromRows(
		XYZ(2, 0, 0),
		XYZ(0, 3, 1),
		XYZ(1, 0, 4),
	)
	inv := m.Inverse()
	v := XYZ(1, 2, 3)
	got := inv.MulVec3(m.MulVec3(v))
	const eps = 1e-4
	for i := 0; i < 3; i++ {
		if abs32(got[i]-v[i]) > eps {
			t.Fatalf("M^-1 * M * v != v: got %v, want %v", got, v)
		}
	}
}

func TestMat3Transpose(t *testing.T) {
	m := Mat3FromRows(XYZ(1, 2, 3), XYZ(4, 5, 6), XYZ(7, 8, 9))
	tt := m.Transpose()
	if tt.Row(0) != m.Col(0) || tt.Col(0) != m.Row(0) {
		t.Fatalf("transpose did not swap rows/cols")
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
