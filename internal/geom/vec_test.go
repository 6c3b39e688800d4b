package geom

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot failed: got %v", got)
	}
	if got := UnitX.Cross(UnitY); got != UnitZ {
		t.Errorf("Cross failed: got %v", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", Vec3{0, 0, 5}, UnitZ},
		{"diagonal", Vec3{3, 4, 0}, Vec3{0.6, 0.8, 0}},
		{"zero", Vec3{}, Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); !got.Near(tt.want, 1e-12) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec3_RotateAround(t *testing.T) {
	got := UnitX.RotateAround(UnitZ, math.Pi/2)
	if !got.Near(UnitY, 1e-12) {
		t.Errorf("rotating X by 90deg around Z gave %v", got)
	}

	v := Vec3{1, 2, 3}
	if got := v.RotateAround(UnitY, 2*math.Pi); !got.Near(v, 1e-12) {
		t.Errorf("full turn changed vector: %v", got)
	}
}

func TestVec3_RejectFrom(t *testing.T) {
	got := Vec3{1, 1, 1}.RejectFrom(UnitZ)
	if got != (Vec3{1, 1, 0}) {
		t.Errorf("RejectFrom failed: got %v", got)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
	if (Vec3{0, math.Inf(-1), 0}).IsFinite() {
		t.Error("Inf vector reported as finite")
	}
}
