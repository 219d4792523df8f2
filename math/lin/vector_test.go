// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestAeq(t *testing.T) {
	if !Aeq(0.0, 0.000001*0.5) {
		t.Error("Aeq should treat near-zero differences as equal")
	}
	if Aeq(0.0, 0.01) {
		t.Error("Aeq should not treat large differences as equal")
	}
}

func TestV2Add(t *testing.T) {
	a, b := V2Of(1, 2), V2Of(3, 4)
	got := NewV2().Add(&a, &b)
	if !got.Aeq(&V2{4, 6}) {
		t.Errorf("Add: got %v", got)
	}
}

func TestV2Unit(t *testing.T) {
	a := V2Of(0, 0)
	u := NewV2().Unit(&a)
	if !u.Aeq(&V2{1, 0}) {
		t.Errorf("Unit of zero vector should pick an arbitrary unit normal, got %v", u)
	}
	b := V2Of(3, 4)
	u2 := NewV2().Unit(&b)
	if !Aeq(u2.Len(), 1) {
		t.Errorf("Unit should normalize to length 1, got %f", u2.Len())
	}
}

func TestV2Rotate(t *testing.T) {
	a := V2Of(1, 0)
	got := NewV2().Rotate(&a, HalfPi)
	if !got.Aeq(&V2{0, 1}) {
		t.Errorf("Rotate by HalfPi: got %v", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	if !Aeq(NormalizeAngle(PIx2+0.1), 0.1) {
		t.Errorf("NormalizeAngle(2pi+0.1) = %f", NormalizeAngle(PIx2+0.1))
	}
	if !Aeq(NormalizeAngle(-PIx2-0.1), -0.1) {
		t.Errorf("NormalizeAngle(-2pi-0.1) = %f", NormalizeAngle(-PIx2-0.1))
	}
}
