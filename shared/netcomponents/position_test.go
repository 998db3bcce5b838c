package netcomponents

import "testing"

func TestLerpNetPosition(t *testing.T) {
	from := NetPositionData{X: 0, Y: 2, Z: -4}
	to := NetPositionData{X: 10, Y: 2, Z: 4}

	mid := LerpNetPosition(from, to, 0.5)
	if *mid != (NetPositionData{X: 5, Y: 2, Z: 0}) {
		t.Fatalf("LerpNetPosition(0.5) = %+v", *mid)
	}
	if end := LerpNetPosition(from, to, 1); *end != to {
		t.Fatalf("LerpNetPosition(1) = %+v, want %+v", *end, to)
	}
}

