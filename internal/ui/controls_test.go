package ui

import (
	"testing"

	"reiter-ca/internal/core"
)

func snapshotWith(key, value string) core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name:   "Model",
		Params: []core.Parameter{{Key: key, Value: value}},
	}}}
}

func TestControlTargetClamps(t *testing.T) {
	states := newControlStates([]core.ParameterControl{
		{Key: "beta", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
	}, 240)
	s := &states[0]
	s.refresh(snapshotWith("beta", "0.98"))
	if !s.hasValue || s.value != "0.98" {
		t.Fatalf("refresh gave %+v", s)
	}
	if v, ok := s.target(1); !ok || v != 1 {
		t.Fatalf("target(+1) = %v, %v; expected clamp to 1", v, ok)
	}
	s.refresh(snapshotWith("beta", "1"))
	if _, ok := s.target(1); ok {
		t.Fatal("at the maximum, + must be disabled")
	}
	if v, ok := s.target(-1); !ok || v != 0.95 {
		t.Fatalf("target(-1) = %v, %v", v, ok)
	}
}

func TestControlIntegerSteps(t *testing.T) {
	states := newControlStates([]core.ParameterControl{
		{Key: "size", Type: core.ParamTypeInt, Step: 10, Min: 1, HasMin: true},
	}, 240)
	s := &states[0]
	s.refresh(snapshotWith("size", "5"))
	if v, ok := s.target(-1); !ok || v != 1 {
		t.Fatalf("target(-1) = %v, %v", v, ok)
	}
	if v, _ := s.target(1); v != 15 {
		t.Fatalf("target(+1) = %v", v)
	}
	s.refresh(snapshotWith("size", "n/a"))
	if s.hasValue || s.value != "--" {
		t.Fatal("unparsable values must disable the control")
	}
}

func TestFormatValuePrecision(t *testing.T) {
	cases := []struct {
		step float64
		want string
	}{
		{0.0005, "0.0010"},
		{0.005, "0.001"},
		{0.05, "0.00"},
		{0.5, "0.0"},
	}
	for _, tc := range cases {
		ctrl := core.ParameterControl{Type: core.ParamTypeFloat, Step: tc.step}
		if got := formatValue(ctrl, 0.001); got != tc.want {
			t.Fatalf("step %v: got %q, want %q", tc.step, got, tc.want)
		}
	}
}

func TestControlLayout(t *testing.T) {
	states := newControlStates(make([]core.ParameterControl, 2), 200)
	if states[1].top-states[0].top != lineHeight {
		t.Fatal("controls must stack by lineHeight")
	}
	plus := states[0].plusRect
	if plus.Max.X != 200-panelPadding || plus.Dx() != buttonSize {
		t.Fatalf("plus button %v", plus)
	}
	if !pointInRect(plus.Min.X, plus.Min.Y, plus) || pointInRect(plus.Max.X, plus.Min.Y, plus) {
		t.Fatal("pointInRect must be half-open")
	}
	if states[0].minusRect.Max.X+buttonGap != plus.Min.X {
		t.Fatal("minus button must sit left of plus")
	}
}
