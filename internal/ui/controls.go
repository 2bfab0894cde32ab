package ui

import (
	"image"
	"math"
	"strconv"

	"reiter-ca/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 18
	controlsTop    = panelPadding + headerBaseline + 14
)

type controlState struct {
	control core.ParameterControl
	value   string

	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func newControlStates(controls []core.ParameterControl, width int) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		states[i] = controlState{control: ctrl, value: "--", top: top, minusRect: minus, plusRect: plus}
	}
	return states
}

// refresh reads the control's current value from the snapshot.
func (s *controlState) refresh(snap core.ParameterSnapshot) {
	s.hasValue = false
	s.value = "--"
	param, ok := snap.Lookup(s.control.Key)
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(param.Value, 64)
	if err != nil {
		return
	}
	s.floatValue = v
	s.value = formatValue(s.control, v)
	s.hasValue = true
}

// stepSize returns the control's increment, defaulting by type.
func stepSize(ctrl core.ParameterControl) float64 {
	step := ctrl.Step
	if ctrl.Type == core.ParamTypeInt {
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
		return step
	}
	if step <= 0 {
		step = 0.05
	}
	return step
}

// target returns the value one step in direction, clamped to the control's
// bounds, and whether it differs from the current value.
func (s *controlState) target(direction int) (float64, bool) {
	if !s.hasValue || direction == 0 {
		return 0, false
	}
	next := s.control.Clamp(s.floatValue + float64(direction)*stepSize(s.control))
	if s.control.Type == core.ParamTypeInt {
		next = math.Round(next)
	}
	return next, math.Abs(next-s.floatValue) >= 1e-9
}

func formatValue(ctrl core.ParameterControl, value float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(value)))
	}
	step := stepSize(ctrl)
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
