package reiter

import (
	"strconv"

	"reiter-ca/internal/core"
)

// Parameters reports the tunables and live growth counters for the HUD.
func (f *Flake) Parameters() core.ParameterSnapshot {
	cfg := f.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("size", "Radius", cfg.Size),
				intParam("cells", "Cells", f.lattice.Len()),
			},
		},
		{
			Name: "Model",
			Params: []core.Parameter{
				floatParam("alpha", "Diffusion (alpha)", cfg.Alpha),
				floatParam("beta", "Vapor (beta)", cfg.Beta),
				floatParam("gamma", "Growth (gamma)", cfg.Gamma),
			},
			Summary: "beta and noise apply on reset",
		},
		{
			Name: "Background",
			Params: []core.Parameter{
				floatParam("noise_amp", "Noise amplitude", cfg.Noise.Amplitude),
				floatParam("noise_scale", "Noise scale", cfg.Noise.Scale),
				int64Param("seed", "Seed", cfg.Seed),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				intParam("steps", "Steps", f.steps),
				intParam("frozen", "Frozen cells", f.status.Frozen),
				intParam("tips", "Frozen tips", f.status.Tips),
				{Key: "state", Label: "State", Type: core.ParamTypeText, Value: f.status.Reason.String()},
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters.
func (f *Flake) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "size", Label: "Radius", Type: core.ParamTypeInt, Step: 10, Min: 1, HasMin: true, Max: 600, HasMax: true},
		{Key: "alpha", Label: "Diffusion (alpha)", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true, Max: 2, HasMax: true},
		{Key: "beta", Label: "Vapor (beta)", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "gamma", Label: "Growth (gamma)", Type: core.ParamTypeFloat, Step: 0.0005, Min: 0, HasMin: true, Max: 0.1, HasMax: true},
		{Key: "noise_amp", Label: "Noise amplitude", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true, Max: 0.5, HasMax: true},
	}
}

// SetFloatParameter updates a rate. Alpha and gamma take effect on the next
// step; beta and the noise settings only shape the initial condition and
// take effect on the next reset.
func (f *Flake) SetFloatParameter(key string, value float64) bool {
	cfg := f.cfg
	switch key {
	case "alpha":
		cfg.Alpha = value
	case "beta":
		cfg.Beta = value
	case "gamma":
		cfg.Gamma = value
	case "noise_amp":
		cfg.Noise.Amplitude = value
	case "noise_scale":
		cfg.Noise.Scale = value
	default:
		return false
	}
	if cfg.Validate() != nil {
		return false
	}
	f.cfg = cfg
	p := f.lattice.Params()
	p.Alpha = cfg.Alpha
	p.Gamma = cfg.Gamma
	f.lattice.setParams(p)
	return true
}

// SetIntParameter updates integer parameters. Changing the radius rebuilds
// the lattice and restarts growth.
func (f *Flake) SetIntParameter(key string, value int) bool {
	switch key {
	case "size":
		if value == f.cfg.Size {
			return true
		}
		return f.resize(value) == nil
	case "seed":
		f.cfg.Seed = int64(value)
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
