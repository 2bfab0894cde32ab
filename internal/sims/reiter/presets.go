package reiter

import "reiter-ca/internal/core"

// Preset is a named parameter set for the Reiter model.
type Preset struct {
	Name  string
	Alpha float64
	Beta  float64
	Gamma float64
}

// Presets lists the registered parameter sets. Low gamma with moderate beta
// gives thin dendrites; high beta fills in plates.
var Presets = []Preset{
	{Name: "reiter", Alpha: 1, Beta: 0.4, Gamma: 0.001},
	{Name: "stellar", Alpha: 1, Beta: 0.35, Gamma: 0.001},
	{Name: "plate", Alpha: 1, Beta: 0.8, Gamma: 0.002},
	{Name: "sectored", Alpha: 1, Beta: 0.65, Gamma: 0.0001},
	{Name: "fernlike", Alpha: 1, Beta: 0.4, Gamma: 0.0001},
}

// Config returns the default configuration with the preset's rates.
func (p Preset) Config() Config {
	c := DefaultConfig()
	c.Alpha = p.Alpha
	c.Beta = p.Beta
	c.Gamma = p.Gamma
	return c
}

func init() {
	for _, p := range Presets {
		p := p
		core.Register(p.Name, func(cfg map[string]string) (core.Sim, error) {
			f, err := NewNamed(p.Name, p.Config().Apply(cfg))
			if err != nil {
				return nil, err
			}
			return f, nil
		})
	}
}
