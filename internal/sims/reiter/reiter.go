package reiter

import (
	"reiter-ca/internal/core"
	"reiter-ca/internal/hex"
)

// Flake runs one crystal: a lattice, the engine stepping it and the
// detector watching it.
type Flake struct {
	name string
	cfg  Config

	lattice  *Lattice
	engine   *Engine
	detector Detector
	status   Status
	steps    int

	display *core.ByteGrid
	dirty   bool
}

// New returns a Flake named "reiter" built from cfg.
func New(cfg Config) (*Flake, error) {
	return NewNamed("reiter", cfg)
}

// NewNamed returns a Flake reporting the given name.
func NewNamed(name string, cfg Config) (*Flake, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lattice, err := NewLattice(cfg.Size, cfg.Params())
	if err != nil {
		return nil, err
	}
	f := &Flake{
		name:    name,
		cfg:     cfg,
		lattice: lattice,
		engine:  NewEngine(cfg.Workers),
	}
	f.display = core.NewByteGrid(hex.DoubledSize(cfg.Size))
	f.Reset(0)
	return f, nil
}

// Name returns the simulation identifier.
func (f *Flake) Name() string { return f.name }

// Size reports the display raster dimensions.
func (f *Flake) Size() core.Size { return core.Size{W: f.display.W, H: f.display.H} }

// Cells exposes the palette-indexed display raster.
func (f *Flake) Cells() []uint8 {
	if f.dirty {
		f.rebuildDisplay()
	}
	return f.display.Cells()
}

// Reset restores the initial condition. A zero seed falls back to the
// configured seed; the seed only matters when background noise is enabled.
func (f *Flake) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = f.cfg.Seed
	}
	f.lattice.setParams(f.cfg.Params())
	f.lattice.reset(noisyBackground(f.cfg, effective))
	f.detector.Reset()
	f.status = Status{Frozen: f.lattice.FrozenCount()}
	f.steps = 0
	f.dirty = true
}

// Step advances the crystal by one timestep and re-evaluates convergence.
// Stepping a converged flake keeps evolving it.
func (f *Flake) Step() {
	f.engine.Step(f.lattice)
	f.steps++
	f.status = f.detector.Check(f.lattice)
	f.dirty = true
}

// Converged reports whether the last step met a stopping condition.
func (f *Flake) Converged() bool { return f.status.Converged }

// Status returns the outcome of the last convergence check.
func (f *Flake) Status() Status { return f.status }

// Steps returns the number of steps since the last reset.
func (f *Flake) Steps() int { return f.steps }

// Lattice exposes the lattice for read-only use between steps.
func (f *Flake) Lattice() *Lattice { return f.lattice }

// Config returns the active configuration.
func (f *Flake) Config() Config { return f.cfg }

// resize rebuilds the lattice for a new radius and resets the run.
func (f *Flake) resize(size int) error {
	cfg := f.cfg
	cfg.Size = size
	lattice, err := NewLattice(size, cfg.Params())
	if err != nil {
		return err
	}
	f.cfg = cfg
	f.lattice = lattice
	f.display = core.NewByteGrid(hex.DoubledSize(size))
	f.Reset(0)
	return nil
}
