package reiter

import (
	"errors"
	"math"
	"slices"
	"testing"

	"reiter-ca/internal/core"
	"reiter-ca/internal/hex"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = 8
	cfg.Workers = 1
	return cfg
}

func TestFlakeImplementsSim(t *testing.T) {
	var _ core.Sim = (*Flake)(nil)
	var _ core.Converger = (*Flake)(nil)
	var _ core.ParameterControlsProvider = (*Flake)(nil)
	var _ core.FloatParameterSetter = (*Flake)(nil)
	var _ core.IntParameterSetter = (*Flake)(nil)
}

func TestFlakeDisplayRaster(t *testing.T) {
	f, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	size := f.Size()
	if size.W != 34 || size.H != 17 {
		t.Fatalf("raster %dx%d, expected 34x17", size.W, size.H)
	}
	cells := f.Cells()
	if len(cells) != size.W*size.H {
		t.Fatalf("display has %d values", len(cells))
	}
	inside := 0
	for _, v := range cells {
		if in, _, _ := Classify(v); in {
			inside++
		}
	}
	if inside != 2*f.Lattice().Len() {
		t.Fatalf("expected two pixels per cell, got %d for %d cells", inside, f.Lattice().Len())
	}
	x, y := hex.Origin.Doubled(8)
	if _, _, frozen := Classify(cells[y*size.W+x]); !frozen {
		t.Fatal("seed pixel must render as ice")
	}
	if len(f.Palette()) != 256 {
		t.Fatalf("palette has %d entries", len(f.Palette()))
	}
}

func TestEncodeCellOrdersClasses(t *testing.T) {
	vapor := EncodeCell(Cell{State: 0.4, U: 0.4}, 0.4)
	rim := EncodeCell(Cell{State: 0.6, V: 0.6, Receptive: true}, 0.4)
	ice := EncodeCell(Cell{State: 1.3, V: 1.3, Receptive: true}, 0.4)
	if in, rec, frz := Classify(vapor); !in || rec || frz {
		t.Fatalf("vapor classified as %v %v %v", in, rec, frz)
	}
	if in, rec, frz := Classify(rim); !in || !rec || frz {
		t.Fatalf("rim classified as %v %v %v", in, rec, frz)
	}
	if in, rec, frz := Classify(ice); !in || !rec || !frz {
		t.Fatalf("ice classified as %v %v %v", in, rec, frz)
	}
	if EncodeCell(Cell{State: 50, V: 50}, 0.4) != displayIceBase+displayIceLevels-1 {
		t.Fatal("heavy ice must saturate at the brightest level")
	}
}

func TestFlakeStepAndReset(t *testing.T) {
	f, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	initial := f.Lattice().Snapshot()
	for i := 0; i < 25; i++ {
		f.Step()
	}
	if f.Steps() != 25 {
		t.Fatalf("Steps()=%d", f.Steps())
	}
	if f.Status().Frozen < 1 {
		t.Fatal("status must count the seed")
	}
	f.Reset(0)
	if f.Steps() != 0 || f.Converged() {
		t.Fatal("Reset must clear the run state")
	}
	if !slices.Equal(initial, f.Lattice().Snapshot()) {
		t.Fatal("Reset must restore the initial condition")
	}
}

func TestFlakeRunsToConvergence(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 3
	cfg.Beta = 0.5
	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 5000 && !f.Converged(); i++ {
		f.Step()
	}
	if !f.Converged() {
		t.Fatal("flake did not converge")
	}
	if f.Status().Reason == ReasonNone {
		t.Fatal("converged status needs a reason")
	}
}

func TestNoiseBackground(t *testing.T) {
	cfg := smallConfig()
	cfg.Noise = NoiseConfig{Amplitude: 0.3, Scale: 0.2}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !slices.Equal(a.Lattice().Snapshot(), b.Lattice().Snapshot()) {
		t.Fatal("same seed must give the same background")
	}
	varied := false
	a.Lattice().Each(func(c hex.Axial, cell Cell) {
		if c == hex.Origin {
			return
		}
		if cell.State < 0 || cell.State >= FreezeThreshold {
			t.Fatalf("noisy background out of range at %v: %v", c, cell.State)
		}
		if cell.State != cell.U || cell.V != 0 {
			t.Fatalf("background cell %v must be all mobile: %+v", c, cell)
		}
		if math.Abs(cell.State-cfg.Beta) > 1e-9 {
			varied = true
		}
	})
	if !varied {
		t.Fatal("noise amplitude 0.3 should perturb the background")
	}
}

func TestConfigFromMapAndValidate(t *testing.T) {
	cfg := FromMap(map[string]string{
		"size":      "42",
		"alpha":     "1.5",
		"beta":      "0.65",
		"gamma":     "0.0001",
		"noise_amp": "bogus",
		"seed":      "9",
		"workers":   "2",
	})
	if cfg.Size != 42 || cfg.Alpha != 1.5 || cfg.Beta != 0.65 || cfg.Gamma != 0.0001 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Noise.Amplitude != DefaultConfig().Noise.Amplitude {
		t.Fatal("unparsable values must be ignored")
	}
	if cfg.Seed != 9 || cfg.Workers != 2 {
		t.Fatalf("seed/workers not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := DefaultConfig()
	bad.Size = 0
	if _, err := New(bad); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestParameterSetters(t *testing.T) {
	f, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !f.SetFloatParameter("gamma", 0.01) {
		t.Fatal("gamma should be adjustable")
	}
	if f.Lattice().Params().Gamma != 0.01 {
		t.Fatal("gamma must apply to the live lattice")
	}
	if f.SetFloatParameter("alpha", 3) {
		t.Fatal("alpha above 2 must be rejected")
	}
	if f.SetFloatParameter("unknown", 1) {
		t.Fatal("unknown keys must be rejected")
	}
	if !f.SetIntParameter("size", 5) {
		t.Fatal("size should be adjustable")
	}
	if f.Lattice().Size() != 5 || f.Size().W != 22 {
		t.Fatalf("resize not applied: radius %d raster %v", f.Lattice().Size(), f.Size())
	}
	if f.SetIntParameter("size", 0) {
		t.Fatal("size 0 must be rejected")
	}

	snap := f.Parameters()
	if p, ok := snap.Lookup("gamma"); !ok || p.Value != "0.01" {
		t.Fatalf("snapshot gamma = %+v", p)
	}
	if p, ok := snap.Lookup("state"); !ok || p.Value != "growing" {
		t.Fatalf("snapshot state = %+v", p)
	}
}

func TestPresetsRegistered(t *testing.T) {
	for _, p := range Presets {
		factory, err := core.Lookup(p.Name)
		if err != nil {
			t.Fatalf("preset %q: %v", p.Name, err)
		}
		sim, err := factory(map[string]string{"size": "6"})
		if err != nil {
			t.Fatalf("preset %q factory: %v", p.Name, err)
		}
		if sim.Name() != p.Name {
			t.Fatalf("preset %q built sim named %q", p.Name, sim.Name())
		}
		flake := sim.(*Flake)
		if flake.Config().Beta != p.Beta || flake.Config().Size != 6 {
			t.Fatalf("preset %q config %+v", p.Name, flake.Config())
		}
	}
	factory, _ := core.Lookup("reiter")
	if _, err := factory(map[string]string{"alpha": "2.5"}); err == nil {
		t.Fatal("invalid override must surface as an error")
	}
}

func TestConfigValuesRoundTrip(t *testing.T) {
	cfg := Config{
		Size:    17,
		Alpha:   1.25,
		Beta:    0.35,
		Gamma:   1e-05,
		Noise:   NoiseConfig{Amplitude: 0.1, Scale: 0.03},
		Seed:    -4,
		Workers: 3,
	}
	if got := DefaultConfig().Apply(cfg.Values()); got != cfg {
		t.Fatalf("Apply(Values()) = %+v, expected %+v", got, cfg)
	}
}

func TestBetaAppliesOnReset(t *testing.T) {
	f, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !f.SetFloatParameter("beta", 0.6) {
		t.Fatal("beta should be adjustable")
	}
	far, _ := f.Lattice().Cell(hex.Axial{Q: 0, R: 7})
	if far.State != 0.4 {
		t.Fatal("beta must not change the running lattice")
	}
	f.Reset(0)
	far, _ = f.Lattice().Cell(hex.Axial{Q: 0, R: 7})
	if far.State != 0.6 || f.Lattice().Params().Beta != 0.6 {
		t.Fatalf("beta not applied on reset: %+v", far)
	}
}
