package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Size describes the dimensions of a simulation's display raster.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Converger is implemented by sims that know when they have finished.
type Converger interface {
	Converged() bool
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

// ErrUnknownSim is returned by Lookup for unregistered names.
var ErrUnknownSim = errors.New("unknown sim")

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the factory registered under name. Unknown names produce an
// ErrUnknownSim error listing the closest registered names.
func Lookup(name string) (Factory, error) {
	if f, ok := sims[name]; ok {
		return f, nil
	}
	if hints := Suggest(name); len(hints) > 0 {
		return nil, fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownSim, name, strings.Join(hints, ", "))
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownSim, name, strings.Join(Names(), ", "))
}

// Suggest ranks registered names by edit distance to name, keeping those
// within a length-dependent limit.
func Suggest(name string) []string {
	type scored struct {
		name string
		dist int
	}
	in := strings.ToLower(strings.TrimSpace(name))
	var cands []scored
	for _, cand := range Names() {
		var dist int
		switch {
		case in == "":
			continue
		case strings.HasPrefix(cand, in) && len(in) >= 2:
			dist = 0
		default:
			dist = levenshtein.ComputeDistance(in, cand)
			if dist > distanceLimit(len(cand)) {
				continue
			}
		}
		cands = append(cands, scored{name: cand, dist: dist})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}

func distanceLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
