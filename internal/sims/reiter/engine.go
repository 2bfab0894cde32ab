package reiter

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the minimum cell count before phases are split
// across workers.
const parallelThreshold = 4096

// Engine advances a lattice by one timestep of the Reiter rule.
//
// Each step runs three passes over all cells. A pass only reads values
// committed by the previous pass, so a pass may be split across workers
// but passes never overlap.
type Engine struct {
	workers int
}

// NewEngine returns an engine using up to workers goroutines per phase.
// workers <= 0 selects GOMAXPROCS; 1 keeps the step on the calling
// goroutine.
func NewEngine(workers int) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{workers: workers}
}

// Workers reports the configured worker count.
func (e *Engine) Workers() int { return e.workers }

// Step applies one timestep to l in place.
func (e *Engine) Step(l *Lattice) {
	e.run(l, l.averagePhase)
	e.run(l, l.classifyPhase)
	e.run(l, l.updatePhase)
}

func (e *Engine) run(l *Lattice, phase func(lo, hi int)) {
	n := len(l.cells)
	workers := e.workers
	if workers <= 1 || n < parallelThreshold {
		phase(0, n)
		return
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			phase(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// averagePhase stores the neighbour mean of U in MeanU. U is not written
// until updatePhase, so every cell sees the same values.
func (l *Lattice) averagePhase(lo, hi int) {
	for i := lo; i < hi; i++ {
		nbrs := l.adj[i]
		if len(nbrs) == 0 {
			l.cells[i].MeanU = l.cells[i].U
			continue
		}
		sum := 0.0
		for _, j := range nbrs {
			sum += l.cells[j].U
		}
		l.cells[i].MeanU = sum / float64(len(nbrs))
	}
}

// classifyPhase marks receptive cells and splits each budget into mobile
// and retained mass. It reads State, which only updatePhase writes.
func (l *Lattice) classifyPhase(lo, hi int) {
	for i := lo; i < hi; i++ {
		cell := &l.cells[i]
		receptive := cell.Frozen()
		if !receptive {
			for _, j := range l.adj[i] {
				if l.cells[j].Frozen() {
					receptive = true
					break
				}
			}
		}
		cell.Receptive = receptive
		if receptive {
			cell.U = 0
			cell.V = cell.State
		} else {
			cell.U = cell.State
			cell.V = 0
		}
	}
}

// updatePhase relaxes U toward the neighbour mean and deposits gamma on
// receptive cells. Only the cell itself is read.
func (l *Lattice) updatePhase(lo, hi int) {
	half := l.params.Alpha / 2
	gamma := l.params.Gamma
	for i := lo; i < hi; i++ {
		cell := &l.cells[i]
		cell.U = cell.U + half*(cell.MeanU-cell.U)
		if cell.Receptive {
			cell.V = cell.V + gamma
		}
		cell.State = cell.U + cell.V
	}
}
