// Package term draws a growing crystal in a terminal.
package term

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"reiter-ca/internal/core"
	"reiter-ca/internal/sims/reiter"
)

// Screen is the part of tcell.Screen the viewer draws on.
type Screen interface {
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
	Show()
}

// Glyphs per cell class.
const (
	glyphVapor     = '.'
	glyphReceptive = 'o'
	glyphFrozen    = '#'
)

// Viewer steps a flake on a fixed clock and draws it with one character per
// cell, laid out on the doubled-coordinate raster.
type Viewer struct {
	screen Screen
	flake  *reiter.Flake
	clock  *core.FixedStep

	paused      bool
	notified    bool
	onConverged func(f *reiter.Flake)
	message     string
}

// NewViewer returns a viewer stepping flake at tps steps per second.
func NewViewer(screen Screen, flake *reiter.Flake, tps int) *Viewer {
	return &Viewer{screen: screen, flake: flake, clock: core.NewFixedStep(tps)}
}

// OnConverged registers a hook called once per run when the flake converges.
func (v *Viewer) OnConverged(fn func(f *reiter.Flake)) { v.onConverged = fn }

// SetMessage replaces the status-line message.
func (v *Viewer) SetMessage(msg string) { v.message = msg }

// Paused reports whether automatic stepping is suspended.
func (v *Viewer) Paused() bool { return v.paused }

// Run processes events and redraws until the user quits or ctx ends.
func (v *Viewer) Run(ctx context.Context, events <-chan tcell.Event, frames <-chan struct{}) error {
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case <-frames:
			v.Tick()
			v.Draw()
		}
	}
}

// Tick advances the flake by the steps due on the clock. A converged flake
// is not stepped further.
func (v *Viewer) Tick() {
	due := v.clock.Due()
	if v.paused {
		return
	}
	for i := 0; i < due && !v.flake.Converged(); i++ {
		v.flake.Step()
	}
	v.checkConverged()
}

func (v *Viewer) stepOnce() {
	v.flake.Step()
	v.checkConverged()
}

func (v *Viewer) checkConverged() {
	if !v.flake.Converged() || v.notified {
		return
	}
	v.notified = true
	if v.onConverged != nil {
		v.onConverged(v.flake)
	}
}

// HandleEvent applies a key or resize event. It returns false when the
// viewer should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				v.paused = !v.paused
			case 'n', 'N':
				v.stepOnce()
			case 'r', 'R':
				v.flake.Reset(0)
				v.clock.Reset()
				v.notified = false
				v.message = ""
			case '+':
				v.clock.SetTPS(v.clock.TPS() * 2)
			case '-':
				v.clock.SetTPS(max(1, v.clock.TPS()/2))
			}
		}
	case *tcell.EventResize:
		v.screen.Clear()
	}
	return true
}

// Draw renders the lattice centred on the screen with a status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	l := v.flake.Lattice()
	n := l.Size()
	ref := l.Params().Beta
	palette := reiter.DisplayPalette()

	rw, rh := 4*n+1, 2*n+1
	ox := (sw - rw) / 2
	oy := (sh - 1 - rh) / 2
	for _, c := range l.Coords() {
		x, y := c.Doubled(n)
		x += ox
		y += oy
		if x < 0 || y < 0 || x >= sw || y >= sh-1 {
			continue
		}
		cell, _ := l.Cell(c)
		col := palette[reiter.EncodeCell(cell, ref)]
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))
		v.screen.SetContent(x, y, glyphFor(cell), nil, style)
	}

	v.drawStatus(sw, sh)
	v.screen.Show()
}

func (v *Viewer) drawStatus(sw, sh int) {
	st := v.flake.Status()
	state := st.Reason.String()
	if v.paused {
		state = "paused"
	}
	line := fmt.Sprintf(" step %d  frozen %d  tips %d/6  %s  %d tps  [space] pause [n] step [r] reset [+/-] speed [q] quit ",
		v.flake.Steps(), st.Frozen, st.Tips, state, v.clock.TPS())
	if v.message != "" {
		line = " " + v.message + " |" + line
	}
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range line {
		if x >= sw {
			break
		}
		v.screen.SetContent(x, sh-1, r, nil, style)
		x++
	}
}

func glyphFor(cell reiter.Cell) rune {
	switch {
	case cell.Frozen():
		return glyphFrozen
	case cell.Receptive:
		return glyphReceptive
	default:
		return glyphVapor
	}
}
