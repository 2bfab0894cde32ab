package reiter

import (
	"testing"

	"reiter-ca/internal/hex"
)

func TestDetectorFirstCallCannotStall(t *testing.T) {
	l := mustLattice(t, 5, testParams())
	var d Detector
	st := d.Check(l)
	if st.Converged {
		t.Fatalf("first check converged: %+v", st)
	}
	if st.Frozen != 1 {
		t.Fatalf("expected only the seed frozen, got %d", st.Frozen)
	}
	// Nothing changed, so the second look at the same lattice stalls.
	if st := d.Check(l); !st.Converged || st.Reason != ReasonStalled {
		t.Fatalf("expected stall on unchanged count, got %+v", st)
	}
	d.Reset()
	if d.HasConverged(l) {
		t.Fatal("Reset must forget the previous count")
	}
}

func TestDetectorBranchTips(t *testing.T) {
	l := mustLattice(t, 4, testParams())
	var d Detector
	tips := l.BranchTips()
	want := map[hex.Axial]bool{
		{Q: -3, R: 3}: true, {Q: 3, R: -3}: true, {Q: 0, R: 3}: true,
		{Q: 0, R: -3}: true, {Q: 3, R: 0}: true, {Q: -3, R: 0}: true,
	}
	for _, tip := range tips {
		if !want[tip] {
			t.Fatalf("unexpected branch tip %v", tip)
		}
	}

	// Freeze five tips: not enough.
	for _, tip := range tips[:5] {
		l.cells[l.index[tip]].State = 1
	}
	if st := d.Check(l); st.Converged || st.Tips != 5 {
		t.Fatalf("five tips must not converge: %+v", st)
	}
	l.cells[l.index[tips[5]]].State = 1.2
	st := d.Check(l)
	if !st.Converged || st.Reason != ReasonBranchTips || st.Tips != 6 {
		t.Fatalf("expected branch-tip convergence, got %+v", st)
	}
}

func TestConvergenceScenario(t *testing.T) {
	l := mustLattice(t, 3, Params{Alpha: 1, Beta: 0.5, Gamma: 0.001})
	e := NewEngine(1)
	var d Detector
	for step := 1; step < 5000; step++ {
		e.Step(l)
		if d.HasConverged(l) {
			return
		}
	}
	t.Fatal("size 3 lattice did not converge within 5000 steps")
}

func TestStallScenarioWithoutGrowth(t *testing.T) {
	l := mustLattice(t, 10, Params{Alpha: 1, Beta: 0.4, Gamma: 0})
	e := NewEngine(1)
	var d Detector
	for step := 1; step <= 20; step++ {
		e.Step(l)
		st := d.Check(l)
		if !st.Converged {
			continue
		}
		if st.Reason != ReasonStalled {
			t.Fatalf("expected stall, got %v at step %d", st.Reason, step)
		}
		return
	}
	t.Fatal("gamma=0 lattice did not stall within 20 steps")
}

func TestReasonString(t *testing.T) {
	for r, want := range map[Reason]string{
		ReasonNone:       "growing",
		ReasonBranchTips: "branch-tips",
		ReasonStalled:    "stalled",
	} {
		if r.String() != want {
			t.Fatalf("%d.String() = %q", r, r.String())
		}
	}
}
