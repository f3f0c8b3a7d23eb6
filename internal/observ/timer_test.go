package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	stopLoad := tm.Phase(PhaseLoad)
	stopLoad("")
	stopConvert := tm.Phase(PhaseConvert)
	stopConvert("3 rows")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(rep.Phases))
	}
	if rep.Phases[0].Name != PhaseLoad || rep.Phases[1].Name != PhaseConvert {
		t.Fatalf("phase names = %q, %q", rep.Phases[0].Name, rep.Phases[1].Name)
	}
	if rep.Phases[1].Note != "3 rows" {
		t.Fatalf("note = %q", rep.Phases[1].Note)
	}
	for _, p := range rep.Phases {
		if p.DurationMS < 0 {
			t.Fatalf("negative duration for %s", p.Name)
		}
	}
}

func TestTimerEmptyReport(t *testing.T) {
	rep := NewTimer().Report()
	if rep.TotalMS != 0 || len(rep.Phases) != 0 {
		t.Fatalf("empty timer report = %+v", rep)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	stop := tm.Phase(PhaseConvert)
	stop("")

	out := tm.Summary()
	if !strings.Contains(out, PhaseConvert) || !strings.Contains(out, "total") {
		t.Fatalf("summary = %q", out)
	}
}
