// Package observ measures the phases of a logic-file conversion run.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Имена фаз конверсии, какими их видят таймер и вывод --timings.
const (
	PhaseLoad    = "load"
	PhaseConvert = "convert"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer collects per-phase wall-clock durations for one logic file.
type Timer struct {
	phases []phase
}

func NewTimer() *Timer { return &Timer{} }

// Phase starts a named phase and returns its stop function. The note
// passed to stop lands next to the phase in the report; a phase whose
// stop function was never called reports zero duration.
func (t *Timer) Phase(name string) func(note string) {
	idx := len(t.phases)
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	return func(note string) {
		p := &t.phases[idx]
		p.dur = time.Since(p.start)
		p.note = note
	}
}

// PhaseReport — одна фаза в сериализуемом отчёте.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report — агрегированные тайминги одного файла.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report снимает текущее состояние таймера в миллисекундах.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	rep := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.dur
		rep.Phases[i] = PhaseReport{
			Name:       p.name,
			DurationMS: toMillis(p.dur),
			Note:       p.note,
		}
	}
	rep.TotalMS = toMillis(total)
	return rep
}

// Summary renders the report for human eyes, one phase per line.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range rep.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", rep.TotalMS)
	return b.String()
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
