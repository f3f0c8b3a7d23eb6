package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a conversion phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary for one logic file.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during ConvertFile and
// ConvertDir. Observers must be safe for concurrent use when passed to
// ConvertDir.
type PhaseObserver func(PhaseEvent)

func emitPhase(obs PhaseObserver, ev PhaseEvent) {
	if obs != nil {
		obs(ev)
	}
}
