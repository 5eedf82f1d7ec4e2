// Package driver runs a program to completion, to a positive non-halting
// verdict, or to its step budget, consulting both detectors in the detect
// package on every loop-lifecycle event.
package driver

import (
	"fmt"

	cp "github.com/jinzhu/copier"

	"nickandperla.net/bbdetect/bf"
	"nickandperla.net/bbdetect/bfconfig"
	"nickandperla.net/bbdetect/bftrace"
	"nickandperla.net/bbdetect/detect"
)

// Reason names which detector produced a NonHalting verdict.
type Reason int

const (
	FullStateCycle Reason = iota
	LoopSpanRepetition
)

func (r Reason) String() string {
	switch r {
	case LoopSpanRepetition:
		return "LoopSpanRepetition"
	default:
		return "FullStateCycle"
	}
}

// Verdict is the outcome of one Analyze call. Exactly one of the three
// shapes below is populated, selected by Kind.
type Verdict struct {
	Kind VerdictKind

	// Halted fields.
	Steps uint64

	// NonHalting fields.
	Reason Reason
	Step   uint64

	// BudgetExhausted fields.
	Budget uint64
}

// VerdictKind discriminates which case a Verdict represents.
type VerdictKind int

const (
	Halted VerdictKind = iota
	NonHalting
	BudgetExhausted
)

func (k VerdictKind) String() string {
	switch k {
	case NonHalting:
		return "NonHalting"
	case BudgetExhausted:
		return "BudgetExhausted"
	default:
		return "Halted"
	}
}

// String renders the verdict the way bftrace.Observer.Verdict reports it.
func (v Verdict) String() string {
	switch v.Kind {
	case Halted:
		return fmt.Sprintf("Halted(steps=%d)", v.Steps)
	case NonHalting:
		return fmt.Sprintf("NonHalting(reason=%s, step=%d)", v.Reason, v.Step)
	default:
		return fmt.Sprintf("BudgetExhausted(budget=%d)", v.Budget)
	}
}

// Clone returns a copy of v.
func (v Verdict) Clone() Verdict {
	clone := Verdict{}
	cp.Copy(&clone, &v)
	return clone
}

// Config controls one Analyze call: the detector/budget settings plus an
// optional Observer. A nil Observer is a safe no-op.
type Config struct {
	*bfconfig.DriverConfig
	Observer bftrace.Observer
}

// NewConfig builds a Config from a DriverConfig with no observer attached.
func NewConfig(dc *bfconfig.DriverConfig) Config {
	return Config{DriverConfig: dc}
}

// Analyze runs program under cfg, returning the first verdict reached:
// the program halts, a detector proves it never will, or the step budget
// runs out first. Analyze holds no state outside its own call frame and a
// fresh bf.Interpreter and pair of detectors, so concurrent calls across
// goroutines never interfere with each other.
func Analyze(program *bf.Program, cfg Config) Verdict {
	interp := bf.NewInterpreter(program)

	var fscd *detect.FSCD
	if cfg.FSCDEnabled {
		fscd = detect.NewFSCD(cfg.PerLoopHistoryCap)
	}
	var lsd *detect.LSD
	if cfg.LSDEnabled {
		lsd = detect.NewLSD(cfg.PerLoopHistoryCap)
	}

	for {
		if interp.Halted() {
			v := Verdict{Kind: Halted, Steps: interp.Steps}
			notifyVerdict(cfg.Observer, v)
			return v
		}
		if interp.Steps >= cfg.StepBudget {
			v := Verdict{Kind: BudgetExhausted, Budget: cfg.StepBudget}
			notifyVerdict(cfg.Observer, v)
			return v
		}

		ev := interp.Step()
		notifyEvent(cfg.Observer, ev, interp.Steps)

		if lsd != nil {
			lsd.Track(interp.MP)
		}

		if isLoopEvent(ev) {
			var cells []uint8
			if fscd != nil || lsd != nil {
				cells = interp.Tape.Snapshot()
			}

			if fscd != nil && isCycleCheckpoint(ev) {
				if fscd.Observe(ev, detect.NewSnapshot(cells, interp.MP)) {
					v := Verdict{Kind: NonHalting, Reason: FullStateCycle, Step: interp.Steps}
					notifyVerdict(cfg.Observer, v)
					return v
				}
			}

			if lsd != nil {
				if lsd.Observe(ev, cells, interp.MP) {
					v := Verdict{Kind: NonHalting, Reason: LoopSpanRepetition, Step: interp.Steps}
					notifyVerdict(cfg.Observer, v)
					return v
				}
			}
		}
	}
}

// isLoopEvent reports whether ev is one either detector cares about.
func isLoopEvent(ev bf.Event) bool {
	switch ev.Kind {
	case bf.LoopEntered, bf.LoopBackEdge, bf.LoopBroken:
		return true
	default:
		return false
	}
}

// isCycleCheckpoint reports whether ev is a point FSCD compares a Memory
// Snapshot against history; LoopBroken carries no snapshot comparison for
// FSCD, only a stack pop for LSD.
func isCycleCheckpoint(ev bf.Event) bool {
	switch ev.Kind {
	case bf.LoopEntered, bf.LoopBackEdge:
		return true
	default:
		return false
	}
}

func notifyEvent(obs bftrace.Observer, ev bf.Event, step uint64) {
	if obs == nil {
		return
	}
	switch ev.Kind {
	case bf.LoopEntered:
		obs.LoopEntered(ev.LoopID, step)
	case bf.LoopBackEdge:
		obs.LoopBackEdge(ev.LoopID, step)
	case bf.LoopBroken:
		obs.LoopBroken(ev.LoopID, step)
	case bf.LoopSkipped:
		obs.LoopSkipped(ev.LoopID, step)
	}
}

func notifyVerdict(obs bftrace.Observer, v Verdict) {
	if obs == nil {
		return
	}
	obs.Verdict(v.String(), currentStep(v))
}

func currentStep(v Verdict) uint64 {
	switch v.Kind {
	case Halted:
		return v.Steps
	case NonHalting:
		return v.Step
	default:
		return v.Budget
	}
}
