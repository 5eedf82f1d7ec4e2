package bf

// EventKind names the detector-relevant moments the Interpreter can raise
// while stepping. At most one is raised per Step call.
type EventKind int

const (
	// NoEvent means the instruction that just ran carries no information
	// any detector needs (+, -, >, <).
	NoEvent EventKind = iota
	LoopSkipped
	LoopEntered
	LoopBackEdge
	LoopBroken
)

func (k EventKind) String() string {
	switch k {
	case LoopSkipped:
		return "LoopSkipped"
	case LoopEntered:
		return "LoopEntered"
	case LoopBackEdge:
		return "LoopBackEdge"
	case LoopBroken:
		return "LoopBroken"
	default:
		return "NoEvent"
	}
}

// Event is what Step reports happened, if anything. LoopID is always the
// program index of the StartLoop instruction that owns the loop.
type Event struct {
	Kind   EventKind
	LoopID int
}

// Interpreter holds the full mutable state of one execution: program
// pointer, memory pointer, tape, and step counter. It knows nothing about
// the detectors that observe its events.
type Interpreter struct {
	Program *Program
	Tape    *Tape
	PP      int
	MP      int
	Steps   uint64
}

// NewInterpreter returns an Interpreter positioned at the start of program
// with a fresh, empty tape.
func NewInterpreter(program *Program) *Interpreter {
	return &Interpreter{
		Program: program,
		Tape:    NewTape(),
	}
}

// Halted reports whether the program pointer has run off the end of the
// program, per spec: halted iff program_pointer == program_length.
func (in *Interpreter) Halted() bool {
	return in.PP >= in.Program.Len()
}

// Step executes exactly one instruction under the dialect's semantics,
// returning the event it raised (if any). Step must not be called once
// Halted reports true.
func (in *Interpreter) Step() Event {
	ins := in.Program.Instrs[in.PP]
	ev := Event{Kind: NoEvent}

	switch ins {
	case Plus:
		in.Tape.Write(in.MP, in.Tape.Read(in.MP)+1)
		in.PP++
	case Minus:
		in.Tape.Write(in.MP, in.Tape.Read(in.MP)-1)
		in.PP++
	case Right:
		in.MP++
		in.PP++
	case Left:
		if in.MP > 0 {
			in.MP--
		}
		in.PP++
	case StartLoop:
		loopID := in.PP
		if in.Tape.Read(in.MP) == 0 {
			in.PP = in.Program.Match[in.PP] + 1
			ev = Event{Kind: LoopSkipped, LoopID: loopID}
		} else {
			in.PP++
			ev = Event{Kind: LoopEntered, LoopID: loopID}
		}
	case EndLoop:
		loopID := in.Program.Match[in.PP]
		if in.Tape.Read(in.MP) != 0 {
			in.PP = loopID + 1
			ev = Event{Kind: LoopBackEdge, LoopID: loopID}
		} else {
			in.PP++
			ev = Event{Kind: LoopBroken, LoopID: loopID}
		}
	}

	in.Steps++
	return ev
}
