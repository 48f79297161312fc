package crafting

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseAssembling
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseAssembling:
		return "assembling"
	default:
		return "unknown"
	}
}

// CrafterState is Idle, Pending(repeat) or Assembling(repeat). Repeat is
// only meaningful for the two active phases and survives the hand-off
// between them.
type CrafterState struct {
	Phase  Phase
	Repeat bool
}

func Idle() CrafterState {
	return CrafterState{Phase: PhaseIdle}
}

func Pending(repeat bool) CrafterState {
	return CrafterState{Phase: PhasePending, Repeat: repeat}
}

func Assembling(repeat bool) CrafterState {
	return CrafterState{Phase: PhaseAssembling, Repeat: repeat}
}

func (s CrafterState) IsIdle() bool {
	return s.Phase == PhaseIdle
}

func (s CrafterState) String() string {
	if s.Phase == PhaseIdle {
		return s.Phase.String()
	}
	if s.Repeat {
		return s.Phase.String() + "(repeat)"
	}
	return s.Phase.String() + "(once)"
}
