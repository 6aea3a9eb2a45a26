package arena

import "qboxing/internal/config"

// Action is one of the moves a fighter can submit on a tick. Enumeration
// order is the deterministic tie-break order for greedy selection.
type Action int

const (
	ActionAdvance Action = iota
	ActionRetreat
	ActionPunchClose
	ActionPunchMedium
	ActionPunchFar
	ActionDodge
	ActionIdle

	actionCount
)

var actionNames = [...]string{
	"advance", "retreat",
	"punch_close", "punch_medium", "punch_far",
	"dodge", "idle",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Actions lists every action in tie-break order.
func Actions() []Action {
	out := make([]Action, actionCount)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// IsPunch reports whether the action is one of the three punch kinds.
func (a Action) IsPunch() bool {
	return a == ActionPunchClose || a == ActionPunchMedium || a == ActionPunchFar
}

// IdealBucket is the distance bucket at which the punch lands clean.
func (a Action) IdealBucket() DistBucket {
	switch a {
	case ActionPunchClose:
		return BucketClose
	case ActionPunchMedium:
		return BucketMedium
	case ActionPunchFar:
		return BucketFar
	}
	return BucketOutOfRange
}

// ActionSpace answers legality questions from fighter state and the
// tick-start distance bucket. It is a pure view over the config.
type ActionSpace struct {
	cfg *config.Config
}

func NewActionSpace(cfg *config.Config) *ActionSpace {
	return &ActionSpace{cfg: cfg}
}

func (s *ActionSpace) punch(a Action) config.PunchConfig {
	switch a {
	case ActionPunchClose:
		return s.cfg.Punches.Close
	case ActionPunchMedium:
		return s.cfg.Punches.Medium
	default:
		return s.cfg.Punches.Far
	}
}

// Cost returns the energy price of submitting the action.
func (s *ActionSpace) Cost(a Action) float64 {
	switch {
	case a.IsPunch():
		return s.punch(a).Cost
	case a == ActionDodge:
		return s.cfg.Dodge.Cost
	default:
		return 0
	}
}

// Legal reports whether the fighter may submit the action right now.
// A punch the fighter cannot afford is illegal, not merely penalized.
func (s *ActionSpace) Legal(f *Fighter, bucket DistBucket, a Action) bool {
	switch {
	case a.IsPunch():
		if bucket == BucketOutOfRange {
			return false
		}
		if f.PunchCD > 0 {
			return false
		}
		return f.Energy >= s.punch(a).Cost
	case a == ActionDodge:
		return f.DodgeCD == 0 && f.Energy >= s.cfg.Dodge.Cost
	default:
		// movement and idle are always available
		return true
	}
}

// LegalActions returns the legal set in enumeration order. It is never
// empty: advance, retreat and idle carry no preconditions.
func (s *ActionSpace) LegalActions(f *Fighter, bucket DistBucket) []Action {
	out := make([]Action, 0, int(actionCount))
	for a := Action(0); a < actionCount; a++ {
		if s.Legal(f, bucket, a) {
			out = append(out, a)
		}
	}
	return out
}
