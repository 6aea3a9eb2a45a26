package arena

import (
	"math/rand"

	"qboxing/internal/config"
)

// Agent is one fighter's learning policy: an exclusively owned Q-table,
// an epsilon-greedy selector and the tabular Q-learning update. The two
// agents in a fight are symmetric; neither is special-cased.
type Agent struct {
	ID      string
	Q       *QTable
	Epsilon float64

	alpha float64
	gamma float64
	eMin  float64
	decay float64

	rng *rand.Rand
}

func NewAgent(id string, cfg *config.Config, rng *rand.Rand) *Agent {
	return &Agent{
		ID:      id,
		Q:       NewQTable(cfg.StateSpaceWarnLimit),
		Epsilon: cfg.Learn.Epsilon,
		alpha:   cfg.Learn.Alpha,
		gamma:   cfg.Learn.Gamma,
		eMin:    cfg.Learn.EpsilonMin,
		decay:   cfg.Learn.EpsilonDecay,
		rng:     rng,
	}
}

// SelectAction picks from the legal set: uniform with probability epsilon,
// otherwise the legal action with the highest Q-value, ties broken by
// enumeration order. legal must not be empty; the action space guarantees
// that (movement and idle are always legal).
func (a *Agent) SelectAction(s State, legal []Action) Action {
	if a.rng.Float64() < a.Epsilon {
		return legal[a.rng.Intn(len(legal))]
	}
	best := legal[0]
	bestV := a.Q.Get(s, best)
	for _, act := range legal[1:] {
		if v := a.Q.Get(s, act); v > bestV {
			best, bestV = act, v
		}
	}
	return best
}

// Update applies Q(s,a) += alpha * (r + gamma * max_a' Q(s',a') - Q(s,a)).
// Terminal transitions drop the bootstrap term.
func (a *Agent) Update(prev State, action Action, reward float64, next State, terminal bool) {
	old := a.Q.Get(prev, action)
	target := reward
	if !terminal {
		target += a.gamma * a.Q.Max(next)
	}
	a.Q.Set(prev, action, old+a.alpha*(target-old))
}

// DecayEpsilon steps the exploration schedule; monotone non-increasing
// down to the configured floor.
func (a *Agent) DecayEpsilon() {
	a.Epsilon *= a.decay
	if a.Epsilon < a.eMin {
		a.Epsilon = a.eMin
	}
}
