package config

// Config holds every tunable of the fight simulation. Defaults live in
// Default; anything loaded from yaml is validated before a simulation is
// constructed.
type Config struct {
	MaxHealth float64 `yaml:"max_health"`
	MaxEnergy float64 `yaml:"max_energy"`
	Speed     float64 `yaml:"speed"`

	ArenaLength float64 `yaml:"arena_length"`
	StartGap    float64 `yaml:"start_gap"`
	BodyGap     float64 `yaml:"body_gap"`

	RoundTicks    int   `yaml:"round_ticks"`
	RoundsPerBout int   `yaml:"rounds_per_bout"`
	Seed          int64 `yaml:"seed"`

	// Distance buckets, upper bounds on the gap between the fighters.
	// Anything past FarMax is out of range.
	CloseMax  float64 `yaml:"close_max"`
	MediumMax float64 `yaml:"medium_max"`
	FarMax    float64 `yaml:"far_max"`

	Punches PunchSet     `yaml:"punches"`
	Dodge   DodgeConfig  `yaml:"dodge"`
	Damage  DamageConfig `yaml:"damage"`

	RegenIdle float64 `yaml:"regen_idle"`
	RegenMove float64 `yaml:"regen_move"`

	CarryDamagePerLoss float64 `yaml:"carry_damage_per_loss"`
	MinStartHealth     float64 `yaml:"min_start_health"`
	KnockoutChance     float64 `yaml:"knockout_chance"`
	KnockoutEscalation float64 `yaml:"knockout_escalation"`

	Learn   LearnConfig  `yaml:"learn"`
	Rewards RewardConfig `yaml:"rewards"`

	// Soft limit on distinct Q-table keys before a misconfigured
	// discretization is reported.
	StateSpaceWarnLimit int `yaml:"state_space_warn_limit"`
}

// PunchConfig describes one punch kind.
type PunchConfig struct {
	Cost      float64 `yaml:"cost"`
	Cooldown  int     `yaml:"cooldown"`
	Reach     float64 `yaml:"reach"`
	DamageMin float64 `yaml:"damage_min"`
	DamageMax float64 `yaml:"damage_max"`
}

type PunchSet struct {
	Close  PunchConfig `yaml:"close"`
	Medium PunchConfig `yaml:"medium"`
	Far    PunchConfig `yaml:"far"`
}

type DodgeConfig struct {
	Cost          float64 `yaml:"cost"`
	Cooldown      int     `yaml:"cooldown"`
	ActiveTicks   int     `yaml:"active_ticks"`
	EvadeProb     float64 `yaml:"evade_prob"`
	CounterWindow int     `yaml:"counter_window"`
	CounterMult   float64 `yaml:"counter_mult"`
}

type DamageConfig struct {
	ModeRatio     float64 `yaml:"mode_ratio"`
	EnergyMultMin float64 `yaml:"energy_mult_min"`
	EnergyMultMax float64 `yaml:"energy_mult_max"`
	MismatchMult  float64 `yaml:"mismatch_mult"`
	ChaosMin      float64 `yaml:"chaos_min"`
	ChaosMax      float64 `yaml:"chaos_max"`

	SuperChance float64 `yaml:"super_chance"`
	SuperMin    float64 `yaml:"super_min"`
	SuperMax    float64 `yaml:"super_max"`
}

type LearnConfig struct {
	Alpha        float64 `yaml:"alpha"`
	Gamma        float64 `yaml:"gamma"`
	Epsilon      float64 `yaml:"epsilon"`
	EpsilonMin   float64 `yaml:"epsilon_min"`
	EpsilonDecay float64 `yaml:"epsilon_decay"`
}

type RewardConfig struct {
	Base           float64 `yaml:"base"`
	DamageDealt    float64 `yaml:"damage_dealt"`
	DamageTaken    float64 `yaml:"damage_taken"`
	Close          float64 `yaml:"close"`
	CloseFrom      float64 `yaml:"close_from"`
	FarStep        float64 `yaml:"far_step"`
	FarFrom        float64 `yaml:"far_from"`
	PunchMiss      float64 `yaml:"punch_miss"`
	IdleFar        float64 `yaml:"idle_far"`
	IdleFarEnergy  float64 `yaml:"idle_far_energy"`
	LowEnergyWaste float64 `yaml:"low_energy_waste"`
	LowEnergyFrac  float64 `yaml:"low_energy_frac"`
	DodgeSuccess   float64 `yaml:"dodge_success"`
	GotDodged      float64 `yaml:"got_dodged"`
	CounterHit     float64 `yaml:"counter_hit"`
	Endgame        float64 `yaml:"endgame"`
	EndgameTicks   int     `yaml:"endgame_ticks"`
	EndgameGap     float64 `yaml:"endgame_gap"`
	Win            float64 `yaml:"win"`
	Lose           float64 `yaml:"lose"`
}

// Default returns the tuning the simulator ships with.
func Default() *Config {
	return &Config{
		MaxHealth: 200,
		MaxEnergy: 100,
		Speed:     8,

		ArenaLength: 400,
		StartGap:    280,
		BodyGap:     10,

		RoundTicks:    600,
		RoundsPerBout: 12,
		Seed:          12345,

		CloseMax:  60,
		MediumMax: 90,
		FarMax:    120,

		Punches: PunchSet{
			Close:  PunchConfig{Cost: 20, Cooldown: 42, Reach: 65, DamageMin: 5, DamageMax: 18},
			Medium: PunchConfig{Cost: 30, Cooldown: 68, Reach: 95, DamageMin: 9, DamageMax: 28},
			Far:    PunchConfig{Cost: 50, Cooldown: 86, Reach: 125, DamageMin: 14, DamageMax: 40},
		},
		Dodge: DodgeConfig{
			Cost:          24,
			Cooldown:      180,
			ActiveTicks:   14,
			EvadeProb:     0.75,
			CounterWindow: 36,
			CounterMult:   1.5,
		},
		Damage: DamageConfig{
			ModeRatio:     0.55,
			EnergyMultMin: 0.82,
			EnergyMultMax: 1.0,
			MismatchMult:  0.65,
			ChaosMin:      0.96,
			ChaosMax:      1.06,
			SuperChance:   0.012,
			SuperMin:      160,
			SuperMax:      180,
		},

		RegenIdle: 0.55,
		RegenMove: 0.20,

		CarryDamagePerLoss: 18,
		MinStartHealth:     70,
		KnockoutChance:     0.001,
		KnockoutEscalation: 0.001,

		Learn: LearnConfig{
			Alpha:        0.13,
			Gamma:        0.92,
			Epsilon:      0.26,
			EpsilonMin:   0.06,
			EpsilonDecay: 0.99955,
		},
		Rewards: RewardConfig{
			Base:           -0.06,
			DamageDealt:    1.15,
			DamageTaken:    1.30,
			Close:          0.085,
			CloseFrom:      150,
			FarStep:        -0.10,
			FarFrom:        280,
			PunchMiss:      -1.05,
			IdleFar:        -0.12,
			IdleFarEnergy:  35,
			LowEnergyWaste: -0.12,
			LowEnergyFrac:  0.30,
			DodgeSuccess:   2.2,
			GotDodged:      -2.2,
			CounterHit:     4.0,
			Endgame:        -0.12,
			EndgameTicks:   60,
			EndgameGap:     120,
			Win:            70,
			Lose:           -70,
		},

		StateSpaceWarnLimit: 20000,
	}
}
