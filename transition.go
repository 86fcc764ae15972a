package psyche

import (
	"log/slog"
	"math/rand"
	"time"
)

// ──────────────────────────────────────────────
// Transition Engine — Markov-style state evolution
// ──────────────────────────────────────────────

// TransitionMatrix gives, per source category, a probability distribution
// over destination categories. Rows sum to ~1.0.
type TransitionMatrix map[EmotionCategory]map[EmotionCategory]float64

// DefaultTransitionMatrix returns the built-in matrix. Self-transition is
// weighted highest in every row; the off-diagonal mass follows adjacent
// affect (anger drains into sadness, fear resolves toward peace, etc.).
func DefaultTransitionMatrix() TransitionMatrix {
	return TransitionMatrix{
		CategoryAnger: {
			CategoryAnger: 0.45, CategorySadness: 0.20, CategoryFear: 0.10,
			CategoryJoy: 0.05, CategoryPowerful: 0.10, CategoryPeaceful: 0.10,
		},
		CategorySadness: {
			CategoryAnger: 0.10, CategorySadness: 0.45, CategoryFear: 0.15,
			CategoryJoy: 0.10, CategoryPowerful: 0.05, CategoryPeaceful: 0.15,
		},
		CategoryFear: {
			CategoryAnger: 0.10, CategorySadness: 0.15, CategoryFear: 0.45,
			CategoryJoy: 0.05, CategoryPowerful: 0.10, CategoryPeaceful: 0.15,
		},
		CategoryJoy: {
			CategoryAnger: 0.05, CategorySadness: 0.05, CategoryFear: 0.05,
			CategoryJoy: 0.45, CategoryPowerful: 0.20, CategoryPeaceful: 0.20,
		},
		CategoryPowerful: {
			CategoryAnger: 0.05, CategorySadness: 0.05, CategoryFear: 0.05,
			CategoryJoy: 0.20, CategoryPowerful: 0.45, CategoryPeaceful: 0.20,
		},
		CategoryPeaceful: {
			CategoryAnger: 0.05, CategorySadness: 0.10, CategoryFear: 0.05,
			CategoryJoy: 0.20, CategoryPowerful: 0.15, CategoryPeaceful: 0.45,
		},
	}
}

// How far a single step moves intensities, before volatility scaling.
const (
	transitionDecayRate = 0.25
	transitionRiseRate  = 0.35
	// secondary emotions in the destination category rise at a fraction
	// of the leading emotion's gain
	secondaryRiseShare = 0.4
)

// EngineConfig configures a TransitionEngine. A nil Matrix gets the
// built-in one and a zero Seed gets a time seed; Volatility is taken
// as-is so callers can express a fully frozen engine. Calling
// NewTransitionEngine with no config at all defaults volatility to 0.5.
type EngineConfig struct {
	Matrix     TransitionMatrix
	Volatility float64 // [0,1]; 0 freezes the state entirely
	Seed       int64   // nonzero for reproducible sampling
	Logger     *slog.Logger
}

// TransitionEngine computes a persona's next emotional state from its
// current state and trait profile.
type TransitionEngine struct {
	matrix     TransitionMatrix
	volatility float64
	rng        *rand.Rand
	logger     *slog.Logger
}

// NewTransitionEngine creates an engine. Pass at most one config.
func NewTransitionEngine(config ...EngineConfig) *TransitionEngine {
	cfg := EngineConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Matrix == nil {
		cfg.Matrix = DefaultTransitionMatrix()
	}
	if cfg.Volatility == 0 && len(config) == 0 {
		cfg.Volatility = 0.5
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &TransitionEngine{
		matrix:     cfg.Matrix,
		volatility: clamp01(cfg.Volatility),
		rng:        rand.New(rand.NewSource(seed)),
		logger:     cfg.Logger,
	}
}

// Volatility returns the engine's step-size scaling factor.
func (e *TransitionEngine) Volatility() float64 { return e.volatility }

// SetVolatility clamps and stores a new volatility.
func (e *TransitionEngine) SetVolatility(v float64) { e.volatility = clamp01(v) }

// AdjustedRow returns the source category's transition row after trait
// biasing: each probability is nudged toward or away from trait-congruent
// categories via the midpoint-deviation modifier and clamped to [0,1].
func (e *TransitionEngine) AdjustedRow(src EmotionCategory, traits *TraitProfile) map[EmotionCategory]float64 {
	row := e.matrix[src]
	out := make(map[EmotionCategory]float64, len(Categories))
	for _, dst := range Categories {
		p := row[dst]
		out[dst] = clamp01(p + p*CategoryModifier(traits, dst))
	}
	return out
}

// NextState computes the next emotional state. The input state is never
// mutated. At volatility 0 the next state equals the current one.
func (e *TransitionEngine) NextState(current *EmotionalState, traits *TraitProfile) *EmotionalState {
	if e.volatility == 0 {
		return current.Clone()
	}

	domEmotion, domIntensity := current.Dominant()
	src := domEmotion.Category
	weights := e.AdjustedRow(src, traits)
	dst := e.sampleCategory(weights)

	next := current.Clone()

	// Everything fades a little; how much depends on volatility.
	decay := transitionDecayRate * e.volatility
	for name, v := range next.intensities {
		next.intensities[name] = v * (1 - decay)
	}

	// The destination category rises. The trait-congruent lead emotion
	// gains the full rise, the rest of the category a fraction of it.
	rise := transitionRiseRate * e.volatility
	lead := e.leadEmotion(dst, current, traits)
	for _, emo := range EmotionsInCategory(dst) {
		gain := rise * (1 + EmotionModifier(traits, emo.Name))
		if gain < 0 {
			gain = 0
		}
		if emo.Name != lead.Name {
			gain *= secondaryRiseShare
		}
		next.intensities[emo.Name] = clamp01(next.intensities[emo.Name] + gain)
	}

	if e.logger != nil {
		e.logger.Debug("emotion transition",
			"from_category", string(src),
			"to_category", string(dst),
			"dominant", domEmotion.Name,
			"intensity", domIntensity,
			"lead", lead.Name,
			"volatility", e.volatility,
		)
	}
	return next
}

// SimulateTrajectory applies NextState repeatedly, returning steps+1
// states; the first entry mirrors the unmodified initial state.
func (e *TransitionEngine) SimulateTrajectory(initial *EmotionalState, traits *TraitProfile, steps int) []*EmotionalState {
	out := make([]*EmotionalState, 0, steps+1)
	out = append(out, initial.Clone())
	cur := initial
	for i := 0; i < steps; i++ {
		cur = e.NextState(cur, traits)
		out = append(out, cur)
	}
	return out
}

// sampleCategory picks a destination weighted by the adjusted row,
// walking categories in declaration order so equal-weight outcomes stay
// deterministic for a given RNG state.
func (e *TransitionEngine) sampleCategory(weights map[EmotionCategory]float64) EmotionCategory {
	var total float64
	for _, cat := range Categories {
		total += weights[cat]
	}
	if total <= 0 {
		return Categories[0]
	}
	target := e.rng.Float64() * total
	var acc float64
	for _, cat := range Categories {
		acc += weights[cat]
		if target < acc {
			return cat
		}
	}
	return Categories[len(Categories)-1]
}

// leadEmotion chooses which emotion carries the destination category's
// rise: the one scoring highest on current intensity plus trait modifier,
// ties broken by taxonomy order.
func (e *TransitionEngine) leadEmotion(cat EmotionCategory, state *EmotionalState, traits *TraitProfile) Emotion {
	members := EmotionsInCategory(cat)
	best := members[0]
	bestScore := state.Get(best.Name) + EmotionModifier(traits, best.Name)
	for _, emo := range members[1:] {
		score := state.Get(emo.Name) + EmotionModifier(traits, emo.Name)
		if score > bestScore {
			best, bestScore = emo, score
		}
	}
	return best
}
