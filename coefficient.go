package psyche

// ──────────────────────────────────────────────
// Trait–Emotion Coefficient Table
// ──────────────────────────────────────────────

// traitEmotionCoefficients holds the signed influence of a trait on an
// emotion, in [-1,1]. Positive means the trait amplifies the emotion,
// negative means it suppresses it. Unmapped pairs read as 0.
var traitEmotionCoefficients = map[string]map[string]float64{
	"agreeableness": {
		"hostile": -0.6, "critical": -0.4, "irritated": -0.3, "content": 0.3,
	},
	"empathy": {
		"hostile": -0.5, "critical": -0.3, "trusting": 0.4, "grateful": 0.3, "guilty": 0.2,
	},
	"assertiveness": {
		"confident": 0.5, "important": 0.3, "helpless": -0.5, "insecure": -0.4,
	},
	"trustfulness": {
		"trusting": 0.6, "jealous": -0.4, "insecure": -0.2, "relaxed": 0.2,
	},
	"sociability": {
		"lonely": -0.5, "playful": 0.4, "excited": 0.3, "bored": -0.2,
	},
	"emotional_stability": {
		"anxious": -0.6, "overwhelmed": -0.5, "irritated": -0.4, "helpless": -0.3, "calm": 0.5,
	},
	"optimism": {
		"optimistic": 0.7, "hopeful": 0.6, "cheerful": 0.4, "depressed": -0.5, "apathetic": -0.3,
	},
	"sensitivity": {
		"rejected": 0.4, "ashamed": 0.3, "overwhelmed": 0.3, "serene": -0.2,
	},
	"expressiveness": {
		"excited": 0.3, "playful": 0.3, "apathetic": -0.4,
	},
	"openness": {
		"amused": 0.3, "bored": -0.3, "confused": -0.2,
	},
	"curiosity": {
		"excited": 0.4, "bored": -0.5, "amused": 0.2,
	},
	"analytical": {
		"confused": -0.4, "critical": 0.3, "overwhelmed": -0.2,
	},
	"conscientiousness": {
		"determined": 0.4, "guilty": 0.3, "apathetic": -0.3,
	},
	"impulsivity": {
		"irritated": 0.3, "excited": 0.3, "calm": -0.3,
	},
	"risk_tolerance": {
		"anxious": -0.4, "confident": 0.3, "excited": 0.2,
	},
	"persistence": {
		"determined": 0.5, "helpless": -0.4, "hopeful": 0.2,
	},
	"adaptability": {
		"overwhelmed": -0.4, "frustrated": -0.3, "relaxed": 0.3,
	},
}

// CoefficientFor returns the signed (trait, emotion) coefficient,
// 0 for unmapped pairs.
func CoefficientFor(trait, emotion string) float64 {
	return traitEmotionCoefficients[trait][emotion]
}

// EmotionModifier computes the aggregate trait influence on a single
// emotion. Each trait with a nonzero coefficient contributes
// coefficient * (value - 0.5) * 2, the deviation from the neutral
// midpoint scaled into [-1,1]. Contributions sum additively; a trait
// sitting exactly at the midpoint contributes nothing.
func EmotionModifier(traits *TraitProfile, emotion string) float64 {
	var mod float64
	for trait, row := range traitEmotionCoefficients {
		coeff, ok := row[emotion]
		if !ok || coeff == 0 {
			continue
		}
		mod += coeff * (traits.Get(trait) - NeutralTraitValue) * 2
	}
	return mod
}

// categoryTraitAffinity holds trait influence on category-level transition
// probability, same sign convention and midpoint scaling as the
// per-emotion table.
var categoryTraitAffinity = map[EmotionCategory]map[string]float64{
	CategoryAnger: {
		"agreeableness": -0.5, "emotional_stability": -0.4, "impulsivity": 0.3,
	},
	CategorySadness: {
		"optimism": -0.6, "sensitivity": 0.3, "sociability": -0.2,
	},
	CategoryFear: {
		"emotional_stability": -0.6, "risk_tolerance": -0.3, "sensitivity": 0.3,
	},
	CategoryJoy: {
		"optimism": 0.5, "sociability": 0.3, "expressiveness": 0.2,
	},
	CategoryPowerful: {
		"assertiveness": 0.5, "persistence": 0.3, "conscientiousness": 0.2,
	},
	CategoryPeaceful: {
		"emotional_stability": 0.5, "adaptability": 0.3, "trustfulness": 0.2,
	},
}

// CategoryModifier computes the aggregate trait influence on transitions
// into a category, mirroring EmotionModifier's midpoint-deviation scaling.
func CategoryModifier(traits *TraitProfile, cat EmotionCategory) float64 {
	var mod float64
	for trait, coeff := range categoryTraitAffinity[cat] {
		if coeff == 0 {
			continue
		}
		mod += coeff * (traits.Get(trait) - NeutralTraitValue) * 2
	}
	return mod
}
