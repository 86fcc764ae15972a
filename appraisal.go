package psyche

import (
	"strings"
)

// ──────────────────────────────────────────────
// Text appraisal — lightweight rule-based scoring
// ──────────────────────────────────────────────

// Appraisal holds the detected emotional category of a piece of text
// and the confidence of the detection.
type Appraisal struct {
	Category   EmotionCategory            `json:"category"`
	Confidence float64                    `json:"confidence"`
	Scores     map[EmotionCategory]float64 `json:"scores"`
}

type weightedKeyword struct {
	keyword string
	weight  float64
}

// appraisalConfidenceFloor is the score below which text reads as neutral.
const appraisalConfidenceFloor = 0.3

// Appraiser scores text against weighted keyword lexicons, one per
// emotion category. Strong markers carry higher weights so a single
// mild word does not flip the reading.
type Appraiser struct {
	patterns map[EmotionCategory][]weightedKeyword
}

// NewAppraiser creates an appraiser with the built-in lexicon.
func NewAppraiser() *Appraiser {
	return &Appraiser{patterns: defaultAppraisalPatterns()}
}

func defaultAppraisalPatterns() map[EmotionCategory][]weightedKeyword {
	return map[EmotionCategory][]weightedKeyword{
		CategoryAnger: {
			{keyword: "furious", weight: 0.5}, {keyword: "hate", weight: 0.5},
			{keyword: "fed up", weight: 0.5}, {keyword: "unfair", weight: 0.4},
			{keyword: "annoying", weight: 0.4}, {keyword: "blame", weight: 0.3},
		},
		CategorySadness: {
			{keyword: "miss", weight: 0.4}, {keyword: "lost", weight: 0.4},
			{keyword: "alone", weight: 0.4}, {keyword: "hopeless", weight: 0.5},
			{keyword: "sigh", weight: 0.3}, {keyword: "never mind", weight: 0.3},
		},
		CategoryFear: {
			{keyword: "worried", weight: 0.4}, {keyword: "scared", weight: 0.5},
			{keyword: "what if", weight: 0.3}, {keyword: "urgent", weight: 0.4},
			{keyword: "deadline", weight: 0.3}, {keyword: "can't handle", weight: 0.5},
		},
		CategoryJoy: {
			// lower weights, multiple hits needed to beat the floor
			{keyword: "wonderful", weight: 0.3}, {keyword: "great news", weight: 0.3},
			{keyword: "love it", weight: 0.3}, {keyword: "haha", weight: 0.3},
			{keyword: "can't wait", weight: 0.3}, {keyword: "finally", weight: 0.2},
		},
		CategoryPowerful: {
			{keyword: "proud", weight: 0.4}, {keyword: "nailed it", weight: 0.4},
			{keyword: "promotion", weight: 0.3}, {keyword: "in charge", weight: 0.3},
			{keyword: "accomplished", weight: 0.4},
		},
		CategoryPeaceful: {
			{keyword: "relaxed", weight: 0.4}, {keyword: "at ease", weight: 0.4},
			{keyword: "no rush", weight: 0.3}, {keyword: "grateful", weight: 0.4},
			{keyword: "settled", weight: 0.3},
		},
	}
}

// Appraise scores the text. A confidence below the floor reads as
// neutral: the zero-valued category with confidence 0.
func (a *Appraiser) Appraise(text string) Appraisal {
	lower := strings.ToLower(text)
	scores := make(map[EmotionCategory]float64, len(Categories))
	for _, cat := range Categories {
		scores[cat] = 0
	}

	for cat, keywords := range a.patterns {
		for _, kw := range keywords {
			if strings.Contains(lower, kw.keyword) {
				scores[cat] += kw.weight
			}
		}
	}

	// repeated exclamation amplifies whatever already leads, capped
	if exclam := strings.Count(text, "!"); exclam >= 2 {
		boost := float64(exclam) * 0.1
		if boost > 0.2 {
			boost = 0.2
		}
		if top, score := topCategory(scores); score > 0 {
			scores[top] += boost
		}
	}

	top, score := topCategory(scores)
	if score > 1.0 {
		score = 1.0
	}
	if score < appraisalConfidenceFloor {
		return Appraisal{Confidence: 0, Scores: scores}
	}
	return Appraisal{Category: top, Confidence: score, Scores: scores}
}

// SuggestedDeltas translates an appraisal into emotion adjustments:
// the category's emotions rise proportionally to confidence, the lead
// emotion of the current state within that category rising most.
func (a Appraisal) SuggestedDeltas(state *EmotionalState) map[string]float64 {
	if a.Confidence == 0 || !a.Category.Valid() {
		return nil
	}
	members := EmotionsInCategory(a.Category)
	lead := members[0]
	for _, e := range members[1:] {
		if state.Get(e.Name) > state.Get(lead.Name) {
			lead = e
		}
	}
	deltas := make(map[string]float64, len(members))
	for _, e := range members {
		if e.Name == lead.Name {
			deltas[e.Name] = 0.2 * a.Confidence
		} else {
			deltas[e.Name] = 0.08 * a.Confidence
		}
	}
	return deltas
}

func topCategory(scores map[EmotionCategory]float64) (EmotionCategory, float64) {
	// Categories order breaks ties
	var best EmotionCategory
	bestScore := -1.0
	for _, cat := range Categories {
		if scores[cat] > bestScore {
			best = cat
			bestScore = scores[cat]
		}
	}
	return best, bestScore
}

// AppraiseAndAdjust applies the suggested deltas for text to a clone
// of the state, leaving the input untouched.
func (a *Appraiser) AppraiseAndAdjust(text string, state *EmotionalState) *EmotionalState {
	appraisal := a.Appraise(text)
	next := state.Clone()
	for name, delta := range appraisal.SuggestedDeltas(state) {
		next.Set(name, next.Get(name)+delta)
	}
	return next
}
