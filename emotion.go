package psyche

import (
	"fmt"
)

// ──────────────────────────────────────────────
// Emotion Taxonomy — 36 emotions in 6 categories
// ──────────────────────────────────────────────

// EmotionCategory groups emotions by shared valence and arousal.
type EmotionCategory string

const (
	CategoryAnger    EmotionCategory = "anger"
	CategorySadness  EmotionCategory = "sadness"
	CategoryFear     EmotionCategory = "fear"
	CategoryJoy      EmotionCategory = "joy"
	CategoryPowerful EmotionCategory = "powerful"
	CategoryPeaceful EmotionCategory = "peaceful"
)

// Categories lists all categories in declaration order.
// This order is the tie-break order for dominant-category selection.
var Categories = []EmotionCategory{
	CategoryAnger,
	CategorySadness,
	CategoryFear,
	CategoryJoy,
	CategoryPowerful,
	CategoryPeaceful,
}

// CategoryProfile describes a category's valence and arousal level.
type CategoryProfile struct {
	Valence string `json:"valence"` // positive|negative
	Arousal string `json:"arousal"` // high|low
}

var categoryProfiles = map[EmotionCategory]CategoryProfile{
	CategoryAnger:    {Valence: "negative", Arousal: "high"},
	CategorySadness:  {Valence: "negative", Arousal: "low"},
	CategoryFear:     {Valence: "negative", Arousal: "high"},
	CategoryJoy:      {Valence: "positive", Arousal: "high"},
	CategoryPowerful: {Valence: "positive", Arousal: "high"},
	CategoryPeaceful: {Valence: "positive", Arousal: "low"},
}

// Profile returns the category's valence/arousal descriptor.
func (c EmotionCategory) Profile() CategoryProfile {
	return categoryProfiles[c]
}

// Valid reports whether c names a known category.
func (c EmotionCategory) Valid() bool {
	_, ok := categoryProfiles[c]
	return ok
}

// Emotion is an immutable taxonomy record.
type Emotion struct {
	Name        string          `json:"name"`
	Category    EmotionCategory `json:"category"`
	Description string          `json:"description"`
}

// Emotions is the full taxonomy in declaration order.
// This order is the tie-break order for dominant-emotion selection.
var Emotions = []Emotion{
	// anger
	{Name: "hostile", Category: CategoryAnger, Description: "open antagonism toward another"},
	{Name: "frustrated", Category: CategoryAnger, Description: "blocked from a desired outcome"},
	{Name: "irritated", Category: CategoryAnger, Description: "low-grade annoyance"},
	{Name: "resentful", Category: CategoryAnger, Description: "lingering grievance over unfair treatment"},
	{Name: "critical", Category: CategoryAnger, Description: "fault-finding, judgmental stance"},
	{Name: "jealous", Category: CategoryAnger, Description: "possessive envy of another's position"},

	// sadness
	{Name: "lonely", Category: CategorySadness, Description: "painful sense of isolation"},
	{Name: "depressed", Category: CategorySadness, Description: "pervasive low mood and hopelessness"},
	{Name: "ashamed", Category: CategorySadness, Description: "painful self-consciousness over a failing"},
	{Name: "guilty", Category: CategorySadness, Description: "remorse over a wrong done"},
	{Name: "bored", Category: CategorySadness, Description: "dull disengagement"},
	{Name: "apathetic", Category: CategorySadness, Description: "absence of interest or motivation"},

	// fear
	{Name: "anxious", Category: CategoryFear, Description: "diffuse worry about what may come"},
	{Name: "insecure", Category: CategoryFear, Description: "doubt in one's own worth or footing"},
	{Name: "rejected", Category: CategoryFear, Description: "cast out or unwanted"},
	{Name: "confused", Category: CategoryFear, Description: "unable to make sense of the situation"},
	{Name: "helpless", Category: CategoryFear, Description: "powerless to affect events"},
	{Name: "overwhelmed", Category: CategoryFear, Description: "demands exceed capacity to cope"},

	// joy
	{Name: "excited", Category: CategoryJoy, Description: "eager, energized anticipation"},
	{Name: "hopeful", Category: CategoryJoy, Description: "positive expectation for the future"},
	{Name: "playful", Category: CategoryJoy, Description: "light, fun-seeking spirit"},
	{Name: "cheerful", Category: CategoryJoy, Description: "bright, good-humored mood"},
	{Name: "optimistic", Category: CategoryJoy, Description: "confidence that things will work out"},
	{Name: "amused", Category: CategoryJoy, Description: "entertained, finding humor"},

	// powerful
	{Name: "proud", Category: CategoryPowerful, Description: "satisfaction in one's own achievement"},
	{Name: "confident", Category: CategoryPowerful, Description: "self-assured in ability"},
	{Name: "respected", Category: CategoryPowerful, Description: "held in regard by others"},
	{Name: "appreciated", Category: CategoryPowerful, Description: "valued for one's contribution"},
	{Name: "important", Category: CategoryPowerful, Description: "sense of mattering to others"},
	{Name: "determined", Category: CategoryPowerful, Description: "resolved to see something through"},

	// peaceful
	{Name: "calm", Category: CategoryPeaceful, Description: "settled, unagitated"},
	{Name: "content", Category: CategoryPeaceful, Description: "quiet satisfaction with what is"},
	{Name: "relaxed", Category: CategoryPeaceful, Description: "free of tension"},
	{Name: "serene", Category: CategoryPeaceful, Description: "deep, undisturbed tranquility"},
	{Name: "trusting", Category: CategoryPeaceful, Description: "at ease relying on others"},
	{Name: "grateful", Category: CategoryPeaceful, Description: "warm appreciation for what one has"},
}

var emotionByName = func() map[string]Emotion {
	m := make(map[string]Emotion, len(Emotions))
	for _, e := range Emotions {
		m[e.Name] = e
	}
	return m
}()

// EmotionByName looks up a taxonomy emotion.
func EmotionByName(name string) (Emotion, bool) {
	e, ok := emotionByName[name]
	return e, ok
}

// EmotionsInCategory returns the category's emotions in declaration order.
func EmotionsInCategory(cat EmotionCategory) []Emotion {
	out := make([]Emotion, 0, 6)
	for _, e := range Emotions {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// ──────────────────────────────────────────────
// Emotional State — per-persona intensity map
// ──────────────────────────────────────────────

// EmotionalState maps every taxonomy emotion to an intensity in [0,1].
// Unset emotions read as 0.0; the all-zero state is "neutral".
type EmotionalState struct {
	intensities map[string]float64
}

// NewEmotionalState creates a neutral (all-zero) state.
func NewEmotionalState() *EmotionalState {
	return &EmotionalState{intensities: make(map[string]float64)}
}

// Get returns the intensity for an emotion, 0.0 if unset or unknown.
func (s *EmotionalState) Get(name string) float64 {
	return s.intensities[name]
}

// Set stores an absolute intensity, clamped to [0,1].
// Unknown emotion names are a configuration error.
func (s *EmotionalState) Set(name string, value float64) error {
	if _, ok := emotionByName[name]; !ok {
		return fmt.Errorf("set %q: %w", name, ErrUnknownEmotion)
	}
	s.intensities[name] = clamp01(value)
	return nil
}

// Dominant returns the highest-intensity emotion.
// Ties break by taxonomy declaration order; a neutral state yields the
// first taxonomy emotion at intensity 0.
func (s *EmotionalState) Dominant() (Emotion, float64) {
	best := Emotions[0]
	bestVal := s.intensities[best.Name]
	for _, e := range Emotions[1:] {
		if v := s.intensities[e.Name]; v > bestVal {
			best, bestVal = e, v
		}
	}
	return best, bestVal
}

// DominantCategory returns the category of the dominant emotion.
func (s *EmotionalState) DominantCategory() EmotionCategory {
	e, _ := s.Dominant()
	return e.Category
}

// Clone returns an independent copy of the state.
func (s *EmotionalState) Clone() *EmotionalState {
	out := NewEmotionalState()
	for k, v := range s.intensities {
		out.intensities[k] = v
	}
	return out
}

// ToMapping returns every taxonomy emotion with its intensity,
// including zero-valued ones.
func (s *EmotionalState) ToMapping() map[string]float64 {
	out := make(map[string]float64, len(Emotions))
	for _, e := range Emotions {
		out[e.Name] = s.intensities[e.Name]
	}
	return out
}

// EmotionalStateFromMapping rebuilds a state from a mapping.
// Unknown emotion names fail the whole load.
func EmotionalStateFromMapping(m map[string]float64) (*EmotionalState, error) {
	s := NewEmotionalState()
	for name, v := range m {
		if err := s.Set(name, v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ToStructured returns the stable serialization form.
func (s *EmotionalState) ToStructured() map[string]any {
	return map[string]any{"intensities": s.ToMapping()}
}

// EmotionalStateFromStructured rebuilds a state from its structured form.
func EmotionalStateFromStructured(data map[string]any) (*EmotionalState, error) {
	raw, ok := data["intensities"]
	if !ok {
		return nil, fmt.Errorf("emotional state: missing intensities: %w", ErrBadStructured)
	}
	m, err := toFloatMap(raw)
	if err != nil {
		return nil, fmt.Errorf("emotional state: %w", err)
	}
	return EmotionalStateFromMapping(m)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// toFloatMap converts a structured-form value (map[string]float64 or
// map[string]any of numbers, as produced by JSON decoding) to floats.
func toFloatMap(raw any) (map[string]float64, error) {
	switch m := raw.(type) {
	case map[string]float64:
		out := make(map[string]float64, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	case map[string]any:
		out := make(map[string]float64, len(m))
		for k, v := range m {
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("value for %q is not a number: %w", k, ErrBadStructured)
			}
			out[k] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected mapping: %w", ErrBadStructured)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
