package psyche

import (
	"fmt"
	"strings"
)

// ──────────────────────────────────────────────
// Masks — non-destructive emotional overlays
// ──────────────────────────────────────────────

// Mask is a named overlay that shifts how emotions present without ever
// altering the underlying state. Modifications are per-emotion deltas in
// [-1,1]; applying a mask always produces a new state.
type Mask struct {
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Modifications   map[string]float64 `json:"emotional_modifications"`
	TriggerKeywords []string           `json:"trigger_keywords"`
	ActiveByDefault bool               `json:"active_by_default"`
}

// NewMask validates and builds a mask. Every modification must name a
// taxonomy emotion and sit in [-1,1].
func NewMask(name, description string, modifications map[string]float64, triggerKeywords []string, activeByDefault bool) (*Mask, error) {
	mods := make(map[string]float64, len(modifications))
	for emotion, delta := range modifications {
		if _, ok := EmotionByName(emotion); !ok {
			return nil, fmt.Errorf("mask %q: modification %q: %w", name, emotion, ErrUnknownEmotion)
		}
		if delta < -1 || delta > 1 {
			return nil, fmt.Errorf("mask %q: modification %q = %v: %w", name, emotion, delta, ErrOutOfRange)
		}
		mods[emotion] = delta
	}
	return &Mask{
		Name:            name,
		Description:     description,
		Modifications:   mods,
		TriggerKeywords: append([]string(nil), triggerKeywords...),
		ActiveByDefault: activeByDefault,
	}, nil
}

// Apply returns a new state with every modified emotion shifted by its
// delta and clamped to [0,1]. The input state is untouched.
func (m *Mask) Apply(state *EmotionalState) *EmotionalState {
	out := state.Clone()
	for emotion, delta := range m.Modifications {
		out.intensities[emotion] = clamp01(out.intensities[emotion] + delta)
	}
	return out
}

// ShouldTrigger reports whether the mask applies to the given context
// text: always for active-by-default masks, otherwise when any trigger
// keyword substring-matches case-insensitively.
func (m *Mask) ShouldTrigger(text string) bool {
	if m.ActiveByDefault {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range m.TriggerKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// ToStructured returns the stable serialization form.
func (m *Mask) ToStructured() map[string]any {
	mods := make(map[string]float64, len(m.Modifications))
	for k, v := range m.Modifications {
		mods[k] = v
	}
	return map[string]any{
		"name":                    m.Name,
		"description":             m.Description,
		"emotional_modifications": mods,
		"trigger_keywords":        append([]string(nil), m.TriggerKeywords...),
		"active_by_default":       m.ActiveByDefault,
	}
}

// MaskFromStructured rebuilds a mask from its structured form, with the
// same validation as NewMask.
func MaskFromStructured(data map[string]any) (*Mask, error) {
	name, _ := data["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("mask: missing name: %w", ErrBadStructured)
	}
	description, _ := data["description"].(string)
	active, _ := data["active_by_default"].(bool)

	var mods map[string]float64
	if raw, ok := data["emotional_modifications"]; ok && raw != nil {
		m, err := toFloatMap(raw)
		if err != nil {
			return nil, fmt.Errorf("mask %q: %w", name, err)
		}
		mods = m
	}

	var keywords []string
	switch kws := data["trigger_keywords"].(type) {
	case []string:
		keywords = kws
	case []any:
		for _, k := range kws {
			s, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("mask %q: non-string trigger keyword: %w", name, ErrBadStructured)
			}
			keywords = append(keywords, s)
		}
	}

	return NewMask(name, description, mods, keywords, active)
}

// ──────────────────────────────────────────────
// Built-in mask catalog
// ──────────────────────────────────────────────

var builtinMasks = map[string]*Mask{
	"professional_composure": {
		Name:        "professional_composure",
		Description: "flattens visible affect for formal settings",
		Modifications: map[string]float64{
			"hostile": -0.4, "irritated": -0.3, "anxious": -0.3,
			"excited": -0.2, "calm": 0.3, "confident": 0.2,
		},
		TriggerKeywords: []string{"meeting", "interview", "presentation", "work"},
	},
	"social_warmth": {
		Name:        "social_warmth",
		Description: "plays up friendliness in casual company",
		Modifications: map[string]float64{
			"cheerful": 0.3, "playful": 0.2, "content": 0.2,
			"bored": -0.3, "apathetic": -0.3,
		},
		TriggerKeywords: []string{"party", "dinner", "friends", "gathering"},
	},
	"stoic_guard": {
		Name:        "stoic_guard",
		Description: "hides vulnerability under pressure",
		Modifications: map[string]float64{
			"anxious": -0.5, "insecure": -0.4, "helpless": -0.4,
			"ashamed": -0.3, "calm": 0.2, "determined": 0.2,
		},
		TriggerKeywords: []string{"conflict", "confrontation", "threat", "argument"},
	},
	"grieving_composure": {
		Name:        "grieving_composure",
		Description: "keeps sorrow private in public",
		Modifications: map[string]float64{
			"depressed": -0.4, "lonely": -0.3, "guilty": -0.2, "content": 0.1,
		},
		TriggerKeywords: []string{"funeral", "condolence", "loss"},
	},
}

// DefaultMask returns a built-in mask by name.
func DefaultMask(name string) (*Mask, bool) {
	m, ok := builtinMasks[name]
	return m, ok
}

// DefaultMaskNames lists the built-in mask catalog in declaration order.
func DefaultMaskNames() []string {
	return []string{"professional_composure", "social_warmth", "stoic_guard", "grieving_composure"}
}
