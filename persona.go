package psyche

import (
	"fmt"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────
// Persona — one state, one profile
// ──────────────────────────────────────────────

// Persona is the simulated entity owning one EmotionalState and one
// TraitProfile. Relationships and memories reference it by ID.
type Persona struct {
	ID     string
	Name   string
	State  *EmotionalState
	Traits *TraitProfile
}

// NewPersona creates a persona with a neutral state and midpoint traits.
func NewPersona(name string) *Persona {
	return &Persona{
		ID:     uuid.NewString(),
		Name:   name,
		State:  NewEmotionalState(),
		Traits: NewTraitProfile(),
	}
}

// GetEmotion reads an emotion intensity.
func (p *Persona) GetEmotion(name string) float64 {
	return p.State.Get(name)
}

// SetEmotion stores an absolute intensity (clamped).
func (p *Persona) SetEmotion(name string, value float64) error {
	return p.State.Set(name, value)
}

// AdjustEmotion shifts an emotion additively. This is a convenience on
// top of the absolute setter: new = old + delta, clamped.
func (p *Persona) AdjustEmotion(name string, delta float64) error {
	return p.State.Set(name, p.State.Get(name)+delta)
}

// DominantEmotion returns the persona's strongest emotion.
func (p *Persona) DominantEmotion() (Emotion, float64) {
	return p.State.Dominant()
}

// GetTrait reads a trait value.
func (p *Persona) GetTrait(name string) float64 {
	return p.Traits.Get(name)
}

// SetTrait stores an absolute trait value (clamped).
func (p *Persona) SetTrait(name string, value float64) error {
	return p.Traits.Set(name, value)
}

// HighTraits returns traits at or above the threshold.
func (p *Persona) HighTraits(threshold float64) []string {
	return p.Traits.HighTraits(threshold)
}

// LowTraits returns traits at or below the threshold.
func (p *Persona) LowTraits(threshold float64) []string {
	return p.Traits.LowTraits(threshold)
}

// ToStructured returns the stable serialization form.
func (p *Persona) ToStructured() map[string]any {
	return map[string]any{
		"id":     p.ID,
		"name":   p.Name,
		"state":  p.State.ToStructured(),
		"traits": p.Traits.ToStructured(),
	}
}

// PersonaFromStructured rebuilds a persona from its structured form.
func PersonaFromStructured(data map[string]any) (*Persona, error) {
	id, _ := data["id"].(string)
	name, _ := data["name"].(string)
	if id == "" {
		return nil, fmt.Errorf("persona: missing id: %w", ErrBadStructured)
	}

	p := &Persona{ID: id, Name: name, State: NewEmotionalState(), Traits: NewTraitProfile()}

	if raw, ok := data["state"].(map[string]any); ok {
		state, err := EmotionalStateFromStructured(raw)
		if err != nil {
			return nil, fmt.Errorf("persona %q: %w", id, err)
		}
		p.State = state
	}
	if raw, ok := data["traits"].(map[string]any); ok {
		traits, err := TraitProfileFromStructured(raw)
		if err != nil {
			return nil, fmt.Errorf("persona %q: %w", id, err)
		}
		p.Traits = traits
	}
	return p, nil
}
