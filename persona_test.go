package psyche

import (
	"math"
	"testing"
)

// ══════════════════════════════════════════════
// Persona
// ══════════════════════════════════════════════

func TestPersona_NewIsNeutral(t *testing.T) {
	p := NewPersona("Ada")
	if p.ID == "" || p.Name != "Ada" {
		t.Fatalf("bad persona: %+v", p)
	}
	dom, v := p.DominantEmotion()
	if v != 0 {
		t.Fatalf("new persona should be neutral, dominant %s@%v", dom.Name, v)
	}
	if p.GetTrait("empathy") != 0.5 {
		t.Fatal("traits should start at midpoint")
	}
}

func TestPersona_AdjustEmotionIsAdditive(t *testing.T) {
	p := NewPersona("Ada")
	p.SetEmotion("hopeful", 0.4)
	if err := p.AdjustEmotion("hopeful", 0.3); err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.GetEmotion("hopeful")-0.7) > 1e-9 {
		t.Fatalf("hopeful = %v, want 0.7", p.GetEmotion("hopeful"))
	}
	// additive helper still clamps through the absolute setter
	p.AdjustEmotion("hopeful", 0.9)
	if p.GetEmotion("hopeful") != 1.0 {
		t.Fatalf("hopeful = %v, want clamp to 1.0", p.GetEmotion("hopeful"))
	}
	p.AdjustEmotion("hopeful", -2.0)
	if p.GetEmotion("hopeful") != 0.0 {
		t.Fatalf("hopeful = %v, want clamp to 0.0", p.GetEmotion("hopeful"))
	}
}

func TestPersona_TraitAccessors(t *testing.T) {
	p := NewPersona("Ada")
	p.SetTrait("curiosity", 0.9)
	p.SetTrait("impulsivity", 0.2)

	high := p.HighTraits(DefaultHighTraitThreshold)
	if len(high) != 1 || high[0] != "curiosity" {
		t.Fatalf("high traits: %v", high)
	}
	low := p.LowTraits(DefaultLowTraitThreshold)
	if len(low) != 1 || low[0] != "impulsivity" {
		t.Fatalf("low traits: %v", low)
	}
}

func TestPersona_StructuredRoundTrip(t *testing.T) {
	p := NewPersona("Ada")
	p.SetEmotion("determined", 0.8)
	p.SetTrait("persistence", 0.9)

	back, err := PersonaFromStructured(p.ToStructured())
	if err != nil {
		t.Fatal(err)
	}
	if back.ID != p.ID || back.Name != "Ada" {
		t.Fatalf("identity lost: %+v", back)
	}
	if back.GetEmotion("determined") != 0.8 || back.GetTrait("persistence") != 0.9 {
		t.Fatal("state or traits lost in round trip")
	}
}
