package psyche

import (
	"errors"
	"testing"
)

// ══════════════════════════════════════════════
// Emotion Taxonomy
// ══════════════════════════════════════════════

func TestTaxonomy_PartitionsInto6x6(t *testing.T) {
	if len(Emotions) != 36 {
		t.Fatalf("expected 36 emotions, got %d", len(Emotions))
	}
	if len(Categories) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(Categories))
	}
	counts := make(map[EmotionCategory]int)
	seen := make(map[string]bool)
	for _, e := range Emotions {
		if seen[e.Name] {
			t.Fatalf("emotion %q declared twice", e.Name)
		}
		seen[e.Name] = true
		if !e.Category.Valid() {
			t.Fatalf("emotion %q has unknown category %q", e.Name, e.Category)
		}
		counts[e.Category]++
	}
	for _, cat := range Categories {
		if counts[cat] != 6 {
			t.Fatalf("category %q has %d emotions, want 6", cat, counts[cat])
		}
	}
}

func TestTaxonomy_CategoryProfiles(t *testing.T) {
	for _, cat := range Categories {
		p := cat.Profile()
		if p.Valence != "positive" && p.Valence != "negative" {
			t.Fatalf("category %q valence %q", cat, p.Valence)
		}
		if p.Arousal != "high" && p.Arousal != "low" {
			t.Fatalf("category %q arousal %q", cat, p.Arousal)
		}
	}
}

// ══════════════════════════════════════════════
// Emotional State
// ══════════════════════════════════════════════

func TestState_GetUnsetIsZero(t *testing.T) {
	s := NewEmotionalState()
	if s.Get("calm") != 0 {
		t.Fatal("unset emotion should read 0")
	}
}

func TestState_SetClamps(t *testing.T) {
	s := NewEmotionalState()
	if err := s.Set("anxious", 1.7); err != nil {
		t.Fatal(err)
	}
	if s.Get("anxious") != 1.0 {
		t.Fatalf("expected clamp to 1.0, got %v", s.Get("anxious"))
	}
	if err := s.Set("anxious", -0.4); err != nil {
		t.Fatal(err)
	}
	if s.Get("anxious") != 0.0 {
		t.Fatalf("expected clamp to 0.0, got %v", s.Get("anxious"))
	}
}

func TestState_SetUnknownEmotionErrors(t *testing.T) {
	s := NewEmotionalState()
	err := s.Set("vengeful", 0.5)
	if !errors.Is(err, ErrUnknownEmotion) {
		t.Fatalf("expected ErrUnknownEmotion, got %v", err)
	}
}

func TestState_DominantTieBreaksByDeclarationOrder(t *testing.T) {
	s := NewEmotionalState()
	// "calm" is declared after "anxious"; equal intensity keeps the earlier
	s.Set("calm", 0.6)
	s.Set("anxious", 0.6)
	dom, v := s.Dominant()
	if dom.Name != "anxious" || v != 0.6 {
		t.Fatalf("expected anxious@0.6, got %s@%v", dom.Name, v)
	}
}

func TestState_DominantOfNeutralIsFirstEmotion(t *testing.T) {
	dom, v := NewEmotionalState().Dominant()
	if dom.Name != Emotions[0].Name || v != 0 {
		t.Fatalf("expected %s@0, got %s@%v", Emotions[0].Name, dom.Name, v)
	}
}

func TestState_MappingRoundTripCoversAllEmotions(t *testing.T) {
	s := NewEmotionalState()
	s.Set("hopeful", 0.8)
	m := s.ToMapping()
	if len(m) != 36 {
		t.Fatalf("mapping should cover all 36 emotions, got %d", len(m))
	}
	if m["calm"] != 0 {
		t.Fatal("zero-valued emotion missing from mapping")
	}
	back, err := EmotionalStateFromMapping(m)
	if err != nil {
		t.Fatal(err)
	}
	if back.Get("hopeful") != 0.8 {
		t.Fatalf("round trip lost value: %v", back.Get("hopeful"))
	}
}

func TestState_FromMappingRejectsUnknownEmotion(t *testing.T) {
	_, err := EmotionalStateFromMapping(map[string]float64{"wistful": 0.3})
	if !errors.Is(err, ErrUnknownEmotion) {
		t.Fatalf("expected ErrUnknownEmotion, got %v", err)
	}
}

func TestState_StructuredRoundTrip(t *testing.T) {
	s := NewEmotionalState()
	s.Set("proud", 0.4)
	back, err := EmotionalStateFromStructured(s.ToStructured())
	if err != nil {
		t.Fatal(err)
	}
	if back.Get("proud") != 0.4 {
		t.Fatalf("round trip lost value: %v", back.Get("proud"))
	}
}
