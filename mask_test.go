package psyche

import (
	"errors"
	"testing"
)

// ══════════════════════════════════════════════
// Masks
// ══════════════════════════════════════════════

func TestMask_ApplyNeverMutatesInput(t *testing.T) {
	state := NewEmotionalState()
	state.Set("anxious", 0.8)
	state.Set("calm", 0.1)
	before := state.ToMapping()

	mask, err := NewMask("brave-face", "", map[string]float64{"anxious": -0.5, "calm": 0.4}, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	out := mask.Apply(state)

	if out == state {
		t.Fatal("Apply must return a new state object")
	}
	for name, v := range before {
		if state.Get(name) != v {
			t.Fatalf("input state mutated at %q", name)
		}
	}
	if out.Get("anxious") != 0.3 {
		t.Fatalf("anxious = %v, want 0.3", out.Get("anxious"))
	}
	if out.Get("calm") != 0.5 {
		t.Fatalf("calm = %v, want 0.5", out.Get("calm"))
	}
}

func TestMask_ApplyClampsBothEnds(t *testing.T) {
	state := NewEmotionalState()
	state.Set("cheerful", 0.9)
	state.Set("ashamed", 0.1)

	mask, _ := NewMask("extreme", "", map[string]float64{"cheerful": 0.5, "ashamed": -0.5}, nil, false)
	out := mask.Apply(state)
	if out.Get("cheerful") != 1.0 {
		t.Fatalf("cheerful = %v, want clamp to 1.0", out.Get("cheerful"))
	}
	if out.Get("ashamed") != 0.0 {
		t.Fatalf("ashamed = %v, want clamp to 0.0", out.Get("ashamed"))
	}
}

func TestMask_ValidatesModifications(t *testing.T) {
	if _, err := NewMask("bad", "", map[string]float64{"nostalgia": 0.2}, nil, false); !errors.Is(err, ErrUnknownEmotion) {
		t.Fatalf("expected ErrUnknownEmotion, got %v", err)
	}
	if _, err := NewMask("bad", "", map[string]float64{"calm": 1.5}, nil, false); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestMask_ShouldTrigger(t *testing.T) {
	mask, _ := NewMask("work-face", "", nil, []string{"Meeting", "interview"}, false)
	if !mask.ShouldTrigger("the QUARTERLY MEETING starts soon") {
		t.Fatal("keyword match should be case-insensitive substring")
	}
	if mask.ShouldTrigger("a quiet evening at home") {
		t.Fatal("no keyword, no trigger")
	}

	always, _ := NewMask("default-on", "", nil, nil, true)
	if !always.ShouldTrigger("anything at all") {
		t.Fatal("active_by_default masks always trigger")
	}
}

func TestMask_StructuredRoundTrip(t *testing.T) {
	mask, _ := NewMask("work-face", "formal front", map[string]float64{"irritated": -0.3}, []string{"office"}, false)
	back, err := MaskFromStructured(mask.ToStructured())
	if err != nil {
		t.Fatal(err)
	}
	if back.Name != "work-face" || back.Modifications["irritated"] != -0.3 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if len(back.TriggerKeywords) != 1 || back.TriggerKeywords[0] != "office" {
		t.Fatalf("keywords lost: %v", back.TriggerKeywords)
	}
}

func TestMask_BuiltinCatalogIsValid(t *testing.T) {
	names := DefaultMaskNames()
	if len(names) == 0 {
		t.Fatal("builtin catalog is empty")
	}
	for _, name := range names {
		mask, ok := DefaultMask(name)
		if !ok {
			t.Fatalf("builtin mask %q missing", name)
		}
		for emotion, delta := range mask.Modifications {
			if _, ok := EmotionByName(emotion); !ok {
				t.Fatalf("builtin mask %q references unknown emotion %q", name, emotion)
			}
			if delta < -1 || delta > 1 {
				t.Fatalf("builtin mask %q delta %q=%v out of range", name, emotion, delta)
			}
		}
	}
}
