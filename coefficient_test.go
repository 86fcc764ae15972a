package psyche

import (
	"math"
	"testing"
)

// ══════════════════════════════════════════════
// Coefficient Table
// ══════════════════════════════════════════════

func TestCoefficients_AllPairsValid(t *testing.T) {
	for trait, row := range traitEmotionCoefficients {
		if _, ok := TraitByName(trait); !ok {
			t.Fatalf("coefficient table references unknown trait %q", trait)
		}
		for emotion, coeff := range row {
			if _, ok := EmotionByName(emotion); !ok {
				t.Fatalf("coefficient table references unknown emotion %q", emotion)
			}
			if coeff < -1 || coeff > 1 {
				t.Fatalf("coefficient (%s, %s) = %v out of [-1,1]", trait, emotion, coeff)
			}
		}
	}
}

func TestCoefficients_UnmappedPairIsZero(t *testing.T) {
	if CoefficientFor("optimism", "hostile") != 0 {
		t.Fatal("unmapped pair should read 0")
	}
	if CoefficientFor("nonexistent", "calm") != 0 {
		t.Fatal("unknown trait should read 0, not error")
	}
}

func TestEmotionModifier_MidpointContributesNothing(t *testing.T) {
	traits := NewTraitProfile() // everything at 0.5
	for _, e := range Emotions {
		if mod := EmotionModifier(traits, e.Name); mod != 0 {
			t.Fatalf("neutral profile should yield 0 modifier for %q, got %v", e.Name, mod)
		}
	}
}

func TestEmotionModifier_ScalesDeviationFromMidpoint(t *testing.T) {
	traits := NewTraitProfile()
	traits.Set("optimism", 1.0)
	// optimism->hopeful coefficient is 0.6; (1.0-0.5)*2 = 1.0
	got := EmotionModifier(traits, "hopeful")
	want := CoefficientFor("optimism", "hopeful") * 1.0
	// persistence also maps hopeful but sits at midpoint, contributing 0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("modifier %v, want %v", got, want)
	}
}

func TestEmotionModifier_CombinesAdditively(t *testing.T) {
	traits := NewTraitProfile()
	traits.Set("optimism", 1.0)
	traits.Set("persistence", 1.0)
	want := CoefficientFor("optimism", "hopeful") + CoefficientFor("persistence", "hopeful")
	got := EmotionModifier(traits, "hopeful")
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("modifier %v, want additive %v", got, want)
	}
}

func TestEmotionModifier_LowTraitFlipsSign(t *testing.T) {
	traits := NewTraitProfile()
	traits.Set("emotional_stability", 0.0)
	// negative coefficient times negative deviation amplifies anxiety
	if mod := EmotionModifier(traits, "anxious"); mod <= 0 {
		t.Fatalf("low stability should amplify anxious, got %v", mod)
	}
	traits.Set("emotional_stability", 1.0)
	if mod := EmotionModifier(traits, "anxious"); mod >= 0 {
		t.Fatalf("high stability should suppress anxious, got %v", mod)
	}
}

func TestCategoryModifier_TracksAffinityTable(t *testing.T) {
	traits := NewTraitProfile()
	traits.Set("emotional_stability", 1.0)
	if mod := CategoryModifier(traits, CategoryFear); mod >= 0 {
		t.Fatalf("high stability should push away from fear, got %v", mod)
	}
	if mod := CategoryModifier(traits, CategoryPeaceful); mod <= 0 {
		t.Fatalf("high stability should pull toward peaceful, got %v", mod)
	}
}
