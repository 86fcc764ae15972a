package psyche

import (
	"fmt"
	"sort"
)

// ──────────────────────────────────────────────
// Trait Taxonomy — 17 traits in 4 clusters
// ──────────────────────────────────────────────

// TraitCluster groups related personality traits.
type TraitCluster string

const (
	ClusterInterpersonal TraitCluster = "interpersonal"
	ClusterEmotional     TraitCluster = "emotional"
	ClusterCognitive     TraitCluster = "cognitive"
	ClusterBehavioral    TraitCluster = "behavioral"
)

// Clusters lists all trait clusters in declaration order.
var Clusters = []TraitCluster{
	ClusterInterpersonal,
	ClusterEmotional,
	ClusterCognitive,
	ClusterBehavioral,
}

// Trait is an immutable taxonomy record. LowPole and HighPole describe
// the behavioral extremes at value 0.0 and 1.0.
type Trait struct {
	Name        string       `json:"name"`
	Cluster     TraitCluster `json:"cluster"`
	Description string       `json:"description"`
	LowPole     string       `json:"low_pole"`
	HighPole    string       `json:"high_pole"`
}

// Traits is the full taxonomy in declaration order.
var Traits = []Trait{
	// interpersonal
	{Name: "agreeableness", Cluster: ClusterInterpersonal, Description: "tendency toward cooperation and accommodation", LowPole: "antagonistic", HighPole: "accommodating"},
	{Name: "empathy", Cluster: ClusterInterpersonal, Description: "attunement to others' feelings", LowPole: "detached", HighPole: "compassionate"},
	{Name: "assertiveness", Cluster: ClusterInterpersonal, Description: "willingness to state and defend one's position", LowPole: "passive", HighPole: "forceful"},
	{Name: "trustfulness", Cluster: ClusterInterpersonal, Description: "default readiness to rely on others", LowPole: "suspicious", HighPole: "trusting"},
	{Name: "sociability", Cluster: ClusterInterpersonal, Description: "appetite for company and interaction", LowPole: "solitary", HighPole: "gregarious"},

	// emotional
	{Name: "emotional_stability", Cluster: ClusterEmotional, Description: "resistance to being thrown off balance", LowPole: "volatile", HighPole: "steady"},
	{Name: "optimism", Cluster: ClusterEmotional, Description: "default expectation that things turn out well", LowPole: "pessimistic", HighPole: "optimistic"},
	{Name: "sensitivity", Cluster: ClusterEmotional, Description: "strength of reaction to emotional stimuli", LowPole: "thick-skinned", HighPole: "easily moved"},
	{Name: "expressiveness", Cluster: ClusterEmotional, Description: "outward display of inner feeling", LowPole: "reserved", HighPole: "demonstrative"},

	// cognitive
	{Name: "openness", Cluster: ClusterCognitive, Description: "receptivity to new ideas and experiences", LowPole: "conventional", HighPole: "exploratory"},
	{Name: "curiosity", Cluster: ClusterCognitive, Description: "drive to investigate and learn", LowPole: "indifferent", HighPole: "inquisitive"},
	{Name: "analytical", Cluster: ClusterCognitive, Description: "preference for systematic reasoning", LowPole: "intuitive", HighPole: "methodical"},

	// behavioral
	{Name: "conscientiousness", Cluster: ClusterBehavioral, Description: "discipline and follow-through", LowPole: "careless", HighPole: "diligent"},
	{Name: "impulsivity", Cluster: ClusterBehavioral, Description: "tendency to act before deliberating", LowPole: "deliberate", HighPole: "impulsive"},
	{Name: "risk_tolerance", Cluster: ClusterBehavioral, Description: "comfort with uncertain outcomes", LowPole: "cautious", HighPole: "daring"},
	{Name: "persistence", Cluster: ClusterBehavioral, Description: "staying power in the face of setbacks", LowPole: "easily discouraged", HighPole: "tenacious"},
	{Name: "adaptability", Cluster: ClusterBehavioral, Description: "ease of adjusting to changed circumstances", LowPole: "rigid", HighPole: "flexible"},
}

var traitByName = func() map[string]Trait {
	m := make(map[string]Trait, len(Traits))
	for _, t := range Traits {
		m[t.Name] = t
	}
	return m
}()

// TraitByName looks up a taxonomy trait.
func TraitByName(name string) (Trait, bool) {
	t, ok := traitByName[name]
	return t, ok
}

// TraitsInCluster returns the cluster's traits in declaration order.
func TraitsInCluster(cluster TraitCluster) []Trait {
	var out []Trait
	for _, t := range Traits {
		if t.Cluster == cluster {
			out = append(out, t)
		}
	}
	return out
}

// Default thresholds for classifying traits as pronounced.
const (
	DefaultHighTraitThreshold = 0.7
	DefaultLowTraitThreshold  = 0.3
)

// NeutralTraitValue is the midpoint every profile starts at.
const NeutralTraitValue = 0.5

// ──────────────────────────────────────────────
// Trait Profile — per-persona trait values
// ──────────────────────────────────────────────

// TraitProfile maps every taxonomy trait to a value in [0,1], default 0.5.
type TraitProfile struct {
	values map[string]float64
}

// NewTraitProfile creates a profile with every trait at the neutral midpoint.
func NewTraitProfile() *TraitProfile {
	p := &TraitProfile{values: make(map[string]float64, len(Traits))}
	for _, t := range Traits {
		p.values[t.Name] = NeutralTraitValue
	}
	return p
}

// Get returns the trait value, or the neutral midpoint if never set.
func (p *TraitProfile) Get(name string) float64 {
	if v, ok := p.values[name]; ok {
		return v
	}
	return NeutralTraitValue
}

// Set stores an absolute trait value, clamped to [0,1].
// Unknown trait names are a configuration error.
func (p *TraitProfile) Set(name string, value float64) error {
	if _, ok := traitByName[name]; !ok {
		return fmt.Errorf("set %q: %w", name, ErrUnknownTrait)
	}
	p.values[name] = clamp01(value)
	return nil
}

// HighTraits returns names of traits with value >= threshold,
// sorted for deterministic output.
func (p *TraitProfile) HighTraits(threshold float64) []string {
	var out []string
	for _, t := range Traits {
		if p.Get(t.Name) >= threshold {
			out = append(out, t.Name)
		}
	}
	sort.Strings(out)
	return out
}

// LowTraits returns names of traits with value <= threshold,
// sorted for deterministic output.
func (p *TraitProfile) LowTraits(threshold float64) []string {
	var out []string
	for _, t := range Traits {
		if p.Get(t.Name) <= threshold {
			out = append(out, t.Name)
		}
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the profile.
func (p *TraitProfile) Clone() *TraitProfile {
	out := NewTraitProfile()
	for k, v := range p.values {
		out.values[k] = v
	}
	return out
}

// ToMapping returns every taxonomy trait with its value.
func (p *TraitProfile) ToMapping() map[string]float64 {
	out := make(map[string]float64, len(Traits))
	for _, t := range Traits {
		out[t.Name] = p.Get(t.Name)
	}
	return out
}

// TraitProfileFromMapping rebuilds a profile from a mapping.
// Traits absent from the mapping stay at the neutral midpoint;
// unknown trait names fail the whole load.
func TraitProfileFromMapping(m map[string]float64) (*TraitProfile, error) {
	p := NewTraitProfile()
	for name, v := range m {
		if err := p.Set(name, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ToStructured returns the stable serialization form.
func (p *TraitProfile) ToStructured() map[string]any {
	return map[string]any{"values": p.ToMapping()}
}

// TraitProfileFromStructured rebuilds a profile from its structured form.
func TraitProfileFromStructured(data map[string]any) (*TraitProfile, error) {
	raw, ok := data["values"]
	if !ok {
		return nil, fmt.Errorf("trait profile: missing values: %w", ErrBadStructured)
	}
	m, err := toFloatMap(raw)
	if err != nil {
		return nil, fmt.Errorf("trait profile: %w", err)
	}
	return TraitProfileFromMapping(m)
}
