package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	psyche "github.com/synthmind-ai/psyche-sdk-go"
)

// Catalog is a validated bundle of personas, masks and triggers loaded
// from a YAML definition file.
type Catalog struct {
	Personas []*psyche.Persona
	Masks    map[string]*psyche.Mask
	Triggers []psyche.Trigger
}

// catalogYAML mirrors the on-disk layout before validation.
type catalogYAML struct {
	Personas []personaYAML `yaml:"personas"`
	Masks    []maskYAML    `yaml:"masks"`
	Triggers []triggerYAML `yaml:"triggers"`
}

type personaYAML struct {
	Name     string             `yaml:"name"`
	Emotions map[string]float64 `yaml:"emotions"`
	Traits   map[string]float64 `yaml:"traits"`
}

type maskYAML struct {
	Name            string             `yaml:"name"`
	Description     string             `yaml:"description"`
	Modifications   map[string]float64 `yaml:"modifications"`
	TriggerKeywords []string           `yaml:"trigger_keywords"`
	ActiveByDefault bool               `yaml:"active_by_default"`
}

type ruleYAML struct {
	Emotion   string  `yaml:"emotion"`
	Op        string  `yaml:"op"`
	Threshold float64 `yaml:"threshold"`
}

type triggerYAML struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"` // "emotional" or "situational"
	Rules    []ruleYAML `yaml:"rules"`
	MatchAll bool     `yaml:"match_all"`
	Keywords []string `yaml:"keywords"`

	// Response: exactly one of mask / modifications.
	Mask          string             `yaml:"mask"`
	Modifications map[string]float64 `yaml:"modifications"`
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog validates raw YAML into psyche types. Mask names referenced
// by triggers resolve against the catalog's own masks first, then the
// builtin set.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw catalogYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := &Catalog{Masks: map[string]*psyche.Mask{}}

	for _, m := range raw.Masks {
		mask, err := psyche.NewMask(m.Name, m.Description, m.Modifications, m.TriggerKeywords, m.ActiveByDefault)
		if err != nil {
			return nil, fmt.Errorf("mask %q: %w", m.Name, err)
		}
		if _, dup := cat.Masks[mask.Name]; dup {
			return nil, fmt.Errorf("mask %q: duplicate name", mask.Name)
		}
		cat.Masks[mask.Name] = mask
	}

	for _, p := range raw.Personas {
		persona := psyche.NewPersona(p.Name)
		for name, v := range p.Emotions {
			if err := persona.SetEmotion(name, v); err != nil {
				return nil, fmt.Errorf("persona %q: %w", p.Name, err)
			}
		}
		for name, v := range p.Traits {
			if err := persona.SetTrait(name, v); err != nil {
				return nil, fmt.Errorf("persona %q: %w", p.Name, err)
			}
		}
		cat.Personas = append(cat.Personas, persona)
	}

	for _, tr := range raw.Triggers {
		resp, err := cat.resolveResponse(tr)
		if err != nil {
			return nil, fmt.Errorf("trigger %q: %w", tr.Name, err)
		}
		var trigger psyche.Trigger
		switch tr.Kind {
		case "emotional":
			rules := make([]psyche.EmotionRule, 0, len(tr.Rules))
			for _, r := range tr.Rules {
				rule, err := psyche.NewEmotionRule(r.Emotion, r.Threshold, psyche.CompareOp(r.Op))
				if err != nil {
					return nil, fmt.Errorf("trigger %q: %w", tr.Name, err)
				}
				rules = append(rules, rule)
			}
			trigger, err = psyche.NewEmotionalTrigger(tr.Name, rules, tr.MatchAll, resp)
		case "situational":
			trigger, err = psyche.NewSituationalTrigger(tr.Name, tr.Keywords, resp)
		default:
			return nil, fmt.Errorf("trigger %q: unknown kind %q", tr.Name, tr.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("trigger %q: %w", tr.Name, err)
		}
		cat.Triggers = append(cat.Triggers, trigger)
	}

	return cat, nil
}

func (c *Catalog) resolveResponse(tr triggerYAML) (psyche.TriggerResponse, error) {
	if tr.Mask != "" && len(tr.Modifications) > 0 {
		return psyche.TriggerResponse{}, fmt.Errorf("response sets both mask and modifications")
	}
	if tr.Mask != "" {
		if mask, ok := c.Masks[tr.Mask]; ok {
			return psyche.MaskResponse(mask), nil
		}
		if mask, ok := psyche.DefaultMask(tr.Mask); ok {
			return psyche.MaskResponse(mask), nil
		}
		return psyche.TriggerResponse{}, fmt.Errorf("mask %q not found", tr.Mask)
	}
	if len(tr.Modifications) > 0 {
		return psyche.ModificationsResponse(tr.Modifications)
	}
	return psyche.TriggerResponse{}, fmt.Errorf("response is empty")
}

// PersonaByName looks up a loaded persona.
func (c *Catalog) PersonaByName(name string) (*psyche.Persona, bool) {
	for _, p := range c.Personas {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}
