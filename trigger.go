package psyche

import (
	"fmt"
	"strings"
)

// ──────────────────────────────────────────────
// Triggers — rule sets that fire masks or deltas
// ──────────────────────────────────────────────

// CompareOp is a comparison operator for emotion rules.
type CompareOp string

const (
	OpGT  CompareOp = ">"
	OpGTE CompareOp = ">="
	OpLT  CompareOp = "<"
	OpLTE CompareOp = "<="
	OpEQ  CompareOp = "=="
)

var knownOps = map[CompareOp]bool{OpGT: true, OpGTE: true, OpLT: true, OpLTE: true, OpEQ: true}

// EmotionRule compares one emotion's intensity against a threshold.
type EmotionRule struct {
	Field     string    `json:"field"`
	Threshold float64   `json:"threshold"`
	Op        CompareOp `json:"operator"`
}

// NewEmotionRule validates and builds a rule. An unrecognized operator or
// emotion name is a configuration error.
func NewEmotionRule(field string, threshold float64, op CompareOp) (EmotionRule, error) {
	if _, ok := EmotionByName(field); !ok {
		return EmotionRule{}, fmt.Errorf("rule field %q: %w", field, ErrUnknownEmotion)
	}
	if !knownOps[op] {
		return EmotionRule{}, fmt.Errorf("rule %q %q: %w", field, op, ErrUnknownOperator)
	}
	if threshold < 0 || threshold > 1 {
		return EmotionRule{}, fmt.Errorf("rule %q threshold %v: %w", field, threshold, ErrOutOfRange)
	}
	return EmotionRule{Field: field, Threshold: threshold, Op: op}, nil
}

func (r EmotionRule) eval(state *EmotionalState) (bool, error) {
	v := state.Get(r.Field)
	switch r.Op {
	case OpGT:
		return v > r.Threshold, nil
	case OpGTE:
		return v >= r.Threshold, nil
	case OpLT:
		return v < r.Threshold, nil
	case OpLTE:
		return v <= r.Threshold, nil
	case OpEQ:
		return v == r.Threshold, nil
	default:
		// reachable only for rules built around NewEmotionRule
		return false, fmt.Errorf("rule %q %q: %w", r.Field, r.Op, ErrUnknownOperator)
	}
}

// ──────────────────────────────────────────────
// Trigger responses — mask or raw deltas
// ──────────────────────────────────────────────

// ResponseType discriminates the trigger response variants.
type ResponseType string

const (
	ResponseMask          ResponseType = "mask"
	ResponseModifications ResponseType = "modifications"
)

// TriggerResponse is the tagged effect of a fired trigger: either a whole
// mask applied to the state, or a raw emotion-delta mapping applied
// additively and clamped.
type TriggerResponse struct {
	Type          ResponseType
	Mask          *Mask
	Modifications map[string]float64
}

// MaskResponse wraps a mask as a trigger response.
func MaskResponse(m *Mask) TriggerResponse {
	return TriggerResponse{Type: ResponseMask, Mask: m}
}

// ModificationsResponse validates a delta mapping and wraps it as a
// trigger response. Deltas must name taxonomy emotions and sit in [-1,1].
func ModificationsResponse(modifications map[string]float64) (TriggerResponse, error) {
	mods := make(map[string]float64, len(modifications))
	for emotion, delta := range modifications {
		if _, ok := EmotionByName(emotion); !ok {
			return TriggerResponse{}, fmt.Errorf("response modification %q: %w", emotion, ErrUnknownEmotion)
		}
		if delta < -1 || delta > 1 {
			return TriggerResponse{}, fmt.Errorf("response modification %q = %v: %w", emotion, delta, ErrOutOfRange)
		}
		mods[emotion] = delta
	}
	return TriggerResponse{Type: ResponseModifications, Modifications: mods}, nil
}

// apply produces a new state; unlisted emotions are unchanged.
func (r TriggerResponse) apply(state *EmotionalState) *EmotionalState {
	switch r.Type {
	case ResponseMask:
		if r.Mask == nil {
			return state.Clone()
		}
		return r.Mask.Apply(state)
	case ResponseModifications:
		out := state.Clone()
		for emotion, delta := range r.Modifications {
			out.intensities[emotion] = clamp01(out.intensities[emotion] + delta)
		}
		return out
	default:
		return state.Clone()
	}
}

// ToStructured returns the {type, data} form external consumers rely on.
func (r TriggerResponse) ToStructured() map[string]any {
	switch r.Type {
	case ResponseMask:
		var data any
		if r.Mask != nil {
			data = r.Mask.ToStructured()
		}
		return map[string]any{"type": string(ResponseMask), "data": data}
	default:
		mods := make(map[string]float64, len(r.Modifications))
		for k, v := range r.Modifications {
			mods[k] = v
		}
		return map[string]any{"type": string(ResponseModifications), "data": mods}
	}
}

// ResponseFromStructured rebuilds a response from its {type, data} form.
func ResponseFromStructured(data map[string]any) (TriggerResponse, error) {
	typ, _ := data["type"].(string)
	switch ResponseType(typ) {
	case ResponseMask:
		raw, ok := data["data"].(map[string]any)
		if !ok {
			return TriggerResponse{}, fmt.Errorf("mask response: missing data: %w", ErrBadStructured)
		}
		mask, err := MaskFromStructured(raw)
		if err != nil {
			return TriggerResponse{}, err
		}
		return MaskResponse(mask), nil
	case ResponseModifications:
		mods, err := toFloatMap(data["data"])
		if err != nil {
			return TriggerResponse{}, fmt.Errorf("modifications response: %w", err)
		}
		return ModificationsResponse(mods)
	default:
		return TriggerResponse{}, fmt.Errorf("response type %q: %w", typ, ErrBadStructured)
	}
}

// ──────────────────────────────────────────────
// Trigger variants
// ──────────────────────────────────────────────

// TriggerContext carries the inputs triggers evaluate against: the
// persona's current state for emotional triggers, free text for
// situational ones.
type TriggerContext struct {
	State *EmotionalState
	Text  string
}

// Trigger is the flat interface over both variants.
type Trigger interface {
	Name() string
	// Check reports whether the trigger's conditions hold for the context.
	Check(ctx TriggerContext) (bool, error)
	// Fire applies the trigger's response, returning a new state.
	// The input state is never mutated.
	Fire(state *EmotionalState) *EmotionalState
	ToStructured() map[string]any
}

// EmotionalTrigger fires on the persona's own state. With MatchAll set,
// every rule must hold; otherwise one passing rule suffices.
type EmotionalTrigger struct {
	name     string
	Rules    []EmotionRule
	MatchAll bool
	Response TriggerResponse
}

// NewEmotionalTrigger builds a trigger from pre-validated rules.
func NewEmotionalTrigger(name string, rules []EmotionRule, matchAll bool, response TriggerResponse) (*EmotionalTrigger, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("trigger %q: no rules: %w", name, ErrBadStructured)
	}
	for _, r := range rules {
		if !knownOps[r.Op] {
			return nil, fmt.Errorf("trigger %q: rule %q %q: %w", name, r.Field, r.Op, ErrUnknownOperator)
		}
	}
	return &EmotionalTrigger{name: name, Rules: rules, MatchAll: matchAll, Response: response}, nil
}

func (t *EmotionalTrigger) Name() string { return t.name }

func (t *EmotionalTrigger) Check(ctx TriggerContext) (bool, error) {
	if ctx.State == nil {
		return false, nil
	}
	for _, rule := range t.Rules {
		ok, err := rule.eval(ctx.State)
		if err != nil {
			return false, err
		}
		if t.MatchAll && !ok {
			return false, nil
		}
		if !t.MatchAll && ok {
			return true, nil
		}
	}
	return t.MatchAll, nil
}

func (t *EmotionalTrigger) Fire(state *EmotionalState) *EmotionalState {
	return t.Response.apply(state)
}

func (t *EmotionalTrigger) ToStructured() map[string]any {
	rules := make([]map[string]any, 0, len(t.Rules))
	for _, r := range t.Rules {
		rules = append(rules, map[string]any{
			"field": r.Field, "threshold": r.Threshold, "operator": string(r.Op),
		})
	}
	return map[string]any{
		"trigger_type": "emotional",
		"name":         t.name,
		"rules":        rules,
		"match_all":    t.MatchAll,
		"response":     t.Response.ToStructured(),
	}
}

// SituationalTrigger fires on free text via case-insensitive keyword
// substring matching.
type SituationalTrigger struct {
	name     string
	Keywords []string
	Response TriggerResponse
}

// NewSituationalTrigger builds a keyword trigger.
func NewSituationalTrigger(name string, keywords []string, response TriggerResponse) (*SituationalTrigger, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("trigger %q: no keywords: %w", name, ErrBadStructured)
	}
	return &SituationalTrigger{
		name:     name,
		Keywords: append([]string(nil), keywords...),
		Response: response,
	}, nil
}

func (t *SituationalTrigger) Name() string { return t.name }

func (t *SituationalTrigger) Check(ctx TriggerContext) (bool, error) {
	lower := strings.ToLower(ctx.Text)
	for _, kw := range t.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true, nil
		}
	}
	return false, nil
}

func (t *SituationalTrigger) Fire(state *EmotionalState) *EmotionalState {
	return t.Response.apply(state)
}

func (t *SituationalTrigger) ToStructured() map[string]any {
	return map[string]any{
		"trigger_type": "situational",
		"name":         t.name,
		"keywords":     append([]string(nil), t.Keywords...),
		"response":     t.Response.ToStructured(),
	}
}

// TriggerFromStructured rebuilds either variant from its structured form.
func TriggerFromStructured(data map[string]any) (Trigger, error) {
	typ, _ := data["trigger_type"].(string)
	name, _ := data["name"].(string)

	rawResp, ok := data["response"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("trigger %q: missing response: %w", name, ErrBadStructured)
	}
	response, err := ResponseFromStructured(rawResp)
	if err != nil {
		return nil, fmt.Errorf("trigger %q: %w", name, err)
	}

	switch typ {
	case "emotional":
		var rawRules []map[string]any
		switch rr := data["rules"].(type) {
		case []map[string]any:
			rawRules = rr
		case []any:
			for _, item := range rr {
				rm, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("trigger %q: malformed rule: %w", name, ErrBadStructured)
				}
				rawRules = append(rawRules, rm)
			}
		default:
			return nil, fmt.Errorf("trigger %q: missing rules: %w", name, ErrBadStructured)
		}
		rules := make([]EmotionRule, 0, len(rawRules))
		for _, rm := range rawRules {
			field, _ := rm["field"].(string)
			op, _ := rm["operator"].(string)
			threshold, ok := toFloat(rm["threshold"])
			if !ok {
				return nil, fmt.Errorf("trigger %q: rule threshold not a number: %w", name, ErrBadStructured)
			}
			rule, err := NewEmotionRule(field, threshold, CompareOp(op))
			if err != nil {
				return nil, fmt.Errorf("trigger %q: %w", name, err)
			}
			rules = append(rules, rule)
		}
		matchAll, _ := data["match_all"].(bool)
		return NewEmotionalTrigger(name, rules, matchAll, response)
	case "situational":
		var keywords []string
		switch kws := data["keywords"].(type) {
		case []string:
			keywords = kws
		case []any:
			for _, k := range kws {
				s, ok := k.(string)
				if !ok {
					return nil, fmt.Errorf("trigger %q: non-string keyword: %w", name, ErrBadStructured)
				}
				keywords = append(keywords, s)
			}
		}
		return NewSituationalTrigger(name, keywords, response)
	default:
		return nil, fmt.Errorf("trigger type %q: %w", typ, ErrBadStructured)
	}
}
