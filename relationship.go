package psyche

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────
// Relationships — asymmetric directed trust
// ──────────────────────────────────────────────

// TrustChange is one append-only history entry for a trust update.
type TrustChange struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Requested float64   `json:"requested"` // nominal change asked for
	Applied   float64   `json:"applied"`   // effective change after damping/clamping
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// Relationship connects two or more personas and holds a directed trust
// mapping between them. Trust need not be symmetric: A may trust B far
// more than B trusts A. Trust history is never truncated.
type Relationship struct {
	ID         string
	Type       string // relationship-type label: friend, rival, family, ...
	PersonaIDs []string

	trust        map[string]map[string]float64
	TrustHistory []TrustChange
	History      []string // free-text shared history
}

// NewRelationship creates a relationship between at least two distinct
// personas. All directed trust starts at zero.
func NewRelationship(relType string, personaIDs ...string) (*Relationship, error) {
	if len(personaIDs) < 2 {
		return nil, fmt.Errorf("relationship needs at least two personas: %w", ErrOutOfRange)
	}
	seen := make(map[string]bool, len(personaIDs))
	for _, id := range personaIDs {
		if id == "" || seen[id] {
			return nil, fmt.Errorf("relationship persona ids must be distinct and non-empty: %w", ErrOutOfRange)
		}
		seen[id] = true
	}
	return &Relationship{
		ID:         uuid.NewString(),
		Type:       relType,
		PersonaIDs: append([]string(nil), personaIDs...),
		trust:      make(map[string]map[string]float64),
	}, nil
}

// Includes reports whether the persona is party to this relationship.
func (r *Relationship) Includes(personaID string) bool {
	for _, id := range r.PersonaIDs {
		if id == personaID {
			return true
		}
	}
	return false
}

// GetTrust returns from's trust toward to, 0 when never set.
func (r *Relationship) GetTrust(from, to string) float64 {
	return r.trust[from][to]
}

// SetTrust stores an absolute directed trust value, clamped to [0,1].
// Both personas must be party to the relationship.
func (r *Relationship) SetTrust(from, to string, value float64) error {
	if !r.Includes(from) {
		return fmt.Errorf("set trust from %q: %w", from, ErrUnknownPersona)
	}
	if !r.Includes(to) {
		return fmt.Errorf("set trust to %q: %w", to, ErrUnknownPersona)
	}
	if r.trust[from] == nil {
		r.trust[from] = make(map[string]float64)
	}
	r.trust[from][to] = clamp01(value)
	return nil
}

// UpdateTrust applies a trust change through the saturation arithmetic,
// records it in the append-only history, and returns the new trust value
// and the change description.
func (r *Relationship) UpdateTrust(from, to string, change float64, reason string) (float64, string, error) {
	if !r.Includes(from) {
		return 0, "", fmt.Errorf("update trust from %q: %w", from, ErrUnknownPersona)
	}
	if !r.Includes(to) {
		return 0, "", fmt.Errorf("update trust to %q: %w", to, ErrUnknownPersona)
	}

	current := r.GetTrust(from, to)
	newTrust, desc := CalculateTrustChange(current, change, reason)
	if r.trust[from] == nil {
		r.trust[from] = make(map[string]float64)
	}
	r.trust[from][to] = newTrust

	r.TrustHistory = append(r.TrustHistory, TrustChange{
		From:      from,
		To:        to,
		Requested: change,
		Applied:   newTrust - current,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
	return newTrust, desc, nil
}

// TrustLevelBetween classifies from's trust toward to.
func (r *Relationship) TrustLevelBetween(from, to string) TrustLevel {
	return GetTrustLevel(r.GetTrust(from, to))
}

// AddHistory appends a free-text note to the relationship history.
func (r *Relationship) AddHistory(note string) {
	r.History = append(r.History, note)
}

// ToStructured returns the stable serialization form.
func (r *Relationship) ToStructured() map[string]any {
	trust := make(map[string]any, len(r.trust))
	for from, row := range r.trust {
		inner := make(map[string]float64, len(row))
		for to, v := range row {
			inner[to] = v
		}
		trust[from] = inner
	}
	history := make([]map[string]any, 0, len(r.TrustHistory))
	for _, c := range r.TrustHistory {
		history = append(history, map[string]any{
			"from":      c.From,
			"to":        c.To,
			"requested": c.Requested,
			"applied":   c.Applied,
			"reason":    c.Reason,
			"timestamp": c.Timestamp.Format(time.RFC3339Nano),
		})
	}
	return map[string]any{
		"id":            r.ID,
		"type":          r.Type,
		"persona_ids":   append([]string(nil), r.PersonaIDs...),
		"trust":         trust,
		"trust_history": history,
		"history":       append([]string(nil), r.History...),
	}
}

// RelationshipFromStructured rebuilds a relationship from its structured
// form, preserving the original ID and full history.
func RelationshipFromStructured(data map[string]any) (*Relationship, error) {
	ids, err := toStringSlice(data["persona_ids"])
	if err != nil || len(ids) < 2 {
		return nil, fmt.Errorf("relationship: bad persona_ids: %w", ErrBadStructured)
	}
	relType, _ := data["type"].(string)

	r, err := NewRelationship(relType, ids...)
	if err != nil {
		return nil, err
	}
	if id, _ := data["id"].(string); id != "" {
		r.ID = id
	}

	if rawTrust, ok := data["trust"].(map[string]any); ok {
		for from, row := range rawTrust {
			m, err := toFloatMap(row)
			if err != nil {
				return nil, fmt.Errorf("relationship trust from %q: %w", from, err)
			}
			for to, v := range m {
				if err := r.SetTrust(from, to, v); err != nil {
					return nil, err
				}
			}
		}
	}

	var rawHist []map[string]any
	switch h := data["trust_history"].(type) {
	case []map[string]any:
		rawHist = h
	case []any:
		for _, rh := range h {
			hm, ok := rh.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("relationship: malformed trust history entry: %w", ErrBadStructured)
			}
			rawHist = append(rawHist, hm)
		}
	}
	for _, hm := range rawHist {
		entry := TrustChange{}
		entry.From, _ = hm["from"].(string)
		entry.To, _ = hm["to"].(string)
		entry.Requested, _ = toFloat(hm["requested"])
		entry.Applied, _ = toFloat(hm["applied"])
		entry.Reason, _ = hm["reason"].(string)
		if ts, _ := hm["timestamp"].(string); ts != "" {
			if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
				entry.Timestamp = parsed
			}
		}
		r.TrustHistory = append(r.TrustHistory, entry)
	}

	if notes, err := toStringSlice(data["history"]); err == nil {
		r.History = notes
	}
	return r, nil
}

func toStringSlice(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string element: %w", ErrBadStructured)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string list: %w", ErrBadStructured)
	}
}
