package psyche

import "sort"

// ──────────────────────────────────────────────
// Relationship Network — multi-persona trust graph
// ──────────────────────────────────────────────

// RelationshipNetwork indexes relationships by persona for O(edges)
// incident lookups and connected-id queries.
type RelationshipNetwork struct {
	byID      map[string]*Relationship
	byPersona map[string][]*Relationship
}

// NewRelationshipNetwork creates an empty network.
func NewRelationshipNetwork() *RelationshipNetwork {
	return &RelationshipNetwork{
		byID:      make(map[string]*Relationship),
		byPersona: make(map[string][]*Relationship),
	}
}

// Add registers a relationship edge. Re-adding the same relationship ID
// is a no-op.
func (n *RelationshipNetwork) Add(r *Relationship) {
	if r == nil {
		return
	}
	if _, exists := n.byID[r.ID]; exists {
		return
	}
	n.byID[r.ID] = r
	for _, id := range r.PersonaIDs {
		n.byPersona[id] = append(n.byPersona[id], r)
	}
}

// Remove deletes a relationship edge by ID. Returns false when absent.
func (n *RelationshipNetwork) Remove(relationshipID string) bool {
	r, ok := n.byID[relationshipID]
	if !ok {
		return false
	}
	delete(n.byID, relationshipID)
	for _, id := range r.PersonaIDs {
		edges := n.byPersona[id]
		for i, edge := range edges {
			if edge.ID == relationshipID {
				n.byPersona[id] = append(edges[:i], edges[i+1:]...)
				break
			}
		}
		if len(n.byPersona[id]) == 0 {
			delete(n.byPersona, id)
		}
	}
	return true
}

// RelationshipsOf returns all relationships the persona is party to.
func (n *RelationshipNetwork) RelationshipsOf(personaID string) []*Relationship {
	return append([]*Relationship(nil), n.byPersona[personaID]...)
}

// ConnectedIDs returns the distinct other personas this persona shares a
// relationship with, sorted for deterministic output.
func (n *RelationshipNetwork) ConnectedIDs(personaID string) []string {
	seen := make(map[string]bool)
	for _, r := range n.byPersona[personaID] {
		for _, id := range r.PersonaIDs {
			if id != personaID {
				seen[id] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Trust returns from's trust toward to across any shared relationship.
// Personas with no shared relationship score 0. Where multiple shared
// relationships exist, the highest trust wins.
func (n *RelationshipNetwork) Trust(from, to string) float64 {
	var best float64
	for _, r := range n.byPersona[from] {
		if r.Includes(to) {
			if v := r.GetTrust(from, to); v > best {
				best = v
			}
		}
	}
	return best
}

// Between returns the first relationship connecting both personas, nil
// when none exists.
func (n *RelationshipNetwork) Between(a, b string) *Relationship {
	for _, r := range n.byPersona[a] {
		if r.Includes(b) {
			return r
		}
	}
	return nil
}

// Size returns the number of edges in the network.
func (n *RelationshipNetwork) Size() int {
	return len(n.byID)
}
